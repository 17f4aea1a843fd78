package util

import (
	"fmt"
	"os"
)

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return os.MkdirAll(dir, os.ModePerm)
	}
	return nil
}

// WriteToFile writes the given strings to the file, one per line,
// replacing any previous contents.
func WriteToFile(savePath string, content ...string) error {
	singleString := ""
	for _, c := range content {
		singleString = fmt.Sprintf("%s%s\n", singleString, c)
	}
	return os.WriteFile(savePath, []byte(singleString), 0644)
}
