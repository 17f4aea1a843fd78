package sim

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultFlushEvery is the number of buffered trials between flushes.
const DefaultFlushEvery = 1000

// TrajectoryLogger persists trials as rows of a tab-separated file. Rows
// are buffered in memory and flushed every flushEvery trials so a batch of
// thousands of trials neither grows without bound nor hits the disk per
// trial. The logger owns its file handle and buffer; Close flushes the
// trailing partial buffer and releases the handle.
type TrajectoryLogger struct {
	path       string
	flushEvery int

	file    *os.File
	rows    []string
	flushes int
}

// NewTrajectoryLogger returns a logger writing to path. flushEvery values
// below 1 fall back to DefaultFlushEvery. The file is not touched until
// the first Record: a fresh run then truncates any stale output from a
// previous run rather than silently appending to it.
func NewTrajectoryLogger(path string, flushEvery int) *TrajectoryLogger {
	if flushEvery < 1 {
		flushEvery = DefaultFlushEvery
	}
	return &TrajectoryLogger{
		path:       path,
		flushEvery: flushEvery,
		rows:       make([]string, 0, flushEvery),
	}
}

// Record appends one serialized trial row to the buffer, flushing when the
// flush interval is reached. Serialization failures of single columns are
// logged and skipped; they never abort the batch.
func (l *TrajectoryLogger) Record(trial *Trial) error {
	if l.file == nil {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open trajectory file %s: %w", l.path, err)
		}
		l.file = f
	}

	l.rows = append(l.rows, l.renderRow(trial))
	if len(l.rows)%l.flushEvery == 0 {
		return l.Flush()
	}
	return nil
}

// renderRow serializes a trial: the trial index, then for every step the
// observable-column values followed by the reward, all tab-separated.
func (l *TrajectoryLogger) renderRow(trial *Trial) string {
	fields := make([]string, 0, 1+trial.Len())
	fields = append(fields, strconv.Itoa(trial.Index))
	for _, step := range trial.Steps {
		for _, col := range step.Columns {
			v, err := RenderValue(col.Value)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"trial":  trial.Index,
					"column": col.Name,
				}).Warnf("skipping column: %v", err)
				continue
			}
			fields = append(fields, v)
		}
		fields = append(fields, strconv.FormatFloat(step.Reward, 'g', -1, 64))
	}
	return strings.Join(fields, "\t")
}

// Flush writes the buffered rows to stable storage and clears the buffer.
func (l *TrajectoryLogger) Flush() error {
	l.flushes++
	if l.file == nil || len(l.rows) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, row := range l.rows {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	l.rows = l.rows[:0]
	if _, err := l.file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("flush trajectory file %s: %w", l.path, err)
	}
	return nil
}

// Flushes returns the number of flush operations performed so far.
func (l *TrajectoryLogger) Flushes() int { return l.flushes }

// Close flushes the trailing buffer and closes the file. Safe to call when
// nothing was ever recorded.
func (l *TrajectoryLogger) Close() error {
	err := l.Flush()
	if l.file != nil {
		if cerr := l.file.Close(); err == nil {
			err = cerr
		}
		l.file = nil
	}
	return err
}
