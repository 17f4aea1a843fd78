package sim

import (
	"fmt"
	"strconv"
)

// Category tags a fluent declaration once, when the model is built,
// instead of being inferred from the variable's name at log time.
type Category int

const (
	CategoryState Category = iota
	CategoryAction
	CategoryObservation
	// CategoryDerived marks intermediate fluents declared externally
	// relevant; they are logged.
	CategoryDerived
	// CategoryIntermediate marks purely internal intermediates; never
	// logged.
	CategoryIntermediate
	// CategoryConstant marks non-fluents; they carry no information
	// across a trajectory and are never logged.
	CategoryConstant
)

func (c Category) String() string {
	switch c {
	case CategoryState:
		return "state"
	case CategoryAction:
		return "action"
	case CategoryObservation:
		return "observation"
	case CategoryDerived:
		return "derived"
	case CategoryIntermediate:
		return "intermediate"
	case CategoryConstant:
		return "constant"
	}
	return "unknown"
}

// VarDecl declares one fluent of a domain. Declaration order is the
// column order of trajectory rows.
type VarDecl struct {
	Name     string
	Category Category
}

// Column is one (name, value) cell of a trajectory row. A nil value means
// the fluent has no assignment at this epoch.
type Column struct {
	Name  string
	Value any
}

// SelectObservable filters declarations down to the loggable columns of
// one epoch, in declaration order: constants and internal intermediates
// never appear, derived fluents always do, state fluents are suppressed
// when the process is partially observed, observation fluents always
// appear. Actions are logged as part of the step's action set, not as
// columns.
func SelectObservable(decls []VarDecl, value func(name string) any, partiallyObserved bool) []Column {
	columns := make([]Column, 0, len(decls))
	for _, d := range decls {
		switch d.Category {
		case CategoryConstant, CategoryIntermediate, CategoryAction:
			continue
		case CategoryState:
			if partiallyObserved {
				continue
			}
		}
		columns = append(columns, Column{Name: d.Name, Value: value(d.Name)})
	}
	return columns
}

// RenderValue serializes one column value: booleans as 1/0, everything
// else in its natural text form. A nil value is an error; the caller
// skips the slot rather than aborting the row.
func RenderValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", fmt.Errorf("no value assigned")
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case int:
		return strconv.Itoa(val), nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}
