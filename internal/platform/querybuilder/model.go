package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel starts an insert whose columns come from the model's db tags.
func InsertModel(table string, model any) *InsertBuilder {
	b := InsertInto(table)
	cols, vals, err := modelColumns(model)
	if err != nil {
		b.err = err
		return b
	}
	return b.Columns(cols...).Values(vals...)
}

// InsertModels starts one multi-row insert. Every model shares the type T, so
// the first row fixes the column list.
func InsertModels[T any](table string, models []T) *InsertBuilder {
	b := InsertInto(table)
	if len(models) == 0 {
		b.err = fmt.Errorf("insert models are required")
		return b
	}

	for i, model := range models {
		cols, vals, err := modelColumns(model)
		if err != nil {
			b.err = fmt.Errorf("model %d: %w", i, err)
			return b
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
