package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// InsertModel renders a single-row INSERT from the db-tagged exported fields
// of model, followed by suffix (RETURNING, ON CONFLICT ...).
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errors.New("insert: no table")
	}
	fields, err := taggedFields(model)
	if err != nil {
		return "", nil, fmt.Errorf("insert into %s: %w", table, err)
	}

	var w writer
	w.raw("INSERT INTO ", table, " (")
	for i, f := range fields {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(f.column)
	}
	w.raw(") VALUES (")
	for i, f := range fields {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(f.value)
	}
	w.raw(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.raw(" ", suffix)
	}
	return w.done()
}

type taggedField struct {
	column string
	value  any
}

func taggedFields(model any) ([]taggedField, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.New("nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model is %s, not a struct", v.Kind())
	}

	t := v.Type()
	out := make([]taggedField, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(sf.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		out = append(out, taggedField{column: column, value: v.Field(i).Interface()})
	}
	if len(out) == 0 {
		return nil, errors.New("model has no db columns")
	}
	return out, nil
}
