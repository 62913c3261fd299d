package style

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/multierr"
)

// FieldError describes one invalid style value.
type FieldError struct {
	Path  string
	Value string
	Want  string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: invalid value %q (want %s)", e.Path, e.Value, e.Want)
}

// Validate checks every set leaf of v: enumerated fields must hold a known
// member, length fields a CSS length, colour fields a CSS colour. All
// problems are combined into one error; use multierr.Errors to split it.
// prefix is prepended to reported paths and may be empty.
func Validate(v any, prefix string) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return validateStruct(rv, prefix)
}

func validateStruct(rv reflect.Value, prefix string) error {
	var errs error
	t := rv.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() != reflect.Pointer || fv.IsNil() {
			continue
		}
		path := joinPath(prefix, name)
		elem := fv.Elem()
		if elem.Kind() == reflect.Struct {
			errs = multierr.Append(errs, validateStruct(elem, path))
			continue
		}
		errs = multierr.Append(errs, validateLeaf(path, elem, f.Tag.Get("css")))
	}
	return errs
}

func validateLeaf(path string, v reflect.Value, kind string) error {
	if e, ok := v.Interface().(enum); ok {
		if e.Valid() {
			return nil
		}
		return &FieldError{
			Path:  path,
			Value: v.String(),
			Want:  "one of " + strings.Join(e.Options(), ", "),
		}
	}
	if v.Kind() != reflect.String {
		return nil
	}
	value := v.String()
	switch kind {
	case "length":
		if !IsLength(value) {
			return &FieldError{Path: path, Value: value, Want: "a CSS length such as 8px"}
		}
	case "color":
		if !IsColor(value) {
			return &FieldError{Path: path, Value: value, Want: "a CSS colour such as #F8F8FF"}
		}
	case "font":
		if !IsFontFamily(value) {
			return &FieldError{Path: path, Value: value, Want: "font family names such as Karla, sans-serif"}
		}
	}
	return nil
}
