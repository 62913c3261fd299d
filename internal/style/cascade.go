package style

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a field path does not name a style field.
var ErrUnknownField = errors.New("unknown style field")

// Merge folds layers, lowest precedence first, into a new value.
//
// The walk is per leaf, not per object: nested structs are merged field by
// field, a set leaf in a later layer replaces the earlier value, and an unset
// (nil) leaf never erases one. Presence is decided by the pointer alone, so
// an explicit false or empty string still overrides. Nil layers are skipped.
// The result shares no pointers with the inputs.
func Merge[T any](layers ...*T) T {
	var out T
	dst := reflect.ValueOf(&out).Elem()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		mergeStruct(dst, reflect.ValueOf(layer).Elem())
	}
	return out
}

// Cascade merges the four tiers in precedence order.
func Cascade[T any](def, global, tmpl, inline *T) T {
	return Merge(def, global, tmpl, inline)
}

func mergeStruct(dst, src reflect.Value) {
	for i := range src.NumField() {
		if !src.Type().Field(i).IsExported() {
			continue
		}
		mergeField(dst.Field(i), src.Field(i))
	}
}

func mergeField(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return
		}
		if src.Elem().Kind() == reflect.Struct {
			if dst.IsNil() {
				dst.Set(reflect.New(src.Type().Elem()))
			}
			mergeStruct(dst.Elem(), src.Elem())
			return
		}
		leaf := reflect.New(src.Type().Elem())
		leaf.Elem().Set(src.Elem())
		dst.Set(leaf)
	case reflect.Struct:
		mergeStruct(dst, src)
	case reflect.Slice:
		if src.IsNil() {
			return
		}
		cp := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		reflect.Copy(cp, src)
		dst.Set(cp)
	}
}

// Field returns the value at path taken from the highest layer that sets
// it. Layers are given lowest precedence first. The boolean reports whether
// any layer set the field.
func Field[T any](path string, layers ...*T) (any, bool) {
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i] == nil {
			continue
		}
		if v, ok := Get(layers[i], path); ok {
			return v, true
		}
	}
	return nil, false
}

// Get returns the leaf value at a dotted JSON field path, such as
// "cardStyle.cornerRadius.topLeft". Named string types come back as their
// named type. It reports false when any step of the path is unset or unknown.
func Get(v any, path string) (any, bool) {
	field, err := lookup(reflect.ValueOf(v), splitPath(path), false)
	if err != nil || !field.IsValid() || field.Kind() != reflect.Pointer || field.IsNil() {
		return nil, false
	}
	return field.Elem().Interface(), true
}

// Set parses raw into the leaf at path, allocating intermediate objects.
// Boolean leaves accept strconv.ParseBool syntax; string leaves take raw
// verbatim. v must be a non-nil pointer to a style struct.
func Set(v any, path, raw string) error {
	field, err := lookup(reflect.ValueOf(v), splitPath(path), true)
	if err != nil {
		return err
	}
	if field.Kind() != reflect.Pointer || field.Type().Elem().Kind() == reflect.Struct {
		return fmt.Errorf("%w: %s is not a leaf", ErrUnknownField, path)
	}

	leaf := reflect.New(field.Type().Elem())
	switch leaf.Elem().Kind() {
	case reflect.String:
		leaf.Elem().SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &FieldError{Path: path, Value: raw, Want: "true or false"}
		}
		leaf.Elem().SetBool(b)
	default:
		return fmt.Errorf("%w: %s has unsupported kind %s", ErrUnknownField, path, leaf.Elem().Kind())
	}
	field.Set(leaf)
	return nil
}

// Unset clears the field at path so it inherits from lower tiers again.
// Clearing an object path clears the whole sub-tree.
func Unset(v any, path string) error {
	field, err := lookup(reflect.ValueOf(v), splitPath(path), false)
	if err != nil {
		return err
	}
	if !field.IsValid() {
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("%s: style value is not addressable", path)
	}
	field.Set(reflect.Zero(field.Type()))
	return nil
}

// Missing lists the leaf paths of v that are unset. A resolved tree has
// none.
func Missing(v any) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Paths(v)
		}
		rv = rv.Elem()
	}
	var missing []string
	walkLeaves(rv.Type(), "", func(path string, _ reflect.StructField) {
		if _, ok := Get(v, path); !ok {
			missing = append(missing, path)
		}
	})
	return missing
}

// Paths lists every leaf path of the style type of v, set or not.
func Paths(v any) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var paths []string
	walkLeaves(t, "", func(path string, _ reflect.StructField) {
		paths = append(paths, path)
	})
	return paths
}

// walkLeaves calls fn for every optional leaf reachable from struct type t.
func walkLeaves(t reflect.Type, prefix string, fn func(path string, f reflect.StructField)) {
	for i := range t.NumField() {
		f := t.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		path := joinPath(prefix, name)
		ft := f.Type
		if ft.Kind() != reflect.Pointer {
			continue
		}
		if ft.Elem().Kind() == reflect.Struct {
			walkLeaves(ft.Elem(), path, fn)
			continue
		}
		fn(path, f)
	}
}

// lookup walks parts from v and returns the addressable field at the end of
// the path. With alloc set, nil intermediate objects are created; without
// it, an unset intermediate yields an invalid Value and no error.
func lookup(v reflect.Value, parts []string, alloc bool) (reflect.Value, error) {
	if len(parts) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: empty path", ErrUnknownField)
	}
	cur := v
	for i, part := range parts {
		for cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				if !alloc || !cur.CanSet() {
					return reflect.Value{}, nil
				}
				cur.Set(reflect.New(cur.Type().Elem()))
			}
			cur = cur.Elem()
		}
		if cur.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(parts[:i+1], "."))
		}
		idx := fieldIndex(cur.Type(), part)
		if idx < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(parts[:i+1], "."))
		}
		cur = cur.Field(idx)
	}
	return cur, nil
}

func fieldIndex(t reflect.Type, name string) int {
	for i := range t.NumField() {
		if jsonName(t.Field(i)) == name {
			return i
		}
	}
	return -1
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func splitPath(path string) []string {
	path = strings.Trim(path, ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
