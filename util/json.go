// util/json.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// LoadJSONFile reads the JSON file at path into out. Fields that are
// missing from the file keep the values that out already holds, so
// callers should initialize out with defaults first. Entries in the file
// that don't correspond to a field of T are reported via e, as they are
// almost always misspellings.
func LoadJSONFile[T any](path string, out *T, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push(path)
	defer e.Pop()

	b, err := os.ReadFile(path)
	if err != nil {
		e.Error(err)
		return
	}

	CheckJSON[T](b, e)
	if e.HaveErrors() {
		return
	}
	if err := UnmarshalJSONBytes(b, out); err != nil {
		e.Error(err)
	}
}

// Unmarshal the bytes into the given type but go through some efforts to
// return useful error messages when the JSON is invalid...
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	switch jerr := err.(type) {
	case *json.SyntaxError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %v", line, char, jerr)

	case *json.UnmarshalTypeError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, jerr.Value, jerr.Struct, jerr.Field, jerr.Type.String())

	default:
		return err
	}
}

// CheckJSON checks whether the provided JSON is syntactically valid and
// then typechecks it with respect to the provided type T.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	var items any
	if err := UnmarshalJSONBytes(contents, &items); err != nil {
		e.Error(err)
		return
	}

	ty := reflect.TypeOf((*T)(nil)).Elem()
	typeCheckJSON(items, ty, e)
}

func typeCheckJSON(item any, ty reflect.Type, e *ErrorLogger) {
	for ty.Kind() == reflect.Ptr {
		ty = ty.Elem()
	}

	unexpected := func() {
		e.ErrorString("unexpected data format provided for object: %s", reflect.TypeOf(item))
	}

	switch ty.Kind() {
	case reflect.Array, reflect.Slice:
		if array, ok := item.([]any); ok {
			for _, elem := range array {
				typeCheckJSON(elem, ty.Elem(), e)
			}
		} else {
			unexpected()
		}

	case reflect.Map:
		if m, ok := item.(map[string]any); ok {
			for k, v := range m {
				e.Push(k)
				typeCheckJSON(v, ty.Elem(), e)
				e.Pop()
			}
		} else {
			unexpected()
		}

	case reflect.Struct:
		items, ok := item.(map[string]any)
		if !ok {
			unexpected()
			return
		}

		types := make(map[string]reflect.Type)
		for _, field := range reflect.VisibleFields(ty) {
			if !field.IsExported() || field.Anonymous {
				continue
			}
			name := field.Name
			if jtag, ok := field.Tag.Lookup("json"); ok {
				if n, _, _ := strings.Cut(jtag, ","); n == "-" {
					continue
				} else if n != "" {
					name = n
				}
			}
			types[name] = field.Type
		}

		for name, v := range items {
			if fty, ok := types[name]; ok {
				e.Push(name)
				typeCheckJSON(v, fty, e)
				e.Pop()
			} else {
				e.ErrorString("The entry %q is not an expected JSON object. Is it misspelled?", name)
			}
		}

	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		if _, ok := item.(float64); !ok {
			unexpected()
		}

	case reflect.Bool:
		if _, ok := item.(bool); !ok {
			unexpected()
		}

	case reflect.String:
		if _, ok := item.(string); !ok {
			unexpected()
		}
	}
}
