package field

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("string is not valid UTF-8")

// MarshalJSON renders v as a two-space indented JSON document without a
// trailing newline. HTML characters are written literally. Map keys come out
// sorted.
func MarshalJSON(document string, v any) (string, error) {
	if name, err := checkUTF8(reflect.ValueOf(v), ""); err != nil {
		return "", &SerializeError{Document: document, Field: name, Err: err}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", &SerializeError{Document: document, Err: err}
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// checkUTF8 walks v, including unexported union fields, and reports the first
// string encoding/json would otherwise replace with U+FFFD.
func checkUTF8(v reflect.Value, path string) (string, error) {
	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return path, errInvalidUTF8
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			return checkUTF8(v.Elem(), path)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if name, err := checkUTF8(v.Field(i), join(path, t.Field(i).Name)); err != nil {
				return name, err
			}
		}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return "", nil
		}
		for i := 0; i < v.Len(); i++ {
			if name, err := checkUTF8(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return name, err
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key())
			if name, err := checkUTF8(iter.Key(), join(path, key)); err != nil {
				return name, err
			}
			if name, err := checkUTF8(iter.Value(), join(path, key)); err != nil {
				return name, err
			}
		}
	}
	return "", nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
