package helpers

import (
	"bytes"
	"encoding/json"
	"os"
)

func MarshalJson(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	return buf.Bytes(), err
}

func MarshalJsonIndent(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	return buf.Bytes(), err
}

func WriteJsonFile(path string, v any) error {
	b, err := MarshalJsonIndent(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
