package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// orderedKeys walks the top level of a JSON object and returns its keys in
// document order alongside the raw value bytes per key. sonic decodes values
// but does not expose key order, so the walk uses the stdlib token decoder.
func orderedKeys(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	raw := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		raw[key] = value
	}
	return keys, raw, nil
}

// Write persists the record into dir under its canonical filename and returns
// the full path. A record with no sections is not written: a document whose
// sections all came up empty produces no output at all.
func Write(dir string, rec DocumentRecord) (string, error) {
	if len(rec.Sections) == 0 {
		return "", nil
	}
	data, err := sonic.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("record: marshal %q: %w", rec.Meta.Title, err)
	}
	path := filepath.Join(dir, Filename(rec.Meta.Title, rec.Meta.Year))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("record: write %s: %w", path, err)
	}
	return path, nil
}

// Read loads a persisted record from path.
func Read(path string) (DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("record: read %s: %w", path, err)
	}
	var rec DocumentRecord
	if err := rec.UnmarshalJSON(data); err != nil {
		return DocumentRecord{}, fmt.Errorf("record: decode %s: %w", path, err)
	}
	return rec, nil
}
