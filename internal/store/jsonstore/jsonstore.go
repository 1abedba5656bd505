package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

const DefaultFileName = "todos.json"

const schemaURL = "todos.schema.json"

const schemaText = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "todos"],
  "properties": {
    "title": {"type": "string"},
    "todos": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "done"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "done": {"type": "boolean"}
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaText)

type document struct {
	Title string       `json:"title"`
	Todos []model.Todo `json:"todos"`
}

// Load reads the list stored at path. A missing file is an empty list.
func Load(path string) (*model.List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewList(model.DefaultTitle), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(b)
}

// Decode validates and parses a stored document.
func Decode(b []byte) (*model.List, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	l := model.NewList(doc.Title)
	for _, t := range doc.Todos {
		l.Add(t)
	}
	return l, nil
}

// Encode renders l with 2-space indentation and a trailing newline.
func Encode(l *model.List) ([]byte, error) {
	doc := document{Title: l.Title(), Todos: l.ToSlice()}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

func Save(path string, l *model.List) error {
	b, err := Encode(l)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
