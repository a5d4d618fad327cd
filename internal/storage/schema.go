package storage

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/sandeepkv93/tasker/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	tasksSchemaName    = "schemas/tasks.schema.json"
	settingsSchemaName = "schemas/settings.schema.json"
)

// Problem is one schema violation found in a persisted file.
type Problem struct {
	Location string
	Message  string
}

func (p Problem) String() string {
	if p.Location == "" {
		return p.Message
	}
	return p.Location + ": " + p.Message
}

// CheckResult describes a persisted file as seen by the schema check.
// A missing file is not a problem: loading it yields the defaults.
// Warnings cover data that loads but is not in its canonical form.
type CheckResult struct {
	Path     string
	Exists   bool
	Problems []Problem
	Warnings []Problem
}

func (r CheckResult) OK() bool {
	return len(r.Problems) == 0
}

func CheckTasksFile(path string) (CheckResult, error) {
	res, doc, err := checkFile(path, tasksSchemaName)
	if err != nil {
		return res, err
	}
	res.Warnings = deadlineWarnings(doc)
	return res, nil
}

func CheckSettingsFile(path string) (CheckResult, error) {
	res, _, err := checkFile(path, settingsSchemaName)
	return res, err
}

func checkFile(path, schemaName string) (CheckResult, any, error) {
	res := CheckResult{Path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, nil, nil
		}
		return res, nil, fmt.Errorf("read %s: %w", path, err)
	}
	res.Exists = true
	if len(bytes.TrimSpace(raw)) == 0 {
		return res, nil, nil
	}

	schema, err := compileSchema(schemaName)
	if err != nil {
		return res, nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		res.Problems = append(res.Problems, Problem{Message: fmt.Sprintf("invalid JSON: %v", err)})
		return res, nil, nil
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return res, nil, fmt.Errorf("validate %s: %w", path, err)
		}
		res.Problems = append(res.Problems, collectProblems(ve)...)
	}
	return res, doc, nil
}

// deadlineWarnings reports deadlines that are not DD.MM.YYYY. They load and
// display as stored but never count as overdue.
func deadlineWarnings(doc any) []Problem {
	items, ok := doc.([]any)
	if !ok {
		return nil
	}
	var out []Problem
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		due, ok := rec["deadline"].(string)
		if !ok || due == "" {
			continue
		}
		if _, err := model.ParseDeadline(due); err != nil {
			out = append(out, Problem{
				Location: fmt.Sprintf("/%d/deadline", i),
				Message:  fmt.Sprintf("%q is not DD.MM.YYYY, never counted as overdue", due),
			})
		}
	}
	return out
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	body, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	schema, err := jsonschema.CompileString(name, string(body))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// collectProblems flattens the leaf causes of a validation error.
func collectProblems(ve *jsonschema.ValidationError) []Problem {
	var out []Problem
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e == nil {
			return
		}
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, Problem{Location: loc, Message: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}
