package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"editdesk-cli/internal/model"
)

// TasksKey is the slot holding the JSON-encoded task collection.
const TasksKey = "tasks"

const tasksSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text"],
		"properties": {
			"id": {"type": "integer"},
			"text": {"type": "string"},
			"starred": {"type": "boolean"},
			"completed": {"type": "boolean"},
			"createdAt": {"type": ["string", "null"], "format": "date-time"}
		}
	}
}`

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if err := c.AddResource("tasks.schema.json", strings.NewReader(tasksSchemaJSON)); err != nil {
			tasksSchemaErr = err
			return
		}
		tasksSchema, tasksSchemaErr = c.Compile("tasks.schema.json")
	})
	return tasksSchema, tasksSchemaErr
}

// TaskStore persists the whole task collection in one slot.
type TaskStore struct {
	KV KV
}

// Load returns the persisted collection. It never fails: a missing slot, an unreadable
// slot or a value that is not a task array all yield an empty collection.
func (s TaskStore) Load() []model.Task {
	if s.KV == nil {
		return []model.Task{}
	}
	b, err := s.KV.Get(TasksKey)
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return []model.Task{}
	}
	tasks, err := decodeTasks(b)
	if err != nil {
		return []model.Task{}
	}
	return tasks
}

// Save overwrites the slot with the full collection.
func (s TaskStore) Save(tasks []model.Task) error {
	if s.KV == nil {
		return errors.New("task store: no backend")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.KV.Put(TasksKey, b)
}

// decodeTasks validates b against the task schema and decodes it. Load and the doctor
// both go through here so they agree on what reads as empty.
func decodeTasks(b []byte) ([]model.Task, error) {
	if err := validateTasks(b); err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		return nil, errors.New("task slot is null")
	}
	return tasks, nil
}

func validateTasks(b []byte) error {
	schema, err := compiledTasksSchema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return schema.Validate(v)
}
