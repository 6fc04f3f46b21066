// Package tasks implements the desk's to-do list: creation, toggles, edits, deletes
// and the presentation order.
package tasks

import (
	"sort"
	"strings"
	"time"

	"editdesk-cli/internal/model"
)

// Store is the persistence the controller round-trips on every mutation.
type Store interface {
	Load() []model.Task
	Save([]model.Task) error
}

type Controller struct {
	store Store
	now   func() time.Time

	// OnChange receives the presentation-ordered collection after every mutation.
	OnChange func([]model.Task)
}

func NewController(store Store, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{store: store, now: now}
}

// Add appends a task with trimmed text. Empty text is a no-op.
func (c *Controller) Add(text string) (model.Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false, nil
	}
	tasks := c.store.Load()
	now := c.now().UTC()
	id := now.UnixMilli()
	// Two adds within the same millisecond would share an id; bump past the current max.
	if top := maxID(tasks); id <= top {
		id = top + 1
	}
	t := model.Task{
		ID:        id,
		Text:      text,
		CreatedAt: now,
	}
	tasks = append(tasks, t)
	if err := c.commit(tasks); err != nil {
		return model.Task{}, false, err
	}
	return t, true, nil
}

func (c *Controller) ToggleCompleted(id int64) error {
	return c.update(id, func(t *model.Task) bool {
		t.Completed = !t.Completed
		return true
	})
}

func (c *Controller) ToggleStar(id int64) error {
	return c.update(id, func(t *model.Task) bool {
		t.Starred = !t.Starred
		return true
	})
}

// EditText replaces the text when the trimmed input is non-empty. An empty edit keeps
// the previous text. The change hook fires either way so the editor closes.
func (c *Controller) EditText(id int64, text string) error {
	text = strings.TrimSpace(text)
	tasks := c.store.Load()
	i := indexOf(tasks, id)
	if i < 0 {
		c.notify(tasks)
		return nil
	}
	if text == "" {
		c.notify(tasks)
		return nil
	}
	tasks[i].Text = text
	return c.commit(tasks)
}

func (c *Controller) Delete(id int64) error {
	tasks := c.store.Load()
	i := indexOf(tasks, id)
	if i < 0 {
		return nil
	}
	tasks = append(tasks[:i], tasks[i+1:]...)
	return c.commit(tasks)
}

// List returns the collection in presentation order.
func (c *Controller) List() []model.Task {
	return Sorted(c.store.Load())
}

func (c *Controller) Find(id int64) (model.Task, bool) {
	tasks := c.store.Load()
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return model.Task{}, false
}

func (c *Controller) update(id int64, fn func(*model.Task) bool) error {
	tasks := c.store.Load()
	i := indexOf(tasks, id)
	if i < 0 {
		return nil
	}
	if !fn(&tasks[i]) {
		return nil
	}
	return c.commit(tasks)
}

func (c *Controller) commit(tasks []model.Task) error {
	if err := c.store.Save(tasks); err != nil {
		return err
	}
	c.notify(tasks)
	return nil
}

func (c *Controller) notify(tasks []model.Task) {
	if c.OnChange != nil {
		c.OnChange(Sorted(tasks))
	}
}

// Sorted returns a copy ordered incomplete first, then starred first, then newest first.
// Insertion order breaks any remaining ties.
func Sorted(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Starred != b.Starred {
			return a.Starred
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

func indexOf(tasks []model.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func maxID(tasks []model.Task) int64 {
	var top int64
	for _, t := range tasks {
		if t.ID > top {
			top = t.ID
		}
	}
	return top
}
