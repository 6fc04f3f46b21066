package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"editdesk-cli/internal/model"
	"editdesk-cli/internal/render"
	"editdesk-cli/internal/store"
	"editdesk-cli/internal/tasks"
)

// taskView receives the controller's change notifications; rows are rebuilt from it on
// every render.
type taskView struct {
	tasks []model.Task
}

type todoPage struct {
	ctrl  *tasks.Controller
	shown *taskView
	input textinput.Model
	edit  textinput.Model

	listFocus bool
	cursor    int
	// editing is set while the text of task editID is being edited.
	editing bool
	editID  int64
}

func newTodoPage(kv store.KV) todoPage {
	shown := &taskView{}
	ctrl := tasks.NewController(store.TaskStore{KV: kv}, nil)
	ctrl.OnChange = func(ts []model.Task) { shown.tasks = ts }
	shown.tasks = ctrl.List()

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "add a task"
	input.Focus()

	edit := textinput.New()
	edit.Prompt = ""

	return todoPage{ctrl: ctrl, shown: shown, input: input, edit: edit}
}

func (t todoPage) rows() []render.TaskRow {
	return render.TaskRows(t.shown.tasks, rowGlyphs())
}

func (t *todoPage) selected() (render.TaskRow, bool) {
	rows := t.rows()
	if t.cursor < 0 || t.cursor >= len(rows) {
		return render.TaskRow{}, false
	}
	return rows[t.cursor], true
}

// follow keeps the cursor on task id after a reorder.
func (t *todoPage) follow(id int64) {
	rows := t.rows()
	for i, r := range rows {
		if r.TaskID == id {
			t.cursor = i
			return
		}
	}
	t.clamp()
}

func (t *todoPage) clamp() {
	n := len(t.rows())
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *todoPage) setListFocus(on bool) {
	t.listFocus = on
	if on {
		t.input.Blur()
	} else {
		t.input.Focus()
	}
}

func (m *appModel) updateTodo(msg tea.KeyMsg) tea.Cmd {
	t := &m.todo

	if t.editing {
		if key.Matches(msg, keySubmit) || key.Matches(msg, keyClose) {
			id := t.editID
			t.editing = false
			t.edit.Blur()
			if err := t.ctrl.EditText(id, t.edit.Value()); err != nil {
				return m.setStatus("save task failed: "+err.Error(), true)
			}
			t.follow(id)
			return nil
		}
		var cmd tea.Cmd
		t.edit, cmd = t.edit.Update(msg)
		return cmd
	}

	if key.Matches(msg, keyFocus) || key.Matches(msg, keyBack) {
		t.setListFocus(!t.listFocus)
		return nil
	}

	if !t.listFocus {
		if key.Matches(msg, keySubmit) {
			task, ok, err := t.ctrl.Add(t.input.Value())
			if err != nil {
				return m.setStatus("add task failed: "+err.Error(), true)
			}
			if ok {
				t.input.SetValue("")
				t.follow(task.ID)
			}
			return nil
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keyUp):
		if t.cursor > 0 {
			t.cursor--
		}
		return nil
	case key.Matches(msg, keyDown):
		if t.cursor < len(t.rows())-1 {
			t.cursor++
		}
		return nil
	}

	row, ok := t.selected()
	if !ok {
		return nil
	}
	var err error
	switch {
	case key.Matches(msg, keyToggleDone):
		err = t.ctrl.ToggleCompleted(row.TaskID)
		t.follow(row.TaskID)
	case key.Matches(msg, keyStar):
		err = t.ctrl.ToggleStar(row.TaskID)
		t.follow(row.TaskID)
	case key.Matches(msg, keyEdit), key.Matches(msg, keySubmit):
		t.editing, t.editID = true, row.TaskID
		t.edit.SetValue(row.Text)
		t.edit.CursorEnd()
		return t.edit.Focus()
	case key.Matches(msg, keyDelete):
		err = t.ctrl.Delete(row.TaskID)
		t.clamp()
	}
	if err != nil {
		return m.setStatus("save task failed: "+err.Error(), true)
	}
	return nil
}

func (t todoPage) view(w int) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("To-do"))
	b.WriteString("\n")
	b.WriteString(renderInputLine(w, "new", t.input.View()))
	b.WriteString("\n\n")

	rows := t.rows()
	if len(rows) == 0 {
		b.WriteString(styleMuted().Render("no tasks"))
		return b.String()
	}
	done := styleMuted().Strikethrough(true)
	for i, r := range rows {
		text := r.Text
		editingRow := t.editing && r.TaskID == t.editID
		if editingRow {
			text = t.edit.View()
		} else if r.Completed {
			text = done.Render(text)
		}
		cursor := "  "
		if t.listFocus && i == t.cursor {
			cursor = glyphCursor() + " "
		}
		line := cursor + r.Checkbox + " " + text + " " + r.StarGlyph + " " + styleMuted().Render(r.Delete)
		if t.listFocus && i == t.cursor && !editingRow {
			line = styleSelected().Render(line)
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(w).Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
