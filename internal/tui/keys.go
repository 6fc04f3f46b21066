package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Quit  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Pages []key.Binding
}

var gkeys = globalKeys{
	Quit: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	Next: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "next/prev page")),
	Prev: key.NewBinding(key.WithKeys("ctrl+p")),
	Pages: []key.Binding{
		key.NewBinding(key.WithKeys("f1")),
		key.NewBinding(key.WithKeys("f2")),
		key.NewBinding(key.WithKeys("f3")),
		key.NewBinding(key.WithKeys("f4")),
		key.NewBinding(key.WithKeys("f5")),
		key.NewBinding(key.WithKeys("f6")),
	},
}

var (
	keyFocus  = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field"))
	keyBack   = key.NewBinding(key.WithKeys("shift+tab"))
	keySubmit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	keyClose  = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyLeft   = key.NewBinding(key.WithKeys("left", "h"))
	keyRight  = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "column"))

	keySearchType    = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "search type"))
	keyOpenFolder    = key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open folder"))
	keyProgramFolder = key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "program folder"))

	keyToggleDone = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done"))
	keyStar       = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star"))
	keyEdit       = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyDelete     = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete"))

	keyFeeToggle = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle"))
	keyFilter    = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	keyReload    = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))

	keySaveNow  = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save now"))
	keyNextNote = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next note"))

	keyCopyReply = key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy reply"))
	keyScrollUp  = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll"))
	keyScrollDn  = key.NewBinding(key.WithKeys("pgdown"))
)
