package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit    key.Binding
	Apps    key.Binding
	Burst   key.Binding
	Pause   key.Binding
	Move    key.Binding
	Open    key.Binding
	Search  key.Binding
	Status  key.Binding
	Tag     key.Binding
	Clear   key.Binding
	Page    key.Binding
	Focus   key.Binding
	Close   key.Binding
	Gallery key.Binding
	Scroll  key.Binding
	Submit  key.Binding
	Toggle  key.Binding
	Skip    key.Binding
	Disable key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Apps:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "apps")),
		Burst:   key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "signal burst")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause ticker")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Tag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Page:    key.NewBinding(key.WithKeys("[", "]", "pgup", "pgdown"), key.WithHelp("[ ]", "page")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Gallery: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "gallery")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑↓", "scroll")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space", "toggle")),
		Skip:    key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "skip")),
		Disable: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "disable boot")),
	}
}

// helpKeys is the help.KeyMap for the current context.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (m appModel) contextKeys() helpKeys {
	k := m.keys
	if m.bootVisible() {
		return helpKeys{k.Skip, k.Disable}
	}
	switch m.modal {
	case modalProject:
		return helpKeys{k.Close, k.Focus, k.Submit, k.Gallery, k.Scroll}
	case modalDiagnostics:
		return helpKeys{k.Close}
	}
	switch m.screen {
	case screenProjects:
		if m.searching {
			return helpKeys{key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done"))}
		}
		return helpKeys{k.Move, k.Open, k.Search, k.Status, k.Tag, k.Clear, k.Page, k.Apps, k.Quit}
	case screenArchive:
		return helpKeys{k.Move, k.Open, k.Search, k.Tag, k.Page, k.Apps, k.Quit}
	case screenStudio:
		return helpKeys{k.Focus, k.Toggle, k.Burst, k.Apps, k.Quit}
	case screenContact:
		return helpKeys{k.Focus, k.Submit, k.Close}
	default:
		return helpKeys{k.Move, k.Open, k.Pause, k.Burst, k.Apps, k.Quit}
	}
}
