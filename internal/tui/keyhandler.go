package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler struct {
	app *App
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kh.app.clearStatus()

	if model, cmd, handled := kh.handleGlobalKeys(key); handled {
		return model, cmd
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToPane(msg)
}

// handleGlobalKeys covers keys that work even while typing.
func (kh *KeyHandler) handleGlobalKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	switch key {
	case "ctrl+c":
		return a, tea.Quit, true
	case "tab":
		a.setFocus(a.focus.next())
		return a, nil, true
	case "shift+tab":
		a.setFocus(a.focus.prev())
		return a, nil, true
	case "ctrl+o":
		url, ok := a.openTarget()
		if !ok {
			a.setStatus(MsgNothingToOpen, StatusWarn)
			return a, nil, true
		}
		return a, a.openURL(url), true
	case "ctrl+right":
		return a, a.nextPage(), true
	case "ctrl+left":
		return a, a.prevPage(), true
	}
	return a, nil, false
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.focus {
	case PaneSearch:
		return kh.app.searchPane.inputFocused()
	case PaneInspector:
		return kh.app.inspector.finding
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	if a.focus == PaneInspector {
		switch msg.String() {
		case "enter":
			a.inspector.closeFind(true)
			return a, nil
		case "esc":
			a.inspector.closeFind(false)
			return a, nil
		default:
			return a, a.inspector.updateFind(msg)
		}
	}

	switch msg.String() {
	case "enter":
		return a, a.submitSearch()
	case "esc":
		// A second esc on an empty input moves to the results.
		if !a.searchPane.clearInput() && len(a.searchPane.list.Items()) > 0 {
			a.searchPane.focusList()
		}
		return a, nil
	case "up":
		a.searchPane.recallOlder()
		return a, nil
	case "down":
		a.searchPane.recallNewer()
		return a, nil
	default:
		return a, a.searchPane.updateInput(msg)
	}
}

// handleCustomKeys handles pane actions when no input has focus.
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	if key == "q" {
		return a, tea.Quit, true
	}

	switch a.focus {
	case PaneSearch:
		return kh.handleSearchKeys(key)
	case PaneReader:
		return kh.handleReaderKeys(key)
	case PaneInspector:
		return kh.handleInspectorKeys(key)
	default:
		return a, nil, false
	}
}

func (kh *KeyHandler) handleSearchKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	switch key {
	case "enter":
		article, ok := a.searchPane.selected()
		if !ok {
			return a, nil, true
		}
		return a, a.selectArticle(article), true
	case "/", "i":
		return a, a.searchPane.focusInput(), true
	case "]":
		return a, a.nextPage(), true
	case "[":
		return a, a.prevPage(), true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleReaderKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	switch key {
	case "esc":
		a.deselectArticle()
		return a, nil, true
	case "g", "home":
		a.reader.gotoTop()
		return a, nil, true
	case "G", "end":
		a.reader.viewport.GotoBottom()
		return a, nil, true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleInspectorKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	switch key {
	case "up", "k":
		a.inspector.move(-1)
	case "down", "j":
		a.inspector.move(1)
	case "pgup":
		a.inspector.move(-a.inspector.visibleRows())
	case "pgdown":
		a.inspector.move(a.inspector.visibleRows())
	case "g", "home":
		a.inspector.moveTo(0)
	case "G", "end":
		a.inspector.moveTo(len(a.inspector.rows()) - 1)
	case "enter":
		a.inspector.activate()
	case "/":
		return a, a.inspector.openFind(), true
	case "esc":
		if a.inspector.filtered() {
			a.inspector.closeFind(false)
		} else {
			a.coord.SetHighlightedChunkID(nil)
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (kh *KeyHandler) delegateToPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch a.focus {
	case PaneSearch:
		return a, a.searchPane.updateList(msg)
	case PaneReader:
		return a, a.reader.update(msg)
	default:
		return a, nil
	}
}

// GetHelpForCurrentPane returns the key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentPane() []string {
	a := kh.app
	switch a.focus {
	case PaneSearch:
		if a.searchPane.inputFocused() {
			return []string{"enter: search", "↑↓: history", "esc: clear", "tab: next pane"}
		}
		help := []string{"enter: read", "/: edit query"}
		if a.search.HasPreviousPage() || a.search.HasNextPage() {
			help = append(help, "[ ]: page")
		}
		return append(help, "ctrl+o: open", "tab: next pane", "q: quit")

	case PaneReader:
		if a.reading.Selected() == nil {
			return []string{"tab: next pane", "q: quit"}
		}
		return []string{"↑↓: scroll", "esc: close", "ctrl+o: open", "tab: next pane"}

	case PaneInspector:
		if a.inspector.finding {
			return []string{"type to find", "enter: keep", "esc: clear"}
		}
		return []string{"↑↓: highlight", "enter: scroll to", "/: find", "tab: next pane"}

	default:
		return []string{}
	}
}
