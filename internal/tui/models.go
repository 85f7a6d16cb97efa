package tui

// Pane identifies one of the three dashboard panes.
type Pane int

const (
	PaneSearch Pane = iota
	PaneReader
	PaneInspector
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneSearch:
		return "search"
	case PaneReader:
		return "reader"
	case PaneInspector:
		return "inspector"
	default:
		return "unknown"
	}
}

func (p Pane) next() Pane { return (p + 1) % paneCount }
func (p Pane) prev() Pane { return (p + paneCount - 1) % paneCount }
