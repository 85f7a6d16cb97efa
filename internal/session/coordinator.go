package session

import "sync"

type EventKind int

const (
	HighlightChanged EventKind = iota
	ScrollRequested
)

func (k EventKind) String() string {
	if k == ScrollRequested {
		return "scroll"
	}
	return "highlight"
}

// Event is delivered to subscribers on every set. ChunkID is nil when the
// value was cleared.
type Event struct {
	Kind    EventKind
	ChunkID *int64
}

// Coordinator shares chunk selection between the reader and the inspector.
// Ids are not checked against the loaded chunks.
type Coordinator struct {
	mu          sync.Mutex
	highlighted *int64
	scrollTo    *int64
	scrolls     []int64
	subs        map[int]func(Event)
	nextSub     int
}

func NewCoordinator() *Coordinator {
	return &Coordinator{subs: make(map[int]func(Event))}
}

func (c *Coordinator) SetHighlightedChunkID(id *int64) {
	c.mu.Lock()
	c.highlighted = copyID(id)
	c.mu.Unlock()
	c.notify(Event{Kind: HighlightChanged, ChunkID: copyID(id)})
}

func (c *Coordinator) HighlightedChunkID() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyID(c.highlighted)
}

// IsHighlighted is a convenience for renderers.
func (c *Coordinator) IsHighlighted(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted != nil && *c.highlighted == id
}

// SetScrollToChunkID records the scroll target and, for a non-nil id,
// queues a scroll. Setting the same id twice queues two scrolls.
func (c *Coordinator) SetScrollToChunkID(id *int64) {
	c.mu.Lock()
	c.scrollTo = copyID(id)
	if id != nil {
		c.scrolls = append(c.scrolls, *id)
	}
	c.mu.Unlock()
	c.notify(Event{Kind: ScrollRequested, ChunkID: copyID(id)})
}

// ScrollToChunkID is the last target set. It is never cleared by TakeScroll.
func (c *Coordinator) ScrollToChunkID() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyID(c.scrollTo)
}

// TakeScroll pops the oldest pending scroll command.
func (c *Coordinator) TakeScroll() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scrolls) == 0 {
		return 0, false
	}
	id := c.scrolls[0]
	c.scrolls = c.scrolls[1:]
	return id, true
}

// Clear drops the highlight, the scroll target and pending scrolls.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	had := c.highlighted != nil
	c.highlighted = nil
	c.scrollTo = nil
	c.scrolls = nil
	c.mu.Unlock()
	if had {
		c.notify(Event{Kind: HighlightChanged})
	}
}

// Subscribe registers fn for every subsequent event. Call the returned
// func to unsubscribe.
func (c *Coordinator) Subscribe(fn func(Event)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Coordinator) notify(ev Event) {
	c.mu.Lock()
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
