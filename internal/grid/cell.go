package grid

import "sort"

// Record is the serialized form of a cell: a state code plus its properties.
type Record struct {
	State      int                `json:"state"`
	Properties map[string]float64 `json:"properties,omitempty"`
}

// Link ties a neighbor direction to the arena index of the neighboring cell.
type Link struct {
	Dir   Direction
	Index int
}

// QueueEntry is staged multi-tick bookkeeping parked on a cell, such as the
// species a cell held before it was infected.
type QueueEntry struct {
	State      State
	Ticks      int
	Properties map[string]float64
}

type pendingValue struct {
	value   float64
	deleted bool
}

// Cell is a single grid location. Reads see the committed generation; writes
// are staged until the owning Grid commits.
type Cell struct {
	Row, Col int

	index   int
	current State
	next    State
	props   map[string]float64
	pending map[string]pendingValue
	links   []Link
	queue   []QueueEntry
}

// CellFactory builds a cell from its serialized record.
type CellFactory func(row, col int, rec Record) Cell

// NewFactory returns a CellFactory decoding state codes through states.
func NewFactory(states StateSet) CellFactory {
	return func(row, col int, rec Record) Cell {
		st := states.Decode(rec.State)
		props := make(map[string]float64, len(rec.Properties))
		for k, v := range rec.Properties {
			props[k] = v
		}
		return Cell{Row: row, Col: col, current: st, next: st, props: props}
	}
}

// Index returns the cell's position in the grid arena.
func (c *Cell) Index() int { return c.index }

// State returns the committed state.
func (c *Cell) State() State { return c.current }

// NextState returns the staged state, which equals State until written.
func (c *Cell) NextState() State { return c.next }

// SetNextState stages st for the next commit.
func (c *Cell) SetNextState(st State) { c.next = st }

// Property returns the committed value for key, or 0 when absent.
func (c *Cell) Property(key string) float64 { return c.props[key] }

// HasProperty reports whether key is present in the committed properties.
func (c *Cell) HasProperty(key string) bool {
	_, ok := c.props[key]
	return ok
}

// SetProperty stages a property write.
func (c *Cell) SetProperty(key string, value float64) {
	if c.pending == nil {
		c.pending = make(map[string]pendingValue)
	}
	c.pending[key] = pendingValue{value: value}
}

// ClearProperty stages removal of key.
func (c *Cell) ClearProperty(key string) {
	if c.pending == nil {
		c.pending = make(map[string]pendingValue)
	}
	c.pending[key] = pendingValue{deleted: true}
}

// NextProperty returns the staged value for key when one exists, otherwise
// the committed value.
func (c *Cell) NextProperty(key string) float64 {
	if p, ok := c.pending[key]; ok {
		if p.deleted {
			return 0
		}
		return p.value
	}
	return c.props[key]
}

// Properties returns a copy of the committed properties.
func (c *Cell) Properties() map[string]float64 {
	out := make(map[string]float64, len(c.props))
	for k, v := range c.props {
		out[k] = v
	}
	return out
}

// PropertyKeys lists committed property keys in sorted order.
func (c *Cell) PropertyKeys() []string {
	keys := make([]string, 0, len(c.props))
	for k := range c.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Links exposes the neighbor links computed for the cell.
func (c *Cell) Links() []Link { return c.links }

// Push appends an entry to the back of the cell's queue.
func (c *Cell) Push(e QueueEntry) { c.queue = append(c.queue, e) }

// Front returns the oldest queue entry for in-place updates.
func (c *Cell) Front() (*QueueEntry, bool) {
	if len(c.queue) == 0 {
		return nil, false
	}
	return &c.queue[0], true
}

// Pop removes and returns the oldest queue entry.
func (c *Cell) Pop() (QueueEntry, bool) {
	if len(c.queue) == 0 {
		return QueueEntry{}, false
	}
	e := c.queue[0]
	c.queue = c.queue[1:]
	if len(c.queue) == 0 {
		c.queue = nil
	}
	return e, true
}

// QueueLen returns the number of queued entries.
func (c *Cell) QueueLen() int { return len(c.queue) }

// MoveQueueTo hands every queued entry to dst, leaving c empty.
func (c *Cell) MoveQueueTo(dst *Cell) {
	if dst == c {
		return
	}
	dst.queue = append(dst.queue, c.queue...)
	c.queue = nil
}

func (c *Cell) commit() {
	c.current = c.next
	if len(c.pending) == 0 {
		return
	}
	if c.props == nil {
		c.props = make(map[string]float64, len(c.pending))
	}
	for k, p := range c.pending {
		if p.deleted {
			delete(c.props, k)
			continue
		}
		c.props[k] = p.value
	}
	clear(c.pending)
}
