// Package events carries batch progress notifications from the scanner and
// the shortcut registry to whoever listens (CLI progress lines, the /events
// websocket, tests).
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"civitaid/pkg/types"
)

// Event names.
const (
	BatchStart       = "batch.start"
	BatchEnd         = "batch.end"
	ScanProgress     = "scan.progress"
	InfoResolved     = "info.resolved"
	InfoUnregistered = "info.unregistered"
	InfoSkipped      = "info.skipped"
	SidecarRenamed   = "sidecar.renamed"
	ShortcutUpdated  = "shortcut.updated"
	ShortcutFailed   = "shortcut.failed"
)

// Publisher receives events. Implementations should be lightweight and
// non-blocking; Publish must not panic.
type Publisher interface {
	Publish(types.Event)
}

// Noop drops events.
type Noop struct{}

func (Noop) Publish(types.Event) {}

// NewBatchID returns a fresh id for a batch operation.
func NewBatchID() string { return uuid.NewString() }

// Batch stamps events of one operation with its id and total.
type Batch struct {
	ID    string
	Total int
	pub   Publisher
}

// StartBatch publishes BatchStart and returns a Batch for the follow-ups.
func StartBatch(pub Publisher, op string, total int) *Batch {
	if pub == nil {
		pub = Noop{}
	}
	b := &Batch{ID: NewBatchID(), Total: total, pub: pub}
	b.Emit(BatchStart, "", 0, map[string]any{"op": op})
	return b
}

// Emit publishes one event of the batch.
func (b *Batch) Emit(name, item string, done int, fields map[string]any) {
	b.pub.Publish(types.Event{
		Name:     name,
		Batch:    b.ID,
		Item:     item,
		Done:     done,
		Total:    b.Total,
		Fields:   fields,
		TimeUnix: time.Now().Unix(),
	})
}

// End publishes BatchEnd.
func (b *Batch) End(done int, fields map[string]any) { b.Emit(BatchEnd, "", done, fields) }

// Memory stores events in-memory for tests.
type Memory struct {
	mu     sync.Mutex
	events []types.Event
}

func NewMemory() *Memory { return &Memory{} }

func (p *Memory) Publish(e types.Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *Memory) Events() []types.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Names returns the event names in publish order.
func (p *Memory) Names() []string {
	evs := p.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}
