package reservation

import (
	"sync"

	"tessera/internal/seats"
)

// Snapshot is one consistent view of the session: the seat map plus
// the session's own selection at a point in time
type Snapshot struct {
	SeatMap  seats.SeatMap  `json:"seat_map"`
	Selected []seats.SeatID `json:"selected"`
	Version  uint64         `json:"version"`
}

// Registry fans session snapshots out to subscribers. Channels are
// buffered one deep and latest-wins: a slow subscriber sees the newest
// snapshot, never a backlog.
type Registry struct {
	mu      sync.Mutex
	subs    map[int]chan Snapshot
	nextID  int
	version uint64
}

func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[int]chan Snapshot),
	}
}

// Subscribe registers a snapshot channel. The returned cancel func
// unregisters it and closes the channel.
func (r *Registry) Subscribe() (<-chan Snapshot, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	ch := make(chan Snapshot, 1)
	r.subs[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber, replacing any
// undelivered previous one
func (r *Registry) Publish(snapshot Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.version++
	snapshot.Version = r.version

	for _, ch := range r.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (r *Registry) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
