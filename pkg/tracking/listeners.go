package tracking

import "sync"

// listeners is an ordered set of callbacks addressed by subscription id.
// Removing an id twice is a no-op.
type listeners[F any] struct {
	mu     sync.Mutex
	nextID uint64
	ids    []uint64
	fns    map[uint64]F
}

func (l *listeners[F]) add(fn F) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[uint64]F)
	}
	id := l.nextID
	l.nextID++
	l.ids = append(l.ids, id)
	l.fns[id] = fn

	return func() { l.remove(id) }
}

func (l *listeners[F]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, existing := range l.ids {
		if existing == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

// snapshot copies the callbacks so they can run without holding the lock
func (l *listeners[F]) snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]F, 0, len(l.ids))
	for _, id := range l.ids {
		out = append(out, l.fns[id])
	}
	return out
}

func (l *listeners[F]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}
