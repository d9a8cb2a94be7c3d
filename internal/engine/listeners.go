package engine

import (
	"sync"

	"snakeegg/internal/domain"
)

// Listeners is an InputSource that fans each press out to every registered
// listener. Frontends embed it and call Press from their key handling. The
// zero value is ready to use.
type Listeners struct {
	mu     sync.Mutex
	fns    map[int]func(domain.Direction)
	nextID int
}

func (l *Listeners) Listen(fn func(domain.Direction)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(domain.Direction))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

// Press delivers dir to the listeners. Unknown directions are dropped.
// Listeners run outside the lock, so they may cancel themselves.
func (l *Listeners) Press(dir domain.Direction) {
	if !dir.Valid() {
		return
	}

	l.mu.Lock()
	fns := make([]func(domain.Direction), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(dir)
	}
}

func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
