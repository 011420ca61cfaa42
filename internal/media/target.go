package media

import "sync"

// playerTarget remembers which player answered most recently, so
// transport controls go where the user is looking. The poll goroutine
// writes it while command handlers read it from the UI thread, so access
// is lock-guarded.
type playerTarget struct {
	mu   sync.Mutex
	name string
}

func (t *playerTarget) Get() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *playerTarget) Set(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}
