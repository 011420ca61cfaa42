package media

import (
	"fmt"
	"sync"
	"testing"
)

func TestPlayerTarget_SetGet(t *testing.T) {
	var target playerTarget
	if got := target.Get(); got != "" {
		t.Fatalf("expected empty target, got %q", got)
	}

	target.Set("Spotify")
	if got := target.Get(); got != "Spotify" {
		t.Fatalf("expected Spotify, got %q", got)
	}
}

// The poll goroutine updates the target while command handlers read it,
// so concurrent access has to be safe under the race detector.
func TestPlayerTarget_ConcurrentAccess(t *testing.T) {
	var target playerTarget
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(2)
		name := fmt.Sprintf("player-%d", i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				target.Set(name)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = target.Get()
			}
		}()
	}
	wg.Wait()

	if got := target.Get(); got == "" {
		t.Fatal("expected a winner after concurrent writes")
	}
}
