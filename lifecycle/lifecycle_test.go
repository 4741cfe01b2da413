package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tuikit-go/tuikit/identity"
)

func TestOnAppearFiresOnFirstSighting(t *testing.T) {
	tr := NewTracker()
	var appeared []identity.ID
	tr.OnAppear = func(id identity.ID) { appeared = append(appeared, id) }

	id := identity.Root("A")
	tr.BeginFrame()
	tr.MarkSeen(id)
	tr.EndFrame()

	if len(appeared) != 1 || appeared[0] != id {
		t.Errorf("appeared = %v, want [%v]", appeared, id)
	}
}

func TestOnAppearDoesNotRefireOnSubsequentFrames(t *testing.T) {
	tr := NewTracker()
	count := 0
	tr.OnAppear = func(identity.ID) { count++ }

	id := identity.Root("A")
	tr.BeginFrame()
	tr.MarkSeen(id)
	tr.EndFrame()

	tr.BeginFrame()
	tr.MarkSeen(id)
	tr.EndFrame()

	if count != 1 {
		t.Errorf("OnAppear fired %d times, want 1", count)
	}
}

func TestOnDisappearFiresWhenNoLongerSeen(t *testing.T) {
	tr := NewTracker()
	var disappeared []identity.ID
	tr.OnDisappear = func(id identity.ID) { disappeared = append(disappeared, id) }

	id := identity.Root("A")
	tr.BeginFrame()
	tr.MarkSeen(id)
	tr.EndFrame()

	tr.BeginFrame()
	tr.EndFrame()

	if len(disappeared) != 1 || disappeared[0] != id {
		t.Errorf("disappeared = %v, want [%v]", disappeared, id)
	}
}

func TestRunTaskIsCancelledOnDisappear(t *testing.T) {
	tr := NewTracker()
	id := identity.Root("A")

	var mu sync.Mutex
	cancelled := false
	var wg sync.WaitGroup
	wg.Add(1)

	tr.BeginFrame()
	tr.MarkSeen(id)
	tr.EndFrame()

	tr.RunTask(context.Background(), id, func(ctx context.Context) {
		defer wg.Done()
		<-ctx.Done()
		mu.Lock()
		cancelled = true
		mu.Unlock()
	})

	tr.BeginFrame()
	tr.EndFrame() // id not marked seen: disappears, task should be cancelled

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not cancelled in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if !cancelled {
		t.Error("expected task context to be cancelled")
	}
}
