package state

import (
	"testing"

	"github.com/tuikit-go/tuikit/identity"
)

func TestReadAfterWriteWithoutInterveningInvalidation(t *testing.T) {
	s := New()
	id := identity.Root("Counter")
	s.BeginRenderPass()
	cell := s.Hydrate(id, 0, func() any { return 0 })
	s.MarkActive(id)
	s.EndRenderPass()

	s.Set(cell, 42)
	if got := cell.Get(); got != 42 {
		t.Fatalf("Get() = %v, want 42", got)
	}

	// Next pass, same identity/ordinal: must observe the same cell and value.
	s.BeginRenderPass()
	cell2 := s.Hydrate(id, 0, func() any { return 0 })
	s.MarkActive(id)
	s.EndRenderPass()
	if got := cell2.Get(); got != 42 {
		t.Fatalf("Get() after reconstruction = %v, want 42", got)
	}
}

func TestGCDropsInactiveIdentity(t *testing.T) {
	s := New()
	id := identity.Root("A")
	s.BeginRenderPass()
	s.Hydrate(id, 0, func() any { return "x" })
	s.MarkActive(id)
	s.EndRenderPass()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	// Next pass never marks id active.
	s.BeginRenderPass()
	s.EndRenderPass()
	if s.Len() != 0 {
		t.Fatalf("Len() after GC = %d, want 0", s.Len())
	}
}

func TestInvalidateDescendantsDropsStrictDescendants(t *testing.T) {
	s := New()
	parent := identity.Root("If")
	trueArm := identity.Branch(parent, "true")
	child := identity.Body(trueArm, "A")

	s.BeginRenderPass()
	s.Hydrate(trueArm, 0, func() any { return 1 })
	s.Hydrate(child, 0, func() any { return 2 })
	s.MarkActive(trueArm)
	s.MarkActive(child)
	s.EndRenderPass()

	s.InvalidateDescendants(trueArm)
	// trueArm is not a strict descendant of itself: only child's cell goes.
	if s.Len() != 1 {
		t.Fatalf("Len() after invalidation = %d, want 1", s.Len())
	}
}

func TestInvalidateDescendantsDefaultsReinitialize(t *testing.T) {
	s := New()
	parent := identity.Root("If")
	trueArm := identity.Branch(parent, "true")

	s.BeginRenderPass()
	cell := s.Hydrate(trueArm, 0, func() any { return 0 })
	s.MarkActive(trueArm)
	s.EndRenderPass()
	s.Set(cell, 42)

	s.InvalidateDescendants(parent)

	s.BeginRenderPass()
	fresh := s.Hydrate(trueArm, 0, func() any { return 0 })
	s.MarkActive(trueArm)
	s.EndRenderPass()

	if got := fresh.Get(); got != 0 {
		t.Fatalf("Get() after reinit = %v, want fresh default 0", got)
	}
}

func TestSetFiresOnWrite(t *testing.T) {
	s := New()
	fired := false
	s.OnWrite = func() { fired = true }

	id := identity.Root("A")
	s.BeginRenderPass()
	cell := s.Hydrate(id, 0, func() any { return 0 })
	s.MarkActive(id)
	s.EndRenderPass()

	s.Set(cell, 1)
	if !fired {
		t.Error("expected OnWrite to fire on Set")
	}
}

func TestContextAssignsSequentialOrdinals(t *testing.T) {
	s := New()
	id := identity.Root("Counter")
	ctx := NewContext(id, s)

	c0 := ctx.Next(func() any { return "a" })
	c1 := ctx.Next(func() any { return "b" })
	if c0 == c1 {
		t.Error("distinct Next() calls must yield distinct cells")
	}
	if c0.Get() != "a" || c1.Get() != "b" {
		t.Errorf("c0=%v c1=%v", c0.Get(), c1.Get())
	}
}
