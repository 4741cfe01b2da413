package layout

import "testing"

func TestSingleFlexChildNoFixedGetsEntireAxis(t *testing.T) {
	out := DistributeMain([]FlexChild{{Weight: 1}}, 40, 0)
	if len(out) != 1 || out[0] != 40 {
		t.Errorf("DistributeMain = %v, want [40]", out)
	}
}

func TestFixedChildrenConsumeSpaceBeforeFlex(t *testing.T) {
	out := DistributeMain([]FlexChild{{Min: 10}, {Weight: 1}}, 40, 0)
	if out[0] != 10 {
		t.Fatalf("fixed child = %d, want 10", out[0])
	}
	if out[1] != 30 {
		t.Fatalf("flex child = %d, want 30", out[1])
	}
}

func TestLastFlexChildAbsorbsRoundingRemainder(t *testing.T) {
	out := DistributeMain([]FlexChild{{Weight: 1}, {Weight: 1}, {Weight: 1}}, 10, 0)
	sum := out[0] + out[1] + out[2]
	if sum != 10 {
		t.Errorf("sum = %d, want 10", sum)
	}
}

func TestSpacingReducesAvailableSpace(t *testing.T) {
	out := DistributeMain([]FlexChild{{Weight: 1}, {Weight: 1}}, 20, 2)
	if out[0]+out[1] != 18 {
		t.Errorf("sum = %d, want 18", out[0]+out[1])
	}
}

func TestNoFlexChildrenLeavesAllFixed(t *testing.T) {
	out := DistributeMain([]FlexChild{{Min: 5}, {Min: 7}}, 100, 0)
	if out[0] != 5 || out[1] != 7 {
		t.Errorf("out = %v, want [5 7]", out)
	}
}

func TestInnerAreaShrinksByBorders(t *testing.T) {
	w, h := InnerArea(10, 5)
	if w != 8 || h != 3 {
		t.Errorf("InnerArea(10,5) = (%d,%d), want (8,3)", w, h)
	}
}

func TestInnerAreaClampsNonNegative(t *testing.T) {
	w, h := InnerArea(1, 1)
	if w != 0 || h != 0 {
		t.Errorf("InnerArea(1,1) = (%d,%d), want (0,0)", w, h)
	}
}

func TestCacheReturnsSameResultForSameInputs(t *testing.T) {
	c := NewCache()
	children := []FlexChild{{Weight: 1}, {Min: 3}}
	a := c.DistributeMainCached(children, 30, 1)
	b := c.DistributeMainCached(children, 30, 1)
	if len(a) != len(b) || a[0] != b[0] || a[1] != b[1] {
		t.Errorf("cached results differ: %v vs %v", a, b)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheInvalidateClears(t *testing.T) {
	c := NewCache()
	c.DistributeMainCached([]FlexChild{{Weight: 1}}, 10, 0)
	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("Len() after Invalidate = %d, want 0", c.Len())
	}
}
