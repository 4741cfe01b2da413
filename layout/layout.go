// Package layout implements the two-phase measure/render protocol and
// the flex distribution algorithm used by vertical/horizontal stacks.
package layout

// Unspecified marks a proposal dimension as unconstrained.
const Unspecified = -1

// Proposal is the pair of width/height hints passed into Measure.
// Either field may be Unspecified.
type Proposal struct {
	Width  int
	Height int
}

// Size is the result of a Measure call: the node's natural size plus
// optional flex weights on each axis (nil means "not flexible on this
// axis").
type Size struct {
	Width      int
	Height     int
	WidthFlex  *int
	HeightFlex *int
}

// Axis selects the main axis of a stack.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

// Alignment controls cross-axis placement of stack children.
type Alignment int

const (
	// AlignCenter is the default for stacks.
	AlignCenter Alignment = iota
	AlignStart
	AlignEnd
)

// Measurable is implemented by layout-aware views. Views that do
// not implement it are sized from a rendered buffer instead.
type Measurable interface {
	Measure(p Proposal) Size
}

// DefaultMeasure gives non-layout-aware views a fixed size: it calls
// render once with a 0×0 area and reports the returned printable width
// and line count. It takes no proposal, so the size does not depend on
// one.
func DefaultMeasure(render func(w, h int) (printableWidth, lineCount int)) Size {
	w, h := render(0, 0)
	return Size{Width: w, Height: h}
}

// FlexChild pairs a child's min size with its flex weight (0 = not
// flexible).
type FlexChild struct {
	Min    int
	Weight int // 0 = fixed; positive = flex weight
}

// DistributeMain distributes a stack's main axis:
//  1. children are already measured against the cross-axis proposal
//     with an unspecified main axis (that happens in Measure calls
//     made by the caller before invoking this function);
//  2. R = max(0, available - sum(fixed sizes) - total spacing);
//  3. each flex child gets max(min, R*weight/totalWeight), which is
//     R/|F| when all weights are equal, the last flex child absorbing
//     the rounding remainder;
//  4. a Spacer is simply a FlexChild{Min: 0, Weight: >=1}.
func DistributeMain(children []FlexChild, available, spacingTotal int) []int {
	n := len(children)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	fixedSum := 0
	flexIdx := make([]int, 0, n)
	for i, c := range children {
		if c.Weight <= 0 {
			out[i] = c.Min
			fixedSum += c.Min
		} else {
			flexIdx = append(flexIdx, i)
		}
	}

	remaining := available - fixedSum - spacingTotal
	if remaining < 0 {
		remaining = 0
	}
	if len(flexIdx) == 0 {
		return out
	}

	totalWeight := 0
	for _, i := range flexIdx {
		totalWeight += children[i].Weight
	}

	distributed := 0
	last := flexIdx[len(flexIdx)-1]
	for _, i := range flexIdx {
		if i == last {
			continue
		}
		share := remaining * children[i].Weight / totalWeight
		if share < children[i].Min {
			share = children[i].Min
		}
		out[i] = share
		distributed += share
	}
	lastShare := remaining - distributed
	if lastShare < children[last].Min {
		lastShare = children[last].Min
	}
	out[last] = lastShare
	return out
}

// InnerArea reduces a bordered container's available area by one cell
// on each side per axis (2 total per axis) before propagation to its
// child.
func InnerArea(width, height int) (int, int) {
	w := width - 2
	h := height - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
