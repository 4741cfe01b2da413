// Package identity assigns stable structural identity paths to
// positions in a view tree. An identity survives re-construction of the
// view value occupying that position, which is what lets state handles
// persist across frames (see the state package).
package identity

import "strings"

// segmentKind distinguishes the three ways a path segment can be formed.
type segmentKind int

const (
	kindChild segmentKind = iota
	kindBody
	kindBranch
)

type segment struct {
	kind  segmentKind
	tag   string
	index int
}

// ID is an ordered path of segments. IDs are value-equal and hashable
// (comparable), so they can be used directly as map keys.
type ID struct {
	path string // pre-joined, comparable representation
}

// Root creates the initial path for a root view of the given type tag.
func Root(typeTag string) ID {
	return ID{path: encode(segment{kind: kindChild, tag: typeTag, index: -1})}
}

// Child appends a child segment: a position at `index` within a
// container, tagged with the child's type.
func Child(parent ID, typeTag string, index int) ID {
	return ID{path: parent.path + sep + encode(segment{kind: kindChild, tag: typeTag, index: index})}
}

// Body appends a composite-body segment: descent into a view's `body`,
// which has no sibling index.
func Body(parent ID, typeTag string) ID {
	return ID{path: parent.path + sep + encode(segment{kind: kindBody, tag: typeTag})}
}

// Branch appends a branch segment labelled by a conditional arm
// (conventionally "true"/"false", or a named case).
func Branch(parent ID, label string) ID {
	return ID{path: parent.path + sep + encode(segment{kind: kindBranch, tag: label})}
}

// IsPrefixOf reports whether id is a strict prefix of other's path —
// i.e. other is id or a descendant of id, and the two are not equal.
func (id ID) IsPrefixOf(other ID) bool {
	if id.path == other.path {
		return false
	}
	return strings.HasPrefix(other.path, id.path+sep)
}

// String returns a debug representation of the path.
func (id ID) String() string { return id.path }

const sep = "/"

func encode(s segment) string {
	var kindChar byte
	switch s.kind {
	case kindChild:
		kindChar = 'c'
	case kindBody:
		kindChar = 'b'
	case kindBranch:
		kindChar = 'r'
	}
	if s.kind == kindChild && s.index >= 0 {
		return string(kindChar) + ":" + s.tag + "#" + itoa(s.index)
	}
	return string(kindChar) + ":" + s.tag
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
