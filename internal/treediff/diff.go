// Package treediff computes structural patches between two JSON-shaped trees.
//
// Values are flattened into ordered labeled trees (objects keyed by field
// name, arrays keyed by position, scalars as leaves) and compared node by
// node. The resulting Patch lists Added, Removed and Modified operations in
// pre-order of the new tree; for each sibling group the Removed operations
// for keys only present in the old tree come last. Arrays are compared by
// position, with no attempt to detect moved elements.
//
// Diff never fails. When a node changes shape (an object becoming a string,
// an array becoming an object) it is reported as Removed followed by Added at
// the same path.
package treediff

import (
	"fmt"
	"strconv"
	"strings"
)

// OpKind identifies the kind of a patch operation.
type OpKind int

const (
	Added OpKind = iota
	Removed
	Modified
)

func (k OpKind) String() string {
	switch k {
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	case Modified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// Key is one step of a Path: an object field or an array index.
type Key struct {
	Field   string
	Index   int
	IsIndex bool
}

// F returns a field key.
func F(name string) Key { return Key{Field: name} }

// I returns an index key.
func I(idx int) Key { return Key{Index: idx, IsIndex: true} }

func (k Key) String() string {
	if k.IsIndex {
		return "[" + strconv.Itoa(k.Index) + "]"
	}
	return k.Field
}

// Path addresses a node from the root. The empty path is the root itself.
type Path []Key

func (p Path) String() string {
	var b strings.Builder
	for i, k := range p {
		if !k.IsIndex && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k.String())
	}
	return b.String()
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (p Path) child(k Key) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = k
	return out
}

// Op is a single patch operation. Old is set for Removed and Modified, New
// for Added and Modified.
type Op struct {
	Kind OpKind
	Path Path
	Old  *Node
	New  *Node
}

func (o Op) String() string {
	switch o.Kind {
	case Added:
		return fmt.Sprintf("Added(%s, %s)", o.Path, o.New)
	case Removed:
		return fmt.Sprintf("Removed(%s)", o.Path)
	default:
		return fmt.Sprintf("Modified(%s, %s, %s)", o.Path, o.Old, o.New)
	}
}

// Patch is an ordered list of operations turning one tree into another.
type Patch []Op

// Empty reports whether the patch has no operations.
func (p Patch) Empty() bool { return len(p) == 0 }

// Touches reports whether any operation changes the subtree at prefix. An
// operation on an ancestor of prefix (a whole-object replacement) counts.
func (p Patch) Touches(prefix ...Key) bool {
	want := Path(prefix)
	for _, op := range p {
		if op.Path.HasPrefix(want) || want.HasPrefix(op.Path) {
			return true
		}
	}
	return false
}

func (p Patch) String() string {
	parts := make([]string, len(p))
	for i, op := range p {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Diff returns the operations that transform old into new.
func Diff(old, next Node) Patch {
	var p Patch
	diffNode(nil, old, next, &p)
	return p
}

func diffNode(path Path, old, next Node, p *Patch) {
	if old.Kind.IsLeaf() && next.Kind.IsLeaf() {
		if !old.Equal(next) {
			*p = append(*p, Op{Kind: Modified, Path: path, Old: ptr(old), New: ptr(next)})
		}
		return
	}
	if old.Kind != next.Kind {
		*p = append(*p,
			Op{Kind: Removed, Path: path, Old: ptr(old)},
			Op{Kind: Added, Path: path, New: ptr(next)},
		)
		return
	}

	switch next.Kind {
	case Object:
		for _, f := range next.Fields {
			childPath := path.child(F(f.Key))
			prev, ok := old.Lookup(f.Key)
			if !ok {
				*p = append(*p, Op{Kind: Added, Path: childPath, New: ptr(f.Value)})
				continue
			}
			diffNode(childPath, prev, f.Value, p)
		}
		for _, f := range old.Fields {
			if _, ok := next.Lookup(f.Key); !ok {
				*p = append(*p, Op{Kind: Removed, Path: path.child(F(f.Key)), Old: ptr(f.Value)})
			}
		}
	case Array:
		common := min(len(old.Items), len(next.Items))
		for i := 0; i < common; i++ {
			diffNode(path.child(I(i)), old.Items[i], next.Items[i], p)
		}
		for i := common; i < len(next.Items); i++ {
			*p = append(*p, Op{Kind: Added, Path: path.child(I(i)), New: ptr(next.Items[i])})
		}
		// Highest index first so the ops can be applied in order.
		for i := len(old.Items) - 1; i >= common; i-- {
			*p = append(*p, Op{Kind: Removed, Path: path.child(I(i)), Old: ptr(old.Items[i])})
		}
	}
}

func ptr(n Node) *Node {
	c := n.Clone()
	return &c
}
