package treediff

import (
	"errors"
	"fmt"
)

// ErrBadPath is returned by Apply when an operation addresses a node that
// does not exist or has the wrong shape.
var ErrBadPath = errors.New("path does not resolve")

// Apply returns a copy of root with every operation in p applied in order.
// root itself is not modified.
func (p Patch) Apply(root Node) (Node, error) {
	doc := &document{root: root.Clone(), present: true}
	for i, op := range p {
		if err := doc.apply(op); err != nil {
			return Node{}, fmt.Errorf("op %d %s: %w", i, op, err)
		}
	}
	if !doc.present {
		return Node{}, fmt.Errorf("patch removed the root: %w", ErrBadPath)
	}
	return doc.root, nil
}

type document struct {
	root    Node
	present bool
}

func (d *document) apply(op Op) error {
	if len(op.Path) == 0 {
		switch op.Kind {
		case Removed:
			d.present = false
			d.root = Node{}
		case Added, Modified:
			if op.New == nil {
				return errors.New("missing new value")
			}
			d.root = op.New.Clone()
			d.present = true
		}
		return nil
	}

	parent, err := resolve(&d.root, op.Path[:len(op.Path)-1])
	if err != nil {
		return err
	}
	last := op.Path[len(op.Path)-1]

	switch op.Kind {
	case Added:
		if op.New == nil {
			return errors.New("missing new value")
		}
		return insert(parent, last, op.New.Clone())
	case Removed:
		return remove(parent, last)
	case Modified:
		if op.New == nil {
			return errors.New("missing new value")
		}
		target, err := resolve(parent, Path{last})
		if err != nil {
			return err
		}
		*target = op.New.Clone()
		return nil
	}
	return fmt.Errorf("unknown op kind %d", op.Kind)
}

func resolve(n *Node, path Path) (*Node, error) {
	cur := n
	for _, k := range path {
		switch {
		case k.IsIndex && cur.Kind == Array:
			if k.Index < 0 || k.Index >= len(cur.Items) {
				return nil, fmt.Errorf("index %d out of range: %w", k.Index, ErrBadPath)
			}
			cur = &cur.Items[k.Index]
		case !k.IsIndex && cur.Kind == Object:
			i := cur.fieldIndex(k.Field)
			if i < 0 {
				return nil, fmt.Errorf("no field %q: %w", k.Field, ErrBadPath)
			}
			cur = &cur.Fields[i].Value
		default:
			return nil, fmt.Errorf("key %s on %s node: %w", k, cur.Kind, ErrBadPath)
		}
	}
	return cur, nil
}

func insert(parent *Node, k Key, v Node) error {
	switch {
	case k.IsIndex && parent.Kind == Array:
		if k.Index < 0 || k.Index > len(parent.Items) {
			return fmt.Errorf("insert index %d out of range: %w", k.Index, ErrBadPath)
		}
		parent.Items = append(parent.Items, Node{})
		copy(parent.Items[k.Index+1:], parent.Items[k.Index:])
		parent.Items[k.Index] = v
		return nil
	case !k.IsIndex && parent.Kind == Object:
		if i := parent.fieldIndex(k.Field); i >= 0 {
			parent.Fields[i].Value = v
			return nil
		}
		parent.Fields = append(parent.Fields, Field{Key: k.Field, Value: v})
		return nil
	}
	return fmt.Errorf("cannot add %s to %s node: %w", k, parent.Kind, ErrBadPath)
}

func remove(parent *Node, k Key) error {
	switch {
	case k.IsIndex && parent.Kind == Array:
		if k.Index < 0 || k.Index >= len(parent.Items) {
			return fmt.Errorf("remove index %d out of range: %w", k.Index, ErrBadPath)
		}
		parent.Items = append(parent.Items[:k.Index], parent.Items[k.Index+1:]...)
		return nil
	case !k.IsIndex && parent.Kind == Object:
		i := parent.fieldIndex(k.Field)
		if i < 0 {
			return fmt.Errorf("no field %q: %w", k.Field, ErrBadPath)
		}
		parent.Fields = append(parent.Fields[:i], parent.Fields[i+1:]...)
		return nil
	}
	return fmt.Errorf("cannot remove %s from %s node: %w", k, parent.Kind, ErrBadPath)
}
