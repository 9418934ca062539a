package treediff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind is the shape of a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether nodes of this kind have no children.
func (k Kind) IsLeaf() bool {
	return k != Array && k != Object
}

// Field is one keyed child of an object node.
type Field struct {
	Key   string
	Value Node
}

// Node is an ordered labeled tree holding the serialized field structure of
// a value. Object fields keep the order the encoder produced them in.
type Node struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	Text   string
	Items  []Node
	Fields []Field
}

// FromValue encodes v with encoding/json and parses the result into a tree.
func FromValue(v any) (Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Node{}, fmt.Errorf("encoding value: %w", err)
	}
	return Parse(data)
}

// Parse builds a tree from a single JSON document.
func Parse(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Node{}, errors.New("trailing data after document")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, fmt.Errorf("reading token: %w", err)
	}
	switch t := tok.(type) {
	case nil:
		return Node{Kind: Null}, nil
	case bool:
		return Node{Kind: Bool, Bool: t}, nil
	case json.Number:
		return Node{Kind: Number, Number: t}, nil
	case string:
		return Node{Kind: String, Text: t}, nil
	case json.Delim:
		switch t {
		case '[':
			n := Node{Kind: Array, Items: []Node{}}
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return Node{}, err
				}
				n.Items = append(n.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, fmt.Errorf("closing array: %w", err)
			}
			return n, nil
		case '{':
			n := Node{Kind: Object, Fields: []Field{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Node{}, fmt.Errorf("reading key: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Node{}, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return Node{}, err
				}
				n.Fields = append(n.Fields, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, fmt.Errorf("closing object: %w", err)
			}
			return n, nil
		}
	}
	return Node{}, fmt.Errorf("unexpected token %v", tok)
}

// Lookup returns the child stored under key.
func (n Node) Lookup(key string) (Node, bool) {
	if i := n.fieldIndex(key); i >= 0 {
		return n.Fields[i].Value, true
	}
	return Node{}, false
}

func (n Node) fieldIndex(key string) int {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			return i
		}
	}
	return -1
}

// Equal reports structural equality. Object fields are compared by key,
// regardless of order.
func (n Node) Equal(o Node) bool {
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case Null:
		return true
	case Bool:
		return n.Bool == o.Bool
	case Number:
		return numbersEqual(n.Number, o.Number)
	case String:
		return n.Text == o.Text
	case Array:
		if len(n.Items) != len(o.Items) {
			return false
		}
		for i := range n.Items {
			if !n.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(n.Fields) != len(o.Fields) {
			return false
		}
		for _, f := range n.Fields {
			other, ok := o.Lookup(f.Key)
			if !ok || !f.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(string(a), 64)
	fb, errB := strconv.ParseFloat(string(b), 64)
	return errA == nil && errB == nil && fa == fb
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	c := n
	if n.Items != nil {
		c.Items = make([]Node, len(n.Items))
		for i := range n.Items {
			c.Items[i] = n.Items[i].Clone()
		}
	}
	if n.Fields != nil {
		c.Fields = make([]Field, len(n.Fields))
		for i := range n.Fields {
			c.Fields[i] = Field{Key: n.Fields[i].Key, Value: n.Fields[i].Value.Clone()}
		}
	}
	return c
}

// MarshalJSON writes the tree back out, keeping object field order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) encode(buf *bytes.Buffer) error {
	switch n.Kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case Number:
		if n.Number == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(string(n.Number))
		}
	case String:
		b, err := json.Marshal(n.Text)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node of kind %d", n.Kind)
	}
	return nil
}

// Decode unmarshals the tree into v.
func (n Node) Decode(v any) error {
	data, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (n Node) String() string {
	data, err := n.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(data)
}
