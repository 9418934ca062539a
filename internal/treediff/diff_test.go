package treediff

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) Node {
	t.Helper()
	n, err := Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func opStrings(p Patch) []string {
	out := make([]string, len(p))
	for i, op := range p {
		out[i] = op.String()
	}
	return out
}

func TestDiffScalarField(t *testing.T) {
	type counter struct {
		Count int `json:"count"`
	}
	old, err := FromValue(counter{Count: 0})
	require.NoError(t, err)
	next, err := FromValue(counter{Count: 5})
	require.NoError(t, err)

	p := Diff(old, next)
	require.Len(t, p, 1)
	assert.Equal(t, Modified, p[0].Kind)
	assert.Equal(t, "count", p[0].Path.String())
	assert.Equal(t, "0", p[0].Old.String())
	assert.Equal(t, "5", p[0].New.String())
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	doc := `{"a":1,"b":[1,2,{"c":null}],"d":{"e":"x"}}`
	p := Diff(mustParse(t, doc), mustParse(t, doc))
	assert.True(t, p.Empty())
}

func TestDiffOrdering(t *testing.T) {
	old := mustParse(t, `{"a":1,"gone":true,"b":{"x":1,"y":2},"c":3}`)
	next := mustParse(t, `{"a":2,"b":{"y":3,"z":4},"c":3,"d":5}`)

	assert.Equal(t, []string{
		"Modified(a, 1, 2)",
		"Modified(b.y, 2, 3)",
		"Added(b.z, 4)",
		"Removed(b.x)",
		"Added(d, 5)",
		"Removed(gone)",
	}, opStrings(Diff(old, next)))
}

func TestDiffArrays(t *testing.T) {
	tests := []struct {
		name string
		old  string
		next string
		want []string
	}{
		{
			name: "append",
			old:  `[1,2]`,
			next: `[1,2,3,4]`,
			want: []string{"Added([2], 3)", "Added([3], 4)"},
		},
		{
			name: "truncate removes from the end first",
			old:  `[1,2,3,4]`,
			next: `[1,2]`,
			want: []string{"Removed([3])", "Removed([2])"},
		},
		{
			name: "reorder is positional",
			old:  `["a","b"]`,
			next: `["b","a"]`,
			want: []string{`Modified([0], "a", "b")`, `Modified([1], "b", "a")`},
		},
		{
			name: "nested element",
			old:  `{"tabs":[{"title":"x"},{"title":"y"}]}`,
			next: `{"tabs":[{"title":"x"},{"title":"z"}]}`,
			want: []string{`Modified(tabs[1].title, "y", "z")`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opStrings(Diff(mustParse(t, tt.old), mustParse(t, tt.next))))
		})
	}
}

func TestDiffShapeChange(t *testing.T) {
	old := mustParse(t, `{"v":{"a":1}}`)
	next := mustParse(t, `{"v":[1]}`)

	p := Diff(old, next)
	require.Len(t, p, 2)
	assert.Equal(t, Removed, p[0].Kind)
	assert.Equal(t, Added, p[1].Kind)
	assert.Equal(t, "v", p[0].Path.String())
	assert.Equal(t, "v", p[1].Path.String())
}

func TestDiffLeafTypeChangeIsModified(t *testing.T) {
	p := Diff(mustParse(t, `{"title":null}`), mustParse(t, `{"title":"Home"}`))
	require.Len(t, p, 1)
	assert.Equal(t, Modified, p[0].Kind)
}

func TestDiffIsRepeatable(t *testing.T) {
	old := mustParse(t, `{"a":[1,{"b":2}],"c":"x"}`)
	next := mustParse(t, `{"a":[1,{"b":3},4],"d":true}`)
	assert.Equal(t, Diff(old, next), Diff(old, next))
}

func TestPatchTouches(t *testing.T) {
	p := Diff(mustParse(t, `{"dark_theme":false,"cursor":"default"}`), mustParse(t, `{"dark_theme":true,"cursor":"default"}`))
	assert.True(t, p.Touches(F("dark_theme")))
	assert.False(t, p.Touches(F("cursor")))

	root := Patch{{Kind: Added, New: ptr(mustParse(t, `{}`))}}
	assert.True(t, root.Touches(F("anything")))
}

func TestApplyRoundTrip(t *testing.T) {
	cases := []struct{ old, next string }{
		{`{}`, `{"a":1}`},
		{`{"a":1}`, `{}`},
		{`[1,2,3]`, `[3]`},
		{`[]`, `[{"x":[1,2]},null]`},
		{`{"a":{"b":[1,{"c":2}]}}`, `{"a":{"b":[{"c":2},1]}}`},
		{`{"a":[1,2]}`, `{"a":"flat"}`},
		{`[{"a":1},[2]]`, `[[2],{"a":1}]`},
		{`"root"`, `{"root":true}`},
	}
	for _, c := range cases {
		t.Run(c.old+"->"+c.next, func(t *testing.T) {
			old, next := mustParse(t, c.old), mustParse(t, c.next)
			got, err := Diff(old, next).Apply(old)
			require.NoError(t, err)
			assert.True(t, got.Equal(next), "got %s want %s", got, next)
			// Apply works on a copy.
			assert.True(t, old.Equal(mustParse(t, c.old)))
		})
	}
}

func TestApplyRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		old := randomNode(rng, 3)
		next := randomNode(rng, 3)
		if rng.Intn(2) == 0 {
			next = mutate(rng, old.Clone(), 3)
		}
		got, err := Diff(old, next).Apply(old)
		require.NoError(t, err, "case %d: %s -> %s", i, old, next)
		require.True(t, got.Equal(next), "case %d: got %s want %s", i, got, next)
	}
}

func TestApplyBadPath(t *testing.T) {
	p := Patch{{Kind: Removed, Path: Path{F("missing")}}}
	_, err := p.Apply(mustParse(t, `{"a":1}`))
	assert.ErrorIs(t, err, ErrBadPath)
}

func TestDecodeKeepsFieldOrder(t *testing.T) {
	type inner struct {
		Z int `json:"z"`
		A int `json:"a"`
	}
	n, err := FromValue(inner{Z: 1, A: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, n.String())

	var back inner
	require.NoError(t, n.Decode(&back))
	assert.Equal(t, inner{Z: 1, A: 2}, back)
}

func randomNode(rng *rand.Rand, depth int) Node {
	kinds := 6
	if depth <= 0 {
		kinds = 4
	}
	switch rng.Intn(kinds) {
	case 0:
		return Node{Kind: Null}
	case 1:
		return Node{Kind: Bool, Bool: rng.Intn(2) == 0}
	case 2:
		return Node{Kind: Number, Number: jsonNumber(rng.Intn(10))}
	case 3:
		return Node{Kind: String, Text: string(rune('a' + rng.Intn(5)))}
	case 4:
		n := Node{Kind: Array, Items: []Node{}}
		for i := rng.Intn(4); i > 0; i-- {
			n.Items = append(n.Items, randomNode(rng, depth-1))
		}
		return n
	default:
		n := Node{Kind: Object, Fields: []Field{}}
		for _, k := range []string{"a", "b", "c", "d"} {
			if rng.Intn(2) == 0 {
				n.Fields = append(n.Fields, Field{Key: k, Value: randomNode(rng, depth-1)})
			}
		}
		return n
	}
}

func mutate(rng *rand.Rand, n Node, depth int) Node {
	switch n.Kind {
	case Array:
		if len(n.Items) > 0 && rng.Intn(3) > 0 {
			i := rng.Intn(len(n.Items))
			n.Items[i] = mutate(rng, n.Items[i], depth-1)
			return n
		}
		n.Items = append(n.Items, randomNode(rng, depth-1))
		return n
	case Object:
		if len(n.Fields) > 0 && rng.Intn(3) > 0 {
			i := rng.Intn(len(n.Fields))
			n.Fields[i].Value = mutate(rng, n.Fields[i].Value, depth-1)
			return n
		}
		return randomNode(rng, depth)
	default:
		return randomNode(rng, depth)
	}
}

func jsonNumber(i int) json.Number {
	return json.Number(fmt.Sprint(i))
}
