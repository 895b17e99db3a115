package json0diff_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-json0diff"
)

var (
	fuzzKeys  = []string{"a", "b", "c", "d/e", "~f"}
	fuzzWords = []string{"", "foo", "bar", "quux", "😀", "a😇b", "\n"}
)

// docBuilder turns fuzz input into a generic encoding/json document. Running
// out of input yields null, so every byte string builds a finite document.
type docBuilder struct {
	data []byte
}

func buildDoc(data []byte) any {
	b := &docBuilder{data: data}
	return b.value(0)
}

func (b *docBuilder) next() byte {
	if len(b.data) == 0 {
		return 0
	}
	c := b.data[0]
	b.data = b.data[1:]
	return c
}

func (b *docBuilder) value(depth int) any {
	c := b.next()
	if depth >= 4 {
		c %= 4
	}
	switch c % 6 {
	case 0:
		return nil
	case 1:
		return c&0x40 != 0
	case 2:
		// Quarter steps keep every numeric delta exact.
		return float64(int8(b.next())) / 4
	case 3:
		return fuzzWords[int(b.next())%len(fuzzWords)]
	case 4:
		arr := make([]any, int(b.next()%5))
		for i := range arr {
			arr[i] = b.value(depth + 1)
		}
		return arr
	default:
		n := int(b.next() % 5)
		obj := make(map[string]any, n)
		for i := 0; i < n; i++ {
			obj[fuzzKeys[int(b.next())%len(fuzzKeys)]] = b.value(depth + 1)
		}
		return obj
	}
}

func FuzzDiff(f *testing.F) {
	f.Add([]byte{4, 3, 3, 1, 3, 2}, []byte{4, 2, 3, 2, 3, 1})
	f.Add([]byte{4, 4, 3, 1, 3, 2, 3, 3, 2, 8}, []byte{4, 2, 3, 2, 3, 3})
	f.Add([]byte{5, 2, 0, 2, 8, 3, 4, 3, 3, 4}, []byte{5, 2, 0, 4, 0, 4, 3, 5})
	f.Add([]byte{3, 5}, []byte{5, 1, 3, 3, 6})
	f.Add([]byte{4, 4, 4, 1, 2, 7, 3, 0, 1}, []byte{})
	f.Add([]byte{2, 200}, []byte{2, 12})

	diffs := []struct {
		name string
		fn   func(any, any, ...json0diff.Option) (json0diff.Operations, error)
	}{
		{"Diff", json0diff.Diff},
		{"RawDiff", json0diff.RawDiff},
	}

	f.Fuzz(func(t *testing.T, a, b []byte) {
		in, out := buildDoc(a), buildDoc(b)

		for _, d := range diffs {
			ops, err := d.fn(in, out)
			require.NoError(t, err)

			got, err := json0diff.Apply(in, ops)
			require.NoError(t, err, "%s ops: %v", d.name, ops)
			require.Equal(t, out, got, "%s ops: %v", d.name, ops)

			wire, err := json.Marshal(ops)
			require.NoError(t, err)
			var decoded json0diff.Operations
			require.NoError(t, json.Unmarshal(wire, &decoded))
			got, err = json0diff.Apply(in, decoded)
			require.NoError(t, err, "%s wire: %s", d.name, wire)
			require.Equal(t, out, got, "%s wire: %s", d.name, wire)
		}

		raw, err := json0diff.RawDiff(in, out)
		require.NoError(t, err)
		got, err := json0diff.Apply(in, json0diff.Optimize(raw))
		require.NoError(t, err)
		assert.Equal(t, out, got)

		same, err := json0diff.Diff(in, in)
		require.NoError(t, err)
		assert.Empty(t, same)

		assert.Equal(t, buildDoc(a), in)
		assert.Equal(t, buildDoc(b), out)
	})
}
