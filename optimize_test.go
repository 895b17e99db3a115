package json0diff

import (
	"encoding/json"
	"testing"
)

func mustOps(t *testing.T, s string) Operations {
	t.Helper()
	var ops Operations
	if err := json.Unmarshal([]byte(s), &ops); err != nil {
		t.Fatalf("unmarshal ops %s: %v", s, err)
	}
	return ops
}

func TestOptimize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "insert then delete of the same value",
			in:   `[{"p":[0],"li":"x"},{"p":[1],"ld":"x"}]`,
			want: `[]`,
		},
		{
			name: "null counts as a value",
			in:   `[{"p":["a",0],"li":null},{"p":["a",1],"ld":null}]`,
			want: `[]`,
		},
		{
			name: "replace pair keeps the remaining halves",
			in:   `[{"p":[0],"ld":"a","li":1},{"p":[1],"ld":1,"li":"b"}]`,
			want: `[{"p":[0],"ld":"a"},{"p":[1],"li":"b"}]`,
		},
		{
			name: "values differ",
			in:   `[{"p":[0],"li":"x"},{"p":[1],"ld":"y"}]`,
			want: `[{"p":[0],"li":"x"},{"p":[1],"ld":"y"}]`,
		},
		{
			name: "indexes not successive",
			in:   `[{"p":[0],"li":"x"},{"p":[2],"ld":"x"}]`,
			want: `[{"p":[0],"li":"x"},{"p":[2],"ld":"x"}]`,
		},
		{
			name: "delete before insert",
			in:   `[{"p":[0],"ld":"x"},{"p":[1],"li":"x"}]`,
			want: `[{"p":[0],"ld":"x"},{"p":[1],"li":"x"}]`,
		},
		{
			name: "different parents",
			in:   `[{"p":[0,0],"li":"x"},{"p":[1,1],"ld":"x"}]`,
			want: `[{"p":[0,0],"li":"x"},{"p":[1,1],"ld":"x"}]`,
		},
		{
			name: "object keys never merge",
			in:   `[{"p":["a"],"oi":"x"},{"p":["b"],"od":"x"}]`,
			want: `[{"p":["a"],"oi":"x"},{"p":["b"],"od":"x"}]`,
		},
		{
			name: "other operations pass through",
			in:   `[{"p":["n"],"na":2},{"p":["s"],"t":"text0","o":[]}]`,
			want: `[{"p":["n"],"na":2},{"p":["s"],"t":"text0","o":[]}]`,
		},
		{
			name: "merged operation continues the scan",
			in:   `[{"p":[0],"li":"x"},{"p":[1],"ld":"x","li":"y"},{"p":[2],"ld":"y"}]`,
			want: `[]`,
		},
		{
			name: "single pass does not rescan new neighbours",
			in:   `[{"p":[0],"li":"x"},{"p":[1],"li":"q"},{"p":[2],"ld":"q"},{"p":[1],"ld":"x"}]`,
			want: `[{"p":[0],"li":"x"},{"p":[1],"ld":"x"}]`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := opsJSON(t, Optimize(mustOps(t, c.in)))
			if got != c.want {
				t.Fatalf("Optimize(%s)\ngot  %s\nwant %s", c.in, got, c.want)
			}
		})
	}
}

func TestOptimize_DoesNotModifyInput(t *testing.T) {
	ops := mustOps(t, `[{"p":[0],"li":"x"},{"p":[1],"ld":"x"}]`)
	before := opsJSON(t, ops)

	if out := Optimize(ops); len(out) != 0 {
		t.Fatalf("expected empty result, got %s", opsJSON(t, out))
	}
	if after := opsJSON(t, ops); after != before {
		t.Fatalf("Optimize modified its input\nbefore %s\nafter  %s", before, after)
	}
}
