package json0diff_test

import (
	"testing"

	"github.com/agentflare-ai/go-json0diff"
	wi2ljsondiff "github.com/wI2L/jsondiff"
)

func smallObjects() (map[string]any, map[string]any) {
	a := map[string]any{
		"a": 1.0,
		"b": map[string]any{"x": 10.0, "y": 20.0},
		"s": "the quick brown fox",
	}
	c := map[string]any{
		"a": 2.0,
		"b": map[string]any{"x": 10.0, "y": 21.0, "z": 30.0},
		"s": "the quick red fox",
	}
	return a, c
}

func mediumArrays() (map[string]any, map[string]any) {
	var arrA, arrB []any
	for i := 0; i < 200; i++ {
		arrA = append(arrA, i)
	}
	for i := 0; i < 200; i++ {
		arrB = append(arrB, (i+3)%200) // small rotation
	}
	return map[string]any{"arr": arrA}, map[string]any{"arr": arrB}
}

func BenchmarkDiff_ObjectSmall(b *testing.B) {
	a, c := smallObjects()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json0diff.Diff(a, c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDiff_ArrayMedium(b *testing.B) {
	a, c := mediumArrays()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json0diff.Diff(a, c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDiff_LongText(b *testing.B) {
	var a, c []byte
	for i := 0; i < 500; i++ {
		a = append(a, "lorem ipsum "...)
		c = append(c, "lorem ipsam "...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json0diff.Diff(string(a), string(c)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoundTrip_ApplyAfterDiff(b *testing.B) {
	a := map[string]any{"a": 1.0, "arr": []any{1.0, 2.0, 3.0}}
	c := map[string]any{"a": 1.0, "arr": []any{3.0, 2.0, 1.0, 4.0}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ops, err := json0diff.Diff(a, c)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := json0diff.Apply(a, ops); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONDiff_ObjectSmall(b *testing.B) {
	a, c := smallObjects()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wi2ljsondiff.Compare(a, c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONDiff_ArrayMedium(b *testing.B) {
	a, c := mediumArrays()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wi2ljsondiff.Compare(a, c); err != nil {
			b.Fatal(err)
		}
	}
}
