// Package json0diff computes json0 operational-transform operations that turn
// one JSON document into another.
//
// The returned operations are valid when applied in order to the input
// document: list indexes already account for earlier deletions at the same
// array, strings are edited with text0 character operations, and numbers
// change through numeric add operations.
package json0diff

import (
	"fmt"
	"sort"
)

// Diff returns the optimized operation list that transforms input into
// output. Both arguments are normalized with ValueOf and are never modified.
func Diff(input, output any, opts ...Option) (Operations, error) {
	in, out, err := valuePair(input, output, opts)
	if err != nil {
		return nil, err
	}
	return DiffValues(in, out), nil
}

// RawDiff is Diff without the Optimize pass.
func RawDiff(input, output any, opts ...Option) (Operations, error) {
	in, out, err := valuePair(input, output, opts)
	if err != nil {
		return nil, err
	}
	return diffValues(in, out, Path{}), nil
}

// DiffValues is Diff over already normalized values.
func DiffValues(input, output Value) Operations {
	return Optimize(diffValues(input, output, Path{}))
}

func valuePair(input, output any, opts []Option) (Value, Value, error) {
	in, err := ValueOf(input, opts...)
	if err != nil {
		return Value{}, Value{}, fmt.Errorf("input: %w", err)
	}
	out, err := ValueOf(output, opts...)
	if err != nil {
		return Value{}, Value{}, fmt.Errorf("output: %w", err)
	}
	return in, out, nil
}

// diffValues compares in and out at path. The first matching rule wins:
// equal values, removal, addition, numeric delta, text edit, scalar
// replacement, array recursion and finally object recursion.
func diffValues(in, out Value, path Path) Operations {
	if in.Equal(out) {
		return nil
	}
	if out.IsAbsent() {
		return Operations{deleteOp(path, in)}
	}
	if in.IsAbsent() {
		return Operations{insertOp(path, out)}
	}
	if delta, ok := numericDelta(in, out); ok {
		return Operations{{P: path, NA: Number(delta)}}
	}
	if in.Kind() == KindString && out.Kind() == KindString {
		return Operations{{P: path, T: TextSubtype, O: textEdits(in.Text(), out.Text())}}
	}
	if in.isScalarKind() || out.isScalarKind() || in.Kind() != out.Kind() {
		return Operations{replaceOp(path, in, out)}
	}
	if out.Kind() == KindArray {
		return diffArrays(in, out, path)
	}
	return diffObjects(in, out, path)
}

// numericDelta returns out-in when replaying it reproduces out exactly.
func numericDelta(in, out Value) (float64, bool) {
	if !in.isFiniteNum() || !out.isFiniteNum() {
		return 0, false
	}
	delta := out.Float() - in.Float()
	if in.Float()+delta != out.Float() {
		return 0, false
	}
	return delta, true
}

func diffArrays(in, out Value, path Path) Operations {
	var (
		ops    Operations
		offset int
	)
	for i, n := 0, max(in.Len(), out.Len()); i < n; i++ {
		child := diffValues(in.Index(i), out.Index(i), path.Append(Index(i+offset)))
		for _, op := range child {
			// A removed element shifts every later sibling left by one.
			if op.IsPureListDelete() && op.P.Parent().Equal(path) {
				offset--
			}
		}
		ops = append(ops, child...)
	}
	return ops
}

func diffObjects(in, out Value, path Path) Operations {
	var ops Operations
	for _, key := range unionKeys(in, out) {
		ops = append(ops, diffValues(in.Field(key), out.Field(key), path.Append(Key(key)))...)
	}
	return ops
}

func unionKeys(a, b Value) []string {
	keys := a.Keys()
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	for _, k := range b.Keys() {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func deleteOp(path Path, v Value) Operation {
	if path.inObject() {
		return Operation{P: path, OD: v}
	}
	return Operation{P: path, LD: v}
}

func insertOp(path Path, v Value) Operation {
	if path.inObject() {
		return Operation{P: path, OI: v}
	}
	return Operation{P: path, LI: v}
}

func replaceOp(path Path, in, out Value) Operation {
	if path.inObject() {
		return Operation{P: path, OD: in, OI: out}
	}
	return Operation{P: path, LD: in, LI: out}
}
