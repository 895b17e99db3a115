package json0diff

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentflare-ai/jsonpointer"
)

// Apply replays ops in order against document and returns the result.
// document may be anything ValueOf accepts; it is normalized into a fresh
// tree first, so the caller's value is left alone.
func Apply(document any, ops Operations) (any, error) {
	v, err := ValueOf(document)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return ApplyInPlace(v.Interface(), ops)
}

// ApplyInPlace replays ops against a generic encoding/json tree
// (map[string]any, []any, float64, string, bool, nil). Maps along the edited
// paths are updated in place; use the returned value as the new document.
func ApplyInPlace(document any, ops Operations) (any, error) {
	for i, op := range ops {
		var err error
		switch {
		case op.T != "" || op.O != nil:
			document, err = applyText(document, op)
		case !op.NA.IsAbsent():
			document, err = applyNumberAdd(document, op)
		case op.IsListInsert() || op.IsListDelete():
			document, err = applyList(document, op)
		case !op.OI.IsAbsent() || !op.OD.IsAbsent():
			document, err = applyObject(document, op)
		}
		if err != nil {
			return nil, fmt.Errorf("operation %d at %s failed: %w", i, op.P, err)
		}
	}
	return document, nil
}

// ApplyStream reads one JSON document from r, replays ops against it and
// writes the result to w as a single line.
func ApplyStream(r io.Reader, w io.Writer, ops Operations) error {
	var doc Value
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	result, err := ApplyInPlace(doc.Interface(), ops)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(result)
}

func get(document any, pointer string) (any, error) {
	if pointer == "" {
		return document, nil
	}
	v, err := jsonpointer.Get(document, pointer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPathNotFound, pointer, err)
	}
	return v, nil
}

func set(document any, pointer string, value any) (any, error) {
	if pointer == "" {
		return value, nil
	}
	return jsonpointer.Set(document, pointer, value)
}

func applyList(document any, op Operation) (any, error) {
	last, ok := op.P.Last()
	if !ok {
		return replaceRoot(op.LI), nil
	}
	if last.IsKey() {
		return nil, fmt.Errorf("%w: list operation addresses object key %q", ErrInvalidOperation, last.Key())
	}

	parentPath := op.P.Parent().Pointer()
	parent, err := get(document, parentPath)
	if err != nil {
		return nil, fmt.Errorf("parent path '%s' not found for list operation: %w", parentPath, err)
	}
	arr, ok := parent.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: list operation on %T", ErrTypeMismatch, parent)
	}

	idx := last.Index()
	if op.IsListDelete() {
		if idx >= len(arr) {
			return nil, fmt.Errorf("%w: list index %d is out of bounds for array of length %d", ErrPathNotFound, idx, len(arr))
		}
		if err := checkDeleted(arr[idx], op.LD); err != nil {
			return nil, err
		}
	} else if idx > len(arr) {
		return nil, fmt.Errorf("%w: insert at index %d is out of bounds for array of length %d", ErrPathNotFound, idx, len(arr))
	}

	newArr := make([]any, 0, len(arr)+1)
	newArr = append(newArr, arr[:idx]...)
	if op.IsListInsert() {
		newArr = append(newArr, op.LI.Interface())
	}
	if op.IsListDelete() {
		idx++
	}
	newArr = append(newArr, arr[idx:]...)
	return set(document, parentPath, newArr)
}

func applyObject(document any, op Operation) (any, error) {
	last, ok := op.P.Last()
	if !ok {
		return replaceRoot(op.OI), nil
	}
	if !last.IsKey() {
		return nil, fmt.Errorf("%w: object operation addresses list index %d", ErrInvalidOperation, last.Index())
	}

	parentPath := op.P.Parent().Pointer()
	parent, err := get(document, parentPath)
	if err != nil {
		return nil, fmt.Errorf("parent path '%s' not found for object operation: %w", parentPath, err)
	}
	obj, ok := parent.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: object operation on %T", ErrTypeMismatch, parent)
	}

	path := op.P.Pointer()
	if !op.OD.IsAbsent() {
		cur, exists := obj[last.Key()]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		if err := checkDeleted(cur, op.OD); err != nil {
			return nil, err
		}
		if op.OI.IsAbsent() {
			return jsonpointer.Remove(document, path)
		}
	}
	return jsonpointer.Set(document, path, op.OI.Interface())
}

func applyNumberAdd(document any, op Operation) (any, error) {
	path := op.P.Pointer()
	cur, err := get(document, path)
	if err != nil {
		return nil, err
	}
	n, err := ValueOf(cur)
	if err != nil {
		return nil, err
	}
	if n.Kind() != KindNumber {
		return nil, fmt.Errorf("%w: numeric add on %s", ErrTypeMismatch, n.Kind())
	}
	return set(document, path, n.Float()+op.NA.Float())
}

func applyText(document any, op Operation) (any, error) {
	if op.T != TextSubtype {
		return nil, fmt.Errorf("%w: unsupported subtype %q", ErrInvalidOperation, op.T)
	}
	path := op.P.Pointer()
	cur, err := get(document, path)
	if err != nil {
		return nil, err
	}
	s, ok := cur.(string)
	if !ok {
		return nil, fmt.Errorf("%w: text operation on %T", ErrTypeMismatch, cur)
	}
	s, err = applyTextEdits(s, op.O)
	if err != nil {
		return nil, err
	}
	return set(document, path, s)
}

// replaceRoot handles insert/delete pairs addressing the whole document.
func replaceRoot(ins Value) any {
	if ins.IsAbsent() {
		return nil
	}
	return ins.Interface()
}

func checkDeleted(cur any, want Value) error {
	got, err := ValueOf(cur)
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		return fmt.Errorf("%w: found %s, operation deletes %s", ErrValueMismatch, got, want)
	}
	return nil
}
