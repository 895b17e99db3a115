package json0diff

import (
	"encoding/json"
	"fmt"
)

// TextSubtype is the embedded operation type used for string edits.
const TextSubtype = "text0"

// TextEdit is one character-level edit inside a text0 operation. Offsets
// count Unicode code points. Exactly one of I and D is set.
type TextEdit struct {
	P int    `json:"p"`
	I string `json:"i,omitempty"`
	D string `json:"d,omitempty"`
}

// Operation is a single json0 edit. Fields holding an absent Value are not
// part of the operation, so inserting JSON null is expressible.
type Operation struct {
	P  Path
	LI Value // list insert
	LD Value // list delete
	OI Value // object insert
	OD Value // object delete
	NA Value // numeric add
	T  string
	O  []TextEdit
}

func (op Operation) IsListInsert() bool { return !op.LI.IsAbsent() }
func (op Operation) IsListDelete() bool { return !op.LD.IsAbsent() }

// IsPureListDelete reports a list deletion that does not reinsert anything.
func (op Operation) IsPureListDelete() bool {
	return op.IsListDelete() && !op.IsListInsert()
}

// IsNoop reports an operation carrying nothing but its path.
func (op Operation) IsNoop() bool {
	return op.LI.IsAbsent() && op.LD.IsAbsent() && op.OI.IsAbsent() && op.OD.IsAbsent() &&
		op.NA.IsAbsent() && op.T == "" && op.O == nil
}

// Clone returns a copy that shares nothing mutable with op.
func (op Operation) Clone() Operation {
	out := op
	out.P = append(Path{}, op.P...)
	if op.O != nil {
		out.O = append([]TextEdit{}, op.O...)
	}
	return out
}

func (op Operation) String() string {
	b, err := json.Marshal(op)
	if err != nil {
		return fmt.Sprintf("{p:%v invalid: %v}", op.P, err)
	}
	return string(b)
}

type wireOperation struct {
	P  Path            `json:"p"`
	LD *Value          `json:"ld,omitempty"`
	LI *Value          `json:"li,omitempty"`
	OD *Value          `json:"od,omitempty"`
	OI *Value          `json:"oi,omitempty"`
	NA *Value          `json:"na,omitempty"`
	T  string          `json:"t,omitempty"`
	O  json.RawMessage `json:"o,omitempty"`
}

func present(v Value) *Value {
	if v.IsAbsent() {
		return nil
	}
	return &v
}

func (op Operation) MarshalJSON() ([]byte, error) {
	w := wireOperation{
		P:  op.P,
		LD: present(op.LD),
		LI: present(op.LI),
		OD: present(op.OD),
		OI: present(op.OI),
		NA: present(op.NA),
		T:  op.T,
	}
	if op.T != "" || op.O != nil {
		edits := op.O
		if edits == nil {
			edits = []TextEdit{}
		}
		o, err := json.Marshal(edits)
		if err != nil {
			return nil, err
		}
		w.O = o
	}
	return json.Marshal(w)
}

func (op *Operation) UnmarshalJSON(data []byte) error {
	// Decoded field by field: a pointer field would swallow an explicit null.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	out := Operation{P: Path{}}
	if raw, ok := fields["p"]; ok {
		if err := json.Unmarshal(raw, &out.P); err != nil {
			return fmt.Errorf("%w: p: %v", ErrInvalidOperation, err)
		}
	}
	for name, dst := range map[string]*Value{"li": &out.LI, "ld": &out.LD, "oi": &out.OI, "od": &out.OD, "na": &out.NA} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidOperation, name, err)
		}
	}
	if !out.NA.IsAbsent() && out.NA.Kind() != KindNumber {
		return fmt.Errorf("%w: na must be a number, got %s", ErrInvalidOperation, out.NA.Kind())
	}
	if raw, ok := fields["t"]; ok {
		if err := json.Unmarshal(raw, &out.T); err != nil {
			return fmt.Errorf("%w: t: %v", ErrInvalidOperation, err)
		}
		if out.T != TextSubtype {
			return fmt.Errorf("%w: unsupported subtype %q", ErrInvalidOperation, out.T)
		}
		out.O = []TextEdit{}
		if raw, ok := fields["o"]; ok {
			if err := json.Unmarshal(raw, &out.O); err != nil {
				return fmt.Errorf("%w: o: %v", ErrInvalidOperation, err)
			}
		}
	}
	*op = out
	return nil
}

// Operations is an ordered operation list, applied first to last.
type Operations []Operation

func (ops Operations) MarshalJSON() ([]byte, error) {
	if ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Operation(ops))
}
