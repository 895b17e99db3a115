package json0diff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/agentflare-ai/jsonpointer"
)

// Segment is one step of a Path: an array index or an object key.
type Segment struct {
	key   string
	index int
	isKey bool
}

// Key returns an object key segment.
func Key(k string) Segment { return Segment{key: k, isKey: true} }

// Index returns an array index segment.
func Index(i int) Segment { return Segment{index: i} }

func (s Segment) IsKey() bool { return s.isKey }

// Key returns the object key, or "" for an index segment.
func (s Segment) Key() string { return s.key }

// Index returns the array index, or -1 for a key segment.
func (s Segment) Index() int {
	if s.isKey {
		return -1
	}
	return s.index
}

func (s Segment) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

func (s Segment) MarshalJSON() ([]byte, error) {
	if s.isKey {
		return json.Marshal(s.key)
	}
	return []byte(strconv.Itoa(s.index)), nil
}

func (s *Segment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var k string
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		*s = Key(k)
		return nil
	}
	i, err := strconv.Atoi(string(data))
	if err != nil || i < 0 {
		return fmt.Errorf("%w: path segment %s is neither a key nor an array index", ErrInvalidOperation, data)
	}
	*s = Index(i)
	return nil
}

// Path locates a position inside a document. The empty path is the document
// itself.
type Path []Segment

// NewPath builds a path from ints (array indexes) and strings (object keys).
func NewPath(segments ...any) (Path, error) {
	p := make(Path, 0, len(segments))
	for _, seg := range segments {
		switch s := seg.(type) {
		case string:
			p = append(p, Key(s))
		case int:
			if s < 0 {
				return nil, fmt.Errorf("%w: negative array index %d", ErrInvalidOperation, s)
			}
			p = append(p, Index(s))
		case Segment:
			p = append(p, s)
		default:
			return nil, fmt.Errorf("%w: path segment of type %T", ErrInvalidOperation, seg)
		}
	}
	return p, nil
}

// Append returns a new path with seg added. p is never modified.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Parent returns every segment but the last. The parent of the empty path is
// empty.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Last returns the final segment and false for the empty path.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// inObject reports whether the path ends in an object key.
func (p Path) inObject() bool {
	last, ok := p.Last()
	return ok && last.isKey
}

// Pointer renders p as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	tokens := make(jsonpointer.Pointer, len(p))
	for i, seg := range p {
		tokens[i] = seg.String()
	}
	return tokens.String()
}

func (p Path) String() string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprint([]Segment(p))
	}
	return string(b)
}

func (p Path) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Segment(p))
}
