package json0diff

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type spanKind int8

const (
	spanRetain spanKind = iota
	spanInsert
	spanDelete
)

// span is one run of a character diff. Retain and delete spans concatenate to
// the old text, retain and insert spans to the new one.
type span struct {
	kind spanKind
	text string
}

// charDiff diffs two strings code point by code point.
func charDiff(a, b string) []span {
	dmp := diffmatchpatch.New()
	// No deadline: the result must not depend on machine speed.
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes([]rune(a), []rune(b), false)

	spans := make([]span, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			spans = append(spans, span{kind: spanDelete, text: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, span{kind: spanInsert, text: d.Text})
		default:
			spans = append(spans, span{kind: spanRetain, text: d.Text})
		}
	}
	return spans
}

// textEdits turns a character diff into text0 edits. Deletions do not move
// the cursor because the deleted text is gone once the edit is applied.
func textEdits(a, b string) []TextEdit {
	var (
		edits = []TextEdit{}
		idx   int
	)
	for _, s := range charDiff(a, b) {
		switch s.kind {
		case spanDelete:
			edits = append(edits, TextEdit{P: idx, D: s.text})
		case spanInsert:
			edits = append(edits, TextEdit{P: idx, I: s.text})
			idx += utf8.RuneCountInString(s.text)
		default:
			idx += utf8.RuneCountInString(s.text)
		}
	}
	return edits
}

// applyTextEdits replays text0 edits on s, checking that deleted text matches.
func applyTextEdits(s string, edits []TextEdit) (string, error) {
	runes := []rune(s)
	for _, e := range edits {
		if e.P < 0 || e.P > len(runes) {
			return "", fmt.Errorf("%w: text offset %d outside string of length %d", ErrInvalidOperation, e.P, len(runes))
		}
		if e.D != "" {
			del := []rune(e.D)
			end := e.P + len(del)
			if end > len(runes) || string(runes[e.P:end]) != e.D {
				return "", fmt.Errorf("%w: at offset %d", ErrTextMismatch, e.P)
			}
			runes = append(runes[:e.P:e.P], runes[end:]...)
		}
		if e.I != "" {
			ins := []rune(e.I)
			next := make([]rune, 0, len(runes)+len(ins))
			next = append(next, runes[:e.P]...)
			next = append(next, ins...)
			runes = append(next, runes[e.P:]...)
		}
	}
	return string(runes), nil
}
