package json0diff

// Optimize drops list inserts that are immediately undone by deleting an
// identical value at the next index of the same array. Pairs are examined in
// a single left-to-right pass; a merge does not trigger a rescan. ops is not
// modified.
func Optimize(ops Operations) Operations {
	work := make(Operations, len(ops))
	for i, op := range ops {
		work[i] = op.Clone()
	}

	for i := 0; i+1 < len(work); i++ {
		a, b := &work[i], &work[i+1]
		if !successiveIndexes(a.P, b.P) {
			continue
		}
		if !a.IsListInsert() || !b.IsListDelete() {
			continue
		}
		if !a.LI.Equal(b.LD) {
			continue
		}
		a.LI = Value{}
		b.LD = Value{}
	}

	out := make(Operations, 0, len(work))
	for _, op := range work {
		if !op.IsNoop() {
			out = append(out, op)
		}
	}
	return out
}

// successiveIndexes reports whether a and b address neighbouring elements
// a[i] and b[i+1] of the same array.
func successiveIndexes(a, b Path) bool {
	la, ok := a.Last()
	if !ok || la.IsKey() {
		return false
	}
	lb, ok := b.Last()
	if !ok || lb.IsKey() {
		return false
	}
	return la.Index()+1 == lb.Index() && a.Parent().Equal(b.Parent())
}
