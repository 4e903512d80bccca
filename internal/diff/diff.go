// Package diff computes edit scripts between two ordered item sequences.
//
// Sequences are compared by identity, not by full value equality: an item
// present in both sequences is moved (or left alone), an item only in the
// old sequence is removed, and an item only in the new sequence is inserted.
// The script is ordered so that applying its operations one by one to the
// old sequence yields the new sequence exactly.
package diff

import "fmt"

// OpKind identifies the type of an edit operation.
type OpKind int

const (
	OpInsert OpKind = iota
	OpRemove
	OpMove
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Op is a single edit operation. Indices refer to the sequence as it exists
// at the moment the operation is applied, after all earlier operations in
// the script have already been applied.
//
// Insert uses To, Remove uses From, Move uses both.
type Op[T any] struct {
	Kind OpKind
	Item T
	From int
	To   int
}

func (op Op[T]) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("insert %v at %d", op.Item, op.To)
	case OpRemove:
		return fmt.Sprintf("remove %v from %d", op.Item, op.From)
	default:
		return fmt.Sprintf("move %v from %d to %d", op.Item, op.From, op.To)
	}
}

// DuplicateIdentityError reports two positions in one input sequence that
// share the same identity. Diffing such a sequence is meaningless, so the
// caller gets this error and no partial script.
type DuplicateIdentityError struct {
	Sequence string // "old" or "new"
	First    int
	Second   int
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity in %s sequence: positions %d and %d", e.Sequence, e.First, e.Second)
}

// Diff computes a minimal edit script that transforms old into new.
// sameID reports whether two items are the same logical item.
//
// The script is minimal in the number of operations: removals and insertions
// are forced by membership, and the number of moves equals the number of
// common items minus the length of their longest common subsequence. Ties are
// broken so that unmoved items keep their relative order, which keeps the
// visual disruption small when the script drives animations.
//
// Time and space are O(n*m) for sequences of length n and m. That is fine
// for the list sizes this package targets; callers with very large
// sequences should run Diff off the hot path.
func Diff[T any](old, new []T, sameID func(a, b T) bool) ([]Op[T], error) {
	if err := checkUnique(old, "old", sameID); err != nil {
		return nil, err
	}
	if err := checkUnique(new, "new", sameID); err != nil {
		return nil, err
	}

	indexIn := func(seq []T, item T) int {
		for i := range seq {
			if sameID(seq[i], item) {
				return i
			}
		}
		return -1
	}

	var ops []Op[T]

	// Phase 1: remove items that are no longer present. Indices are live,
	// so the work list shrinks as we emit.
	work := make([]T, len(old))
	copy(work, old)
	for i := 0; i < len(work); {
		if indexIn(new, work[i]) < 0 {
			ops = append(ops, Op[T]{Kind: OpRemove, Item: work[i], From: i})
			work = removeAt(work, i)
		} else {
			i++
		}
	}

	// Phase 2: anchor the longest common subsequence of the surviving items.
	// Anchored items never move; everything else is a mover or an insert.
	commonNew := make([]T, 0, len(new))
	for _, item := range new {
		if indexIn(work, item) >= 0 {
			commonNew = append(commonNew, item)
		}
	}
	anchored := lcsMembers(work, commonNew, sameID)

	// Phase 3: walk the target ascending, splicing movers and inserts into
	// place. Anchored items settle into the remaining slots on their own
	// because their relative order already matches the target.
	for t, item := range new {
		f := indexIn(work, item)
		switch {
		case f < 0:
			ops = append(ops, Op[T]{Kind: OpInsert, Item: item, To: t})
			work = insertAt(work, t, item)
			anchored = insertBoolAt(anchored, t, true)
		case anchored[f]:
			// Unmoved.
		default:
			if f != t {
				ops = append(ops, Op[T]{Kind: OpMove, Item: item, From: f, To: t})
			}
			work = insertAt(removeAt(work, f), t, item)
			anchored = insertBoolAt(removeBoolAt(anchored, f), t, true)
		}
	}

	return ops, nil
}

// Apply applies an edit script to seq and returns the resulting sequence.
// It is the inverse contract of Diff: Apply(old, Diff(old, new)) equals new
// by identity and order.
func Apply[T any](seq []T, ops []Op[T]) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for _, op := range ops {
		switch op.Kind {
		case OpRemove:
			out = removeAt(out, op.From)
		case OpInsert:
			out = insertAt(out, op.To, op.Item)
		case OpMove:
			out = insertAt(removeAt(out, op.From), op.To, op.Item)
		}
	}
	return out
}

func checkUnique[T any](seq []T, name string, sameID func(a, b T) bool) error {
	for i := 0; i < len(seq); i++ {
		for j := i + 1; j < len(seq); j++ {
			if sameID(seq[i], seq[j]) {
				return &DuplicateIdentityError{Sequence: name, First: i, Second: j}
			}
		}
	}
	return nil
}

// lcsMembers marks which positions of a belong to a longest common
// subsequence of a and b. Standard dynamic program; the backtrack prefers
// advancing through a first so earlier items stay anchored, which is what
// makes the resulting script stable.
func lcsMembers[T any](a, b []T, sameID func(x, y T) bool) []bool {
	n, m := len(a), len(b)
	member := make([]bool, n)
	if n == 0 || m == 0 {
		return member
	}

	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if sameID(a[i], b[j]) {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	for i, j := 0, 0; i < n && j < m; {
		switch {
		case sameID(a[i], b[j]):
			member[i] = true
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			i++
		default:
			j++
		}
	}
	return member
}

func removeAt[T any](seq []T, i int) []T {
	return append(seq[:i], seq[i+1:]...)
}

func insertAt[T any](seq []T, i int, item T) []T {
	var zero T
	seq = append(seq, zero)
	copy(seq[i+1:], seq[i:])
	seq[i] = item
	return seq
}

func removeBoolAt(seq []bool, i int) []bool {
	return append(seq[:i], seq[i+1:]...)
}

func insertBoolAt(seq []bool, i int, v bool) []bool {
	seq = append(seq, v)
	copy(seq[i+1:], seq[i:])
	seq[i] = v
	return seq
}
