// Package traverse runs visitor callbacks over iterator sources under a
// selectable execution policy.
package traverse

import (
	"fmt"
	"iter"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Policy selects how a traversal executes its visitor.
type Policy int

const (
	// Sequential visits every element in source order. The visitor result is ignored.
	Sequential Policy = iota
	// Breakable visits in source order and stops as soon as the visitor returns false.
	Breakable
	// Parallel visits elements concurrently with no ordering guarantee. The
	// visitor result is ignored and the visitor must be safe for concurrent use.
	Parallel
)

func (p Policy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case Breakable:
		return "breakable"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "sequential":
		return Sequential, nil
	case "breakable":
		return Breakable, nil
	case "parallel":
		return Parallel, nil
	}
	return Sequential, fmt.Errorf("unknown traversal policy %q", s)
}

// Visitor is called once per element. Returning false stops a Breakable traversal.
type Visitor[K, V any] func(K, V) bool

// Run visits every element produced by seq under policy p.
func Run[K, V any](p Policy, seq iter.Seq2[K, V], visit Visitor[K, V]) {
	switch p {
	case Breakable:
		for k, v := range seq {
			if !visit(k, v) {
				return
			}
		}
	case Parallel:
		runParallel(seq, visit)
	default:
		for k, v := range seq {
			visit(k, v)
		}
	}
}

// Workers bounds the number of goroutines used by Parallel traversals.
var Workers = runtime.GOMAXPROCS(0)

func runParallel[K, V any](seq iter.Seq2[K, V], visit Visitor[K, V]) {
	var g errgroup.Group
	if Workers > 0 {
		g.SetLimit(Workers)
	}
	for k, v := range seq {
		g.Go(func() error {
			visit(k, v)
			return nil
		})
	}
	_ = g.Wait()
}

// Slice adapts a slice into an index/value sequence.
func Slice[V any](s []V) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range s {
			if !yield(i, v) {
				return
			}
		}
	}
}
