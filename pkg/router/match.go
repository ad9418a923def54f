package router

import (
	"fmt"
	"strings"
)

// TraceFunc receives human-readable trace lines while a path is being
// matched. It is observability only; it has no effect on the outcome.
type TraceFunc func(line string)

// match runs a depth-first search with backtracking over the subtree rooted
// at n. Literal children are tried before the placeholder child, so a
// directly declared literal route always beats a placeholder that could also
// consume the same text. When a literal descent dead-ends, the search
// resumes at the placeholder of the nearest ancestor that still has one.
//
// vals accumulates converted placeholder values in left-to-right order; the
// slice returned on success is the complete argument list for the matched
// handler. Failed branches simply abandon their appended tail.
func (n *node) match(path string, vals []Value, trace TraceFunc) (*route, []Value, bool) {
	if path == "" {
		if n.route != nil {
			return n.route, vals, true
		}
		// Path consumed at an intermediate node. Not a match.
		if trace != nil {
			trace("dead end: path consumed at node without handler")
		}
		return nil, nil, false
	}

	if child, ok := n.children[path[0]]; ok && strings.HasPrefix(path, child.prefix) {
		if trace != nil {
			trace(fmt.Sprintf("literal %q matched, remaining %q", child.prefix, path[len(child.prefix):]))
		}
		if rt, out, ok := child.match(path[len(child.prefix):], vals, trace); ok {
			return rt, out, true
		}
		if trace != nil {
			trace(fmt.Sprintf("backtracking out of literal %q", child.prefix))
		}
	}

	if ph := n.placeholder; ph != nil {
		seg, rest := ph.spec.cut(path)
		switch {
		case seg == "" || !ph.spec.predicate(seg):
			if trace != nil {
				trace(fmt.Sprintf("placeholder %v rejected segment %q", ph.spec.kind, seg))
			}
		default:
			v, err := ph.spec.convert(seg)
			if err != nil {
				// Predicate passed but the parse failed (overflow, bad
				// encoding variant). Ordinary branch rejection.
				if trace != nil {
					trace(fmt.Sprintf("placeholder %v failed to convert %q: %v", ph.spec.kind, seg, err))
				}
				break
			}
			if trace != nil {
				trace(fmt.Sprintf("placeholder %v captured %q, remaining %q", ph.spec.kind, seg, rest))
			}
			if rt, out, ok := ph.match(rest, append(vals, v), trace); ok {
				return rt, out, true
			}
			if trace != nil {
				trace(fmt.Sprintf("backtracking out of placeholder %v", ph.spec.kind))
			}
		}
	}

	return nil, nil, false
}
