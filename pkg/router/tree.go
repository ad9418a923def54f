package router

// node is a prefix-compressed tree node. Literal children are keyed by the
// first byte of their prefix; the no-shared-prefix invariant guarantees at
// most one literal child can continue any given path. Each node additionally
// owns at most one placeholder child.
//
// Nodes are mutated only while the owning Router is being built. After New
// returns, the tree is read-only and safe for unsynchronized concurrent
// matching.
type node struct {
	// prefix is the literal run this node matches, relative to its parent.
	prefix string

	// children holds literal children keyed by leading byte. Sibling
	// prefixes never share a leading byte.
	children map[byte]*node

	// placeholder is the single placeholder child, if any.
	placeholder *node

	// spec is set on placeholder nodes only.
	spec *placeholderSpec

	// route is the terminal attached here, if some pattern ends exactly at
	// this node. A node may carry both a route and children.
	route *route
}

// route is a terminal: the pattern it was declared with and the adapted
// handler to invoke.
type route struct {
	pattern Pattern
	handler HandlerFunc
}

// insert threads a parsed pattern through the tree, splitting and extending
// literal runs as needed, and attaches rt at the node the pattern ends on.
func (n *node) insert(p Pattern, rt *route) error {
	cur := n
	for _, tok := range p.tokens {
		if tok.spec == nil {
			cur = cur.insertLiteral(tok.literal)
			continue
		}
		if cur.placeholder == nil {
			cur.placeholder = &node{spec: tok.spec}
		} else if cur.placeholder.spec.kind != tok.spec.kind {
			return patternErr(p.raw, -1, ErrAmbiguousPlaceholder,
				"%v conflicts with previously declared %v", tok.spec.kind, cur.placeholder.spec.kind)
		}
		cur = cur.placeholder
	}
	if cur.route != nil {
		return patternErr(p.raw, -1, ErrDuplicateRoute,
			"already registered as %q", cur.route.pattern.raw)
	}
	cur.route = rt
	return nil
}

// insertLiteral descends along lit, reusing existing runs where they match,
// splitting a child at the divergence point when they partially overlap, and
// creating a fresh child when nothing overlaps. It returns the node at which
// lit is fully consumed.
func (n *node) insertLiteral(lit string) *node {
	cur := n
	for lit != "" {
		child, ok := cur.children[lit[0]]
		if !ok {
			child = &node{prefix: lit}
			if cur.children == nil {
				cur.children = make(map[byte]*node)
			}
			cur.children[lit[0]] = child
			return child
		}

		common := commonPrefixLen(child.prefix, lit)
		if common < len(child.prefix) {
			// Partial overlap: split the child at the boundary. The new
			// suffix node keeps everything the child owned; the child
			// itself becomes a bare intermediate node.
			suffix := &node{
				prefix:      child.prefix[common:],
				children:    child.children,
				placeholder: child.placeholder,
				spec:        child.spec,
				route:       child.route,
			}
			child.prefix = child.prefix[:common]
			child.children = map[byte]*node{suffix.prefix[0]: suffix}
			child.placeholder = nil
			child.spec = nil
			child.route = nil
		}

		lit = lit[common:]
		cur = child
	}
	return cur
}

// commonPrefixLen returns the length of the longest shared leading
// substring of a and b.
func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
