package sourcegraph

// DefaultMaxDepth is the recursion ceiling applied when a caller passes a
// non-positive limit. The source graph offers no reliable node identity, so a
// depth ceiling rather than a visited set is the cycle defense.
const DefaultMaxDepth = 16

// Recurse walks node depth-first. visit receives the node and its depth and
// returns the children to descend into. The branch is abandoned silently once
// depth exceeds maxDepth.
func Recurse(node any, depth, maxDepth int, visit func(node any, depth int) []any) {
	if node == nil {
		return
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return
	}
	for _, child := range visit(node, depth) {
		Recurse(child, depth+1, maxDepth, visit)
	}
}
