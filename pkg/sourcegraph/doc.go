// Package sourcegraph provides the engine's read-only view of the host
// application's form model: the four root containers, the reactive-cell
// unwrap capability, the depth-guarded recursion primitive, and loose scalar
// coercion. It also decodes captured graph snapshots for fixtures and hosts
// that serialise the model before handing it over.
package sourcegraph
