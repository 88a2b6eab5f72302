package sourcegraph

// CellUnwrapper resolves host reactivity cells to their current value. The
// core stays decoupled from any particular reactivity framework; hosts plug
// in an adapter that recognises their cell type. Unwrap reports ok=false when
// the value is not a cell, leaving the value untouched.
type CellUnwrapper interface {
	Unwrap(v any) (value any, ok bool)
}

// CellUnwrapperFunc adapts a plain function to the CellUnwrapper interface.
type CellUnwrapperFunc func(v any) (any, bool)

func (f CellUnwrapperFunc) Unwrap(v any) (any, bool) { return f(v) }

// valueCell is the built-in cell shape: anything exposing Value().
type valueCell interface {
	Value() any
}

// unwrapLimit bounds cell-of-cell chains so a pathological adapter cannot
// spin forever.
const unwrapLimit = 8

// AccessorOption customises an Accessor.
type AccessorOption func(*Accessor)

// WithCellUnwrapper installs a host-specific cell adapter. The built-in
// handling of Value() carriers and zero-argument functions stays active.
func WithCellUnwrapper(u CellUnwrapper) AccessorOption {
	return func(a *Accessor) {
		a.cells = u
	}
}

// Accessor reads values out of the opaque source graph. Unwrap never panics:
// a misbehaving cell or adapter yields nil, which every caller treats as
// "absent".
type Accessor struct {
	cells CellUnwrapper
}

// NewAccessor constructs an Accessor applying any provided options.
func NewAccessor(options ...AccessorOption) *Accessor {
	a := &Accessor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Unwrap returns a reactive cell's current value, or the value unchanged when
// it is not a cell. Any failure while resolving a cell yields nil.
func (a *Accessor) Unwrap(v any) (out any) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	for i := 0; i < unwrapLimit; i++ {
		switch cell := v.(type) {
		case nil:
			return nil
		case func() any:
			v = cell()
			continue
		case valueCell:
			v = cell.Value()
			continue
		}
		if a != nil && a.cells != nil {
			if inner, ok := a.cells.Unwrap(v); ok {
				v = inner
				continue
			}
		}
		return v
	}
	return v
}

// Map unwraps v and returns it as a string-keyed map, or nil when it is not
// one.
func (a *Accessor) Map(v any) map[string]any {
	m, _ := a.Unwrap(v).(map[string]any)
	return m
}

// Slice unwraps v and returns it as a list, or nil when it is not one.
func (a *Accessor) Slice(v any) []any {
	s, _ := a.Unwrap(v).([]any)
	return s
}

// Key unwraps the value stored under key in a map-shaped node.
func (a *Accessor) Key(node any, key string) any {
	m := a.Map(node)
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok {
		return nil
	}
	return a.Unwrap(v)
}
