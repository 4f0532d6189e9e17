package resourceez

// Model is the embeddable base for declared resource types. A struct that
// embeds Model becomes a model type: its tagged fields are populated from a
// raw mapping by Construct, while the mapping itself is retained in full for
// exact recovery via Raw.
//
// The zero Model belongs to an instance that has not been constructed yet;
// Raw and Extras return nil for it.
type Model struct {
	raw    map[string]any
	extras map[string]any
}

// Raw returns the original raw mapping the instance was constructed from.
// It is the very map supplied to Construct, not a reconstruction, so it
// includes every key untouched, declared or not. Callers must not mutate it.
func (m Model) Raw() map[string]any { return m.raw }

// Get looks up any key of the raw mapping, declared or undeclared, and
// reports whether it was present. Undeclared values come back exactly as
// they appear in the raw mapping, with no typed interpretation.
func (m Model) Get(key string) (any, bool) {
	v, ok := m.raw[key]
	return v, ok
}

// Extras returns the undeclared portion of the raw mapping: every key that
// no declared field claimed, with its raw value. Callers must not mutate it.
func (m Model) Extras() map[string]any { return m.extras }

// attach publishes the raw snapshot on a freshly constructed instance.
func (m *Model) attach(raw, extras map[string]any) {
	m.raw = raw
	m.extras = extras
}
