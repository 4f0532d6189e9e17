package resourceez

import "io"

// Encoder writes the raw snapshots of model instances to an output stream
// as JSON.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the JSON encoding of v's raw snapshot to the stream,
// followed by a newline. See the documentation for Marshal for what v
// may be.
func (e *Encoder) Encode(v any) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = e.w.Write(b)
	return err
}
