package resourceez

import (
	"fmt"
	"io"
)

// Decoder reads JSON documents from an input stream and constructs model
// instances from them.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
//
// Functional options can be provided to configure construction, such as
// setting a maximum recursion depth with the MaxDepth option.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the next document from its input and constructs the model
// instance (or slice of instances) pointed to by v. If v is nil or not a
// pointer, Decode returns an error.
//
// See the documentation for Construct for the construction semantics.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before decoding.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("resourceez: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, v, d.opts...)
}
