// Package debug provides printing helpers for inspecting raw trees and
// constructed model instances while developing an API client.
package debug

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
)

// rawer is satisfied by every resourceez model instance.
type rawer interface {
	Raw() map[string]any
}

// JSON writes v to w as indented JSON followed by a newline. A constructed
// model instance contributes its raw snapshot, so the output shows the full
// document, undeclared keys included.
func JSON(w io.Writer, v any) error {
	if m, ok := v.(rawer); ok {
		if raw := m.Raw(); raw != nil {
			v = raw
		}
	}
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Dump writes a spew dump of v to w: typed fields, snapshot and all. Useful
// when the typed view and the raw view disagree.
func Dump(w io.Writer, v any) {
	spew.Fdump(w, v)
}
