// Package views renders the server-side admin UI fragments with templ
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// CheckboxProps configures CheckboxField
type CheckboxProps struct {
	Label   string
	Name    string
	Checked bool
	// OnChange is the URL the field posts to when toggled; empty renders a plain checkbox
	OnChange string
	// ID defaults to Name
	ID string
}

// CheckboxField renders a labeled checkbox. It holds no state: the new value
// comes back from the OnChange endpoint, which answers with a re-rendered field
// that replaces this one.
func CheckboxField(props CheckboxProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := props.ID
		if id == "" {
			id = props.Name
		}

		var b strings.Builder
		b.WriteString(`<label class="checkbox-field" for="`)
		b.WriteString(templ.EscapeString(id))
		b.WriteString(`"><input type="checkbox" id="`)
		b.WriteString(templ.EscapeString(id))
		b.WriteString(`" name="`)
		b.WriteString(templ.EscapeString(props.Name))
		b.WriteString(`" value="true"`)
		if props.Checked {
			b.WriteString(` checked`)
		}
		if props.OnChange != "" {
			b.WriteString(` hx-post="`)
			b.WriteString(templ.EscapeString(props.OnChange))
			b.WriteString(`" hx-trigger="change" hx-target="closest label" hx-swap="outerHTML"`)
		}
		b.WriteString(`> <span>`)
		b.WriteString(templ.EscapeString(props.Label))
		b.WriteString(`</span></label>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
