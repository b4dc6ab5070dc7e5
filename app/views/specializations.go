package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/amirphl/Omoikane/app/dto"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// SpecializationToggleURL is the endpoint a specialization checkbox posts to
func SpecializationToggleURL(id uint) string {
	return fmt.Sprintf("/api/v1/admin/ui/specializations/%d/toggle", id)
}

// SpecializationToggle is the active checkbox of one specialization
func SpecializationToggle(s dto.SpecializationDTO) templ.Component {
	return CheckboxField(CheckboxProps{
		Label:    s.DomainName,
		Name:     "active_flag",
		ID:       fmt.Sprintf("specialization-%d", s.ID),
		Checked:  s.ActiveFlag,
		OnChange: SpecializationToggleURL(s.ID),
	})
}

// SpecializationsPage lists every specialization with its active toggle
func SpecializationsPage(items []dto.SpecializationDTO) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Specializations</title><script src="`+htmxScript+`"></script></head><body><main><h1>Specializations</h1>`); err != nil {
			return err
		}
		if len(items) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No specializations yet.</p>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<ul class="specializations">`); err != nil {
				return err
			}
			for _, s := range items {
				if _, err := io.WriteString(w, "<li>"); err != nil {
					return err
				}
				if err := SpecializationToggle(s).Render(ctx, w); err != nil {
					return err
				}
				if _, err := io.WriteString(w, "</li>"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}
