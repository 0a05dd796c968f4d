// Package render turns a specifier record into a display card. It is a
// pure projection: no network, no registry access, same input always
// yields the same card.
package render

import (
	"fmt"
	"strings"

	"github.com/benbot/benbot/pkg/specifier"
)

// Placeholder text for empty fields. Sections are always emitted so
// every card has the same shape.
const (
	NoComment  = "No comment available."
	NoExamples = "No examples available."
	NoConflict = "None."
	NoSource   = "No source available."
)

// Section is one labeled part of a card, in display order.
type Section struct {
	Label string
	Value string
}

// Card is the rendered form of a single specifier record.
type Card struct {
	Title    string
	Sections []Section
}

// Render projects a record into a card. All sections except the image
// are always present; the image section appears only when the record
// carries one (only some categories do).
func Render(name string, rec specifier.Record) Card {
	card := Card{Title: fmt.Sprintf("Specifier: %s", name)}

	comment := rec.Comment
	if comment == "" {
		comment = NoComment
	}
	card.Sections = append(card.Sections, Section{Label: "Description", Value: comment})

	examples := NoExamples
	if len(rec.Samples) > 0 {
		examples = fmt.Sprintf("```cpp\n%s\n```", strings.Join(rec.Samples, "\n"))
	}
	card.Sections = append(card.Sections, Section{Label: "Examples", Value: examples})

	conflicts := NoConflict
	if len(rec.Incompatible) > 0 {
		conflicts = fmt.Sprintf("```\n%s\n```", strings.Join(rec.Incompatible, "\n"))
	}
	card.Sections = append(card.Sections, Section{Label: "Incompatible with", Value: conflicts})

	card.Sections = append(card.Sections, Section{
		Label: "Documentation",
		Value: linkOr(rec.Documentation, "Documentation", NoSource),
	})

	if rec.Image != nil && rec.Image.Source != "" {
		card.Sections = append(card.Sections, Section{
			Label: "Image",
			Value: linkOr(rec.Image, "Image", NoSource),
		})
	}
	return card
}

// linkOr renders a markdown link for l, or fallback when l is absent.
func linkOr(l *specifier.Link, label, fallback string) string {
	if l == nil || l.Source == "" {
		return fallback
	}
	return fmt.Sprintf("[%s](%s)", label, l.Source)
}

// Text flattens a card into plain text, used by the CLI output path.
func (c Card) Text() string {
	var b strings.Builder
	b.WriteString(c.Title)
	for _, s := range c.Sections {
		b.WriteString("\n\n")
		b.WriteString(s.Label)
		b.WriteString("\n")
		b.WriteString(s.Value)
	}
	return b.String()
}
