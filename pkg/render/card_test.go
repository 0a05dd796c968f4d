package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbot/benbot/pkg/specifier"
)

func sectionValue(t *testing.T, c Card, label string) string {
	t.Helper()
	for _, s := range c.Sections {
		if s.Label == label {
			return s.Value
		}
	}
	t.Fatalf("card has no %q section", label)
	return ""
}

func TestRenderFullRecord(t *testing.T) {
	rec := specifier.Record{
		Name:          "BlueprintReadOnly",
		Comment:       "Readable from Blueprints.",
		Samples:       []string{"UPROPERTY(BlueprintReadOnly)", "int32 Health;"},
		Incompatible:  []string{"BlueprintReadWrite"},
		Documentation: &specifier.Link{Source: "https://docs.example.com/bro"},
		Image:         &specifier.Link{Source: "https://img.example.com/bro.png"},
	}
	card := Render("BlueprintReadOnly", rec)

	assert.Equal(t, "Specifier: BlueprintReadOnly", card.Title)
	assert.Equal(t, "Readable from Blueprints.", sectionValue(t, card, "Description"))
	assert.Equal(t, "```cpp\nUPROPERTY(BlueprintReadOnly)\nint32 Health;\n```", sectionValue(t, card, "Examples"))
	assert.Equal(t, "```\nBlueprintReadWrite\n```", sectionValue(t, card, "Incompatible with"))
	assert.Equal(t, "[Documentation](https://docs.example.com/bro)", sectionValue(t, card, "Documentation"))
	assert.Equal(t, "[Image](https://img.example.com/bro.png)", sectionValue(t, card, "Image"))
}

func TestRenderEmptyFieldsUsePlaceholders(t *testing.T) {
	card := Render("Transient", specifier.Record{Name: "Transient"})

	assert.Equal(t, NoComment, sectionValue(t, card, "Description"))
	assert.Equal(t, NoExamples, sectionValue(t, card, "Examples"))
	assert.Equal(t, NoConflict, sectionValue(t, card, "Incompatible with"))
	assert.Equal(t, NoSource, sectionValue(t, card, "Documentation"))
}

func TestRenderImageSectionOnlyWhenPresent(t *testing.T) {
	card := Render("Transient", specifier.Record{Name: "Transient"})
	for _, s := range card.Sections {
		assert.NotEqual(t, "Image", s.Label, "image section must be omitted without an image")
	}
	require.Len(t, card.Sections, 4)
}

func TestRenderIsDeterministic(t *testing.T) {
	rec := specifier.Record{Name: "Config", Comment: "Loaded from ini."}
	assert.Equal(t, Render("Config", rec), Render("Config", rec))
}

func TestCardText(t *testing.T) {
	card := Render("Transient", specifier.Record{Name: "Transient", Comment: "Not saved."})
	text := card.Text()
	assert.Contains(t, text, "Specifier: Transient")
	assert.Contains(t, text, "Description\nNot saved.")
	assert.Contains(t, text, NoExamples)
}
