package bot

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/benbot/benbot/pkg/render"
)

// embedColor is the accent used on every specifier card.
const embedColor = 0x2eaadc

// Discord caps embed field values at 1024 characters.
const maxFieldLen = 1024

// Embed converts a rendered card into a Discord embed, one field per
// section in card order.
func Embed(card render.Card) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(card.Sections))
	for _, s := range card.Sections {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  s.Label,
			Value: clip(s.Value, maxFieldLen),
		})
	}
	return &discordgo.MessageEmbed{
		Title:  card.Title,
		Color:  embedColor,
		Fields: fields,
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3 // room for the ellipsis
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
