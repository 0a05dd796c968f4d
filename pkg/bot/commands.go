package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/benbot/benbot/pkg/specifier"
)

// lookupCommands maps the category-scoped command names to their
// category.
var lookupCommands = map[string]specifier.Category{
	"uprop":  specifier.CategoryProperty,
	"uclass": specifier.CategoryClass,
	"uenum":  specifier.CategoryEnum,
	"ufunc":  specifier.CategoryFunction,
}

func nameOption(desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "name",
		Description:  desc,
		Required:     true,
		Autocomplete: true,
	}
}

// commands is the full slash-command table registered on startup.
func commands() []*discordgo.ApplicationCommand {
	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "specifier",
			Description: "Look up a specifier in any category",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Specifier name")},
		},
		{
			Name:        "uprop",
			Description: "Look up a UPROPERTY specifier",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Property specifier name")},
		},
		{
			Name:        "uclass",
			Description: "Look up a UCLASS specifier",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Class specifier name")},
		},
		{
			Name:        "uenum",
			Description: "Look up a UENUM specifier",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Enum specifier name")},
		},
		{
			Name:        "ufunc",
			Description: "Look up a UFUNCTION specifier",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Function specifier name")},
		},
		{
			Name:        "docs",
			Description: "Show an excerpt of a specifier's documentation page",
			Options:     []*discordgo.ApplicationCommandOption{nameOption("Specifier name")},
		},
		{
			Name:        "dad_joke",
			Description: "Get a dad joke, random or by name",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Joke name (random when omitted)",
				},
			},
		},
		{
			Name:        "add_dad_joke",
			Description: "Store a new dad joke (moderators only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Joke name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "answer",
					Description: "The joke itself",
					Required:    true,
				},
			},
		},
		{
			Name:        "delete_dad_joke",
			Description: "Delete a stored dad joke (moderators only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Joke name",
					Required:    true,
				},
			},
		},
		{
			Name:        "sync",
			Description: "Reload the specifier catalogs (moderators only)",
		},
	}
	return cmds
}
