// Package bot wires the command handlers to a Discord session. All
// command semantics live in Handler; this file only translates
// interactions in and replies out.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot owns the Discord session for one process.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
	logger  *zap.Logger
}

// New builds a bot around an authenticated session token. guildID scopes
// command registration to one guild (instant updates); empty registers
// globally.
func New(token, guildID string, handler *Handler, logger *zap.Logger) (*Bot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return &Bot{
		session: session,
		handler: handler,
		guildID: guildID,
		logger:  logger,
	}, nil
}

// Start opens the gateway connection and registers the slash commands.
// It returns once the session is up; Close shuts it down.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("logged in", zap.String("user", r.User.String()))
	})
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commands()); err != nil {
		b.session.Close()
		return fmt.Errorf("register commands: %w", err)
	}
	b.logger.Info("commands registered", zap.String("guild", b.guildID))
	return nil
}

// Close tears down the gateway connection.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.dispatchAutocomplete(s, i)
	}
}

// caller extracts the invoking user's identity and role set. In DMs
// there is no member and therefore no roles, so gated commands deny.
func caller(i *discordgo.InteractionCreate) Caller {
	if i.Member != nil && i.Member.User != nil {
		return Caller{ID: i.Member.User.ID, Roles: i.Member.Roles}
	}
	if i.User != nil {
		return Caller{ID: i.User.ID}
	}
	return Caller{}
}

func option(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	who := caller(i)
	ctx := context.Background()

	// sync and docs hit the network, so acknowledge first and edit the
	// response in once the work finishes.
	switch data.Name {
	case "sync", "docs":
		b.respondDeferred(s, i, func() Reply {
			if data.Name == "sync" {
				return b.handler.Sync(ctx, who)
			}
			return b.handler.Docs(ctx, who, option(data, "name"))
		})
		return
	}

	var reply Reply
	switch data.Name {
	case "specifier":
		reply = b.handler.Specifier(who, option(data, "name"))
	case "dad_joke":
		reply = b.handler.Joke(who, option(data, "name"))
	case "add_dad_joke":
		reply = b.handler.AddJoke(who, option(data, "name"), option(data, "answer"))
	case "delete_dad_joke":
		reply = b.handler.DeleteJoke(who, option(data, "name"))
	default:
		cat, ok := lookupCommands[data.Name]
		if !ok {
			b.logger.Warn("unknown command", zap.String("command", data.Name))
			reply = Reply{Content: MsgInternal, Ephemeral: true}
			break
		}
		reply = b.handler.Lookup(who, cat, option(data, "name"))
	}
	b.respond(s, i, reply)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, reply Reply) {
	data := &discordgo.InteractionResponseData{Content: reply.Content}
	if reply.Card != nil {
		data.Embeds = []*discordgo.MessageEmbed{Embed(*reply.Card)}
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Error("interaction respond failed", zap.Error(err))
	}
}

func (b *Bot) respondDeferred(s *discordgo.Session, i *discordgo.InteractionCreate, run func() Reply) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.Error("interaction defer failed", zap.Error(err))
		return
	}

	reply := run()
	edit := &discordgo.WebhookEdit{Content: &reply.Content}
	if reply.Card != nil {
		embeds := []*discordgo.MessageEmbed{Embed(*reply.Card)}
		edit.Embeds = &embeds
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		b.logger.Error("interaction edit failed", zap.Error(err))
	}
}

func (b *Bot) dispatchAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	var prefix string
	for _, opt := range data.Options {
		if opt.Focused {
			prefix = opt.StringValue()
			break
		}
	}

	names := b.handler.Suggest(prefix)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		b.logger.Error("autocomplete respond failed", zap.Error(err))
	}
}
