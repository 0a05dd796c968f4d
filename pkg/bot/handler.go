package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/benbot/benbot/pkg/auth"
	"github.com/benbot/benbot/pkg/catalog"
	"github.com/benbot/benbot/pkg/docs"
	"github.com/benbot/benbot/pkg/jokes"
	"github.com/benbot/benbot/pkg/render"
	"github.com/benbot/benbot/pkg/specifier"
	"github.com/benbot/benbot/pkg/usage"
)

// User-visible responses for the non-card outcomes. Every command path
// ends in some response; silent failures are a bug class this bot
// exists to not have.
const (
	MsgDenied       = "You don't have permission to do that."
	MsgNoJokes      = "No dad jokes stored yet. Add one with /add_dad_joke."
	MsgJokeExists   = "A dad joke with that name already exists."
	MsgJokeNotFound = "No dad joke with that name."
	MsgInternal     = "Something went wrong on my end. Try again in a bit."
)

// maxSuggestions matches the Discord autocomplete choice limit.
const maxSuggestions = 25

// Caller identifies who issued a command and what roles they hold.
type Caller struct {
	ID    string
	Roles []string
}

// Reply is the single response a command handler produces.
type Reply struct {
	Content   string
	Card      *render.Card
	Ephemeral bool
}

// Handler implements every command behind the chat surface. It owns no
// transport details, which keeps the always-respond property testable
// without a live session.
type Handler struct {
	registry *specifier.Registry
	loader   *catalog.Loader
	jokes    *jokes.Store
	excerpts *docs.Excerpter
	usage    *usage.Recorder
	modRoles []string
	logger   *zap.Logger
}

func NewHandler(
	registry *specifier.Registry,
	loader *catalog.Loader,
	jokeStore *jokes.Store,
	excerpts *docs.Excerpter,
	recorder *usage.Recorder,
	modRoles []string,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		loader:   loader,
		jokes:    jokeStore,
		excerpts: excerpts,
		usage:    recorder,
		modRoles: modRoles,
		logger:   logger,
	}
}

func notFound(name string) string {
	return fmt.Sprintf("No specifier named %q was found.", name)
}

// Specifier answers a cross-category lookup.
func (h *Handler) Specifier(caller Caller, name string) Reply {
	cat, rec, ok := h.registry.LookupAcrossAll(name)
	if !ok {
		h.record("specifier", name, usage.OutcomeMiss, caller)
		return Reply{Content: notFound(name)}
	}
	h.logger.Debug("specifier resolved",
		zap.String("name", name),
		zap.String("category", cat.String()))
	h.record("specifier", name, usage.OutcomeHit, caller)
	card := render.Render(name, rec)
	return Reply{Card: &card}
}

// lookupCommandName maps a category back to its surface command, so the
// usage log matches what users actually type.
func lookupCommandName(cat specifier.Category) string {
	switch cat {
	case specifier.CategoryProperty:
		return "uprop"
	case specifier.CategoryClass:
		return "uclass"
	case specifier.CategoryEnum:
		return "uenum"
	case specifier.CategoryFunction:
		return "ufunc"
	}
	return "u" + cat.String()
}

// Lookup answers a category-scoped lookup (uprop/uclass/uenum/ufunc).
func (h *Handler) Lookup(caller Caller, cat specifier.Category, name string) Reply {
	command := lookupCommandName(cat)
	rec, ok := h.registry.LookupExact(cat, name)
	if !ok {
		h.record(command, name, usage.OutcomeMiss, caller)
		return Reply{Content: notFound(name)}
	}
	h.record(command, name, usage.OutcomeHit, caller)
	card := render.Render(name, rec)
	return Reply{Card: &card}
}

// Suggest returns up to maxSuggestions completion candidates for prefix.
func (h *Handler) Suggest(prefix string) []string {
	names := h.registry.SuggestNames(prefix)
	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	return names
}

// Joke returns the named joke, or a random one when name is empty.
func (h *Handler) Joke(caller Caller, name string) Reply {
	if name == "" {
		jokeName, answer, ok, err := h.jokes.GetRandom()
		if err != nil {
			h.logger.Error("random joke failed", zap.Error(err))
			h.record("dad_joke", "", usage.OutcomeError, caller)
			return Reply{Content: MsgInternal, Ephemeral: true}
		}
		if !ok {
			h.record("dad_joke", "", usage.OutcomeMiss, caller)
			return Reply{Content: MsgNoJokes}
		}
		h.record("dad_joke", jokeName, usage.OutcomeHit, caller)
		return Reply{Content: fmt.Sprintf("**%s**\n%s", jokeName, answer)}
	}

	answer, ok, err := h.jokes.GetByName(name)
	if err != nil {
		h.logger.Error("joke lookup failed", zap.String("name", name), zap.Error(err))
		h.record("dad_joke", name, usage.OutcomeError, caller)
		return Reply{Content: MsgInternal, Ephemeral: true}
	}
	if !ok {
		h.record("dad_joke", name, usage.OutcomeMiss, caller)
		return Reply{Content: MsgJokeNotFound}
	}
	h.record("dad_joke", name, usage.OutcomeHit, caller)
	return Reply{Content: fmt.Sprintf("**%s**\n%s", name, answer)}
}

// AddJoke inserts a new joke. Gated.
func (h *Handler) AddJoke(caller Caller, name, answer string) Reply {
	if !auth.Authorized(caller.Roles, h.modRoles) {
		h.record("add_dad_joke", name, usage.OutcomeDenied, caller)
		return Reply{Content: MsgDenied, Ephemeral: true}
	}
	if err := h.jokes.Add(name, answer); err != nil {
		if errors.Is(err, jokes.ErrAlreadyExists) {
			h.record("add_dad_joke", name, usage.OutcomeError, caller)
			return Reply{Content: MsgJokeExists, Ephemeral: true}
		}
		h.logger.Error("joke add failed", zap.String("name", name), zap.Error(err))
		h.record("add_dad_joke", name, usage.OutcomeError, caller)
		return Reply{Content: MsgInternal, Ephemeral: true}
	}
	h.record("add_dad_joke", name, usage.OutcomeAccepted, caller)
	return Reply{Content: fmt.Sprintf("Added dad joke %q.", name)}
}

// DeleteJoke removes a joke. Gated.
func (h *Handler) DeleteJoke(caller Caller, name string) Reply {
	if !auth.Authorized(caller.Roles, h.modRoles) {
		h.record("delete_dad_joke", name, usage.OutcomeDenied, caller)
		return Reply{Content: MsgDenied, Ephemeral: true}
	}
	if err := h.jokes.Delete(name); err != nil {
		if errors.Is(err, jokes.ErrNotFound) {
			h.record("delete_dad_joke", name, usage.OutcomeError, caller)
			return Reply{Content: MsgJokeNotFound, Ephemeral: true}
		}
		h.logger.Error("joke delete failed", zap.String("name", name), zap.Error(err))
		h.record("delete_dad_joke", name, usage.OutcomeError, caller)
		return Reply{Content: MsgInternal, Ephemeral: true}
	}
	h.record("delete_dad_joke", name, usage.OutcomeAccepted, caller)
	return Reply{Content: fmt.Sprintf("Deleted dad joke %q.", name)}
}

// Sync reloads every catalog wholesale and reports the per-category
// outcome. Gated.
func (h *Handler) Sync(ctx context.Context, caller Caller) Reply {
	if !auth.Authorized(caller.Roles, h.modRoles) {
		h.record("sync", "", usage.OutcomeDenied, caller)
		return Reply{Content: MsgDenied, Ephemeral: true}
	}

	results := h.loader.LoadAll(ctx)
	counts := h.registry.Counts()

	cats := specifier.Categories()
	lines := make([]string, 0, len(cats)+1)
	lines = append(lines, "Catalog sync finished:")
	failed := false
	for _, cat := range cats {
		if err := results[cat]; err != nil {
			failed = true
			lines = append(lines, fmt.Sprintf("- %s: failed (%v)", cat, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %d specifiers", cat, counts[cat]))
	}

	outcome := usage.OutcomeAccepted
	if failed {
		outcome = usage.OutcomeError
	}
	h.record("sync", "", outcome, caller)
	return Reply{Content: strings.Join(lines, "\n")}
}

// Docs looks up a specifier and replies with a plain-text excerpt of its
// linked documentation page.
func (h *Handler) Docs(ctx context.Context, caller Caller, name string) Reply {
	_, rec, ok := h.registry.LookupAcrossAll(name)
	if !ok {
		h.record("docs", name, usage.OutcomeMiss, caller)
		return Reply{Content: notFound(name)}
	}
	if rec.Documentation == nil || rec.Documentation.Source == "" {
		h.record("docs", name, usage.OutcomeMiss, caller)
		return Reply{Content: render.NoSource}
	}

	excerpt, err := h.excerpts.Excerpt(ctx, rec.Documentation.Source)
	if err != nil {
		h.logger.Warn("docs excerpt failed",
			zap.String("name", name),
			zap.String("url", rec.Documentation.Source),
			zap.Error(err))
		h.record("docs", name, usage.OutcomeError, caller)
		return Reply{Content: fmt.Sprintf("Couldn't read the documentation page. Link: %s", rec.Documentation.Source)}
	}
	h.record("docs", name, usage.OutcomeHit, caller)
	return Reply{Content: fmt.Sprintf("**%s**\n%s\n\n<%s>", name, excerpt, rec.Documentation.Source)}
}

func (h *Handler) record(command, query, outcome string, caller Caller) {
	h.usage.Record(usage.Event{
		Command:  command,
		Query:    query,
		Outcome:  outcome,
		CallerID: caller.ID,
	})
}
