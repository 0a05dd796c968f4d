package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benbot/benbot/pkg/bot"
	"github.com/benbot/benbot/pkg/catalog"
	"github.com/benbot/benbot/pkg/config"
	"github.com/benbot/benbot/pkg/docs"
	"github.com/benbot/benbot/pkg/jokes"
	"github.com/benbot/benbot/pkg/render"
	"github.com/benbot/benbot/pkg/specifier"
	"github.com/benbot/benbot/pkg/usage"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "benbot",
	Short: "BenBot - Unreal Engine specifier lookup bot",
	Long: `BenBot answers lookup queries about Unreal Engine specifiers
(UPROPERTY/UCLASS/UENUM/UFUNCTION) from the UE-Specifier-Docs catalogs,
and keeps a small store of dad jokes on the side.

Run "benbot run" to start the Discord bot, or use the offline
subcommands (lookup, suggest, sync, joke, stats) without a token.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		cfg = config.Load()
		if verbose || cfg.Debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Discord bot",
	RunE:  runBot,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [name]",
	Short: "Look up a specifier across all categories and print its card",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Print name completions for a prefix (all names when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSuggest,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch every catalog once and report per-category results",
	RunE:  runSync,
}

var jokeCmd = &cobra.Command{
	Use:   "joke [name]",
	Short: "Print a dad joke, random or by name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJoke,
}

var jokeAddCmd = &cobra.Command{
	Use:   "add [name] [answer]",
	Short: "Store a new dad joke",
	Args:  cobra.ExactArgs(2),
	RunE:  runJokeAdd,
}

var jokeDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored dad joke",
	Args:  cobra.ExactArgs(1),
	RunE:  runJokeDelete,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print usage counts per command and the most-missed queries",
	RunE:  runStats,
}

var lookupCategory string

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	lookupCmd.Flags().StringVarP(&lookupCategory, "category", "c", "",
		"restrict to one category (property, class, enum, function)")

	jokeCmd.AddCommand(jokeAddCmd, jokeDeleteCmd)
	rootCmd.AddCommand(runCmd, lookupCmd, suggestCmd, syncCmd, jokeCmd, statsCmd)
}

// loadRegistry fetches all four catalogs and returns the populated
// registry. Failed categories are logged and left not-loaded.
func loadRegistry(ctx context.Context) (*specifier.Registry, *catalog.Loader) {
	registry := specifier.NewRegistry(logger)
	loader := catalog.NewLoader(catalog.NewClient(cfg.CatalogBaseURL, logger), registry, logger)
	loader.LoadAll(ctx)
	return registry, loader
}

func runBot(cmd *cobra.Command, args []string) error {
	if cfg.Token == "" {
		return fmt.Errorf("BENBOT_TOKEN is not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry, loader := loadRegistry(ctx)

	db, err := usage.Open(cfg.UsageDBPath)
	if err != nil {
		return fmt.Errorf("open usage db: %w", err)
	}
	defer db.Close()

	excerpts, err := docs.NewExcerpter(logger)
	if err != nil {
		return fmt.Errorf("init docs excerpter: %w", err)
	}

	handler := bot.NewHandler(
		registry,
		loader,
		jokes.NewStore(cfg.JokesPath),
		excerpts,
		usage.NewRecorder(db, logger),
		cfg.ModeratorRoles,
		logger,
	)

	b, err := bot.New(cfg.Token, cfg.GuildID, handler, logger)
	if err != nil {
		return err
	}
	if err := b.Start(ctx); err != nil {
		return err
	}
	defer b.Close()

	logger.Info("bot running, press ctrl-c to exit")
	<-ctx.Done()
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	registry, _ := loadRegistry(ctx)
	name := args[0]

	var (
		rec specifier.Record
		ok  bool
	)
	if lookupCategory != "" {
		cat := specifier.Category(strings.ToLower(lookupCategory))
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", lookupCategory)
		}
		rec, ok = registry.LookupExact(cat, name)
	} else {
		_, rec, ok = registry.LookupAcrossAll(name)
	}
	if !ok {
		fmt.Printf("No specifier named %q was found.\n", name)
		return nil
	}
	fmt.Println(render.Render(name, rec).Text())
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	registry, _ := loadRegistry(cmd.Context())
	for _, n := range registry.SuggestNames(prefix) {
		fmt.Println(n)
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	registry, _ := loadRegistry(cmd.Context())
	counts := registry.Counts()
	for _, cat := range specifier.Categories() {
		if n, ok := counts[cat]; ok {
			fmt.Printf("%s: %d specifiers\n", cat, n)
		} else {
			fmt.Printf("%s: not loaded\n", cat)
		}
	}
	return nil
}

func runJoke(cmd *cobra.Command, args []string) error {
	store := jokes.NewStore(cfg.JokesPath)
	if len(args) == 1 {
		answer, ok, err := store.GetByName(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No dad joke with that name.")
			return nil
		}
		fmt.Printf("%s\n%s\n", args[0], answer)
		return nil
	}

	name, answer, ok, err := store.GetRandom()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No dad jokes stored yet.")
		return nil
	}
	fmt.Printf("%s\n%s\n", name, answer)
	return nil
}

func runJokeAdd(cmd *cobra.Command, args []string) error {
	if err := jokes.NewStore(cfg.JokesPath).Add(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Added dad joke %q.\n", args[0])
	return nil
}

func runJokeDelete(cmd *cobra.Command, args []string) error {
	if err := jokes.NewStore(cfg.JokesPath).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted dad joke %q.\n", args[0])
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := usage.Open(cfg.UsageDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	recorder := usage.NewRecorder(db, logger)
	counts, err := recorder.CommandCounts()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No usage recorded yet.")
		return nil
	}
	for command, n := range counts {
		fmt.Printf("%s: %d\n", command, n)
	}

	missed, err := recorder.MissedQueries(10)
	if err != nil {
		return err
	}
	if len(missed) > 0 {
		fmt.Println("\nMost-missed queries:")
		for _, q := range missed {
			fmt.Printf("  %s\n", q)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
