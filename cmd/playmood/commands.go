package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/api"
	"github.com/glebk/playmood/internal/bot"
	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/llm"
	"github.com/glebk/playmood/internal/repository/sqlite"
	"github.com/glebk/playmood/internal/seed"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create an empty database schema, dropping existing data",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Reset(cmd.Context()); err != nil {
			return err
		}
		logger.Info("database schema created")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with synthetic players, games and sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		catalog, err := seed.DefaultCatalog()
		if err != nil {
			return err
		}

		var client llm.Client
		if cfg.Seed.UseLLM {
			if client, err = newLLMClient(ctx, cfg, logger); err != nil {
				return err
			}
		}

		seeder := seed.New(
			sqlite.NewPlayerRepository(db),
			sqlite.NewGameRepository(db),
			sqlite.NewSessionRepository(db),
			catalog,
			client,
			seed.Options{
				Players:           cfg.Seed.Players,
				SessionsPerPlayer: cfg.Seed.SessionsPerPlayer,
				Concurrency:       cfg.Seed.Concurrency,
				RandomSeed:        cfg.Seed.RandomSeed,
			},
			logger,
		)

		summary, err := seeder.Run(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generated %d players, %d games, %d gaming sessions\n",
			summary.Players, summary.Games, summary.Sessions)
		fmt.Fprintln(out, "\nSessions by Game Genre:")
		for _, gc := range summary.ByGenre {
			fmt.Fprintf(out, "%s: %d sessions\n", gc.Genre, gc.Count)
		}
		fmt.Fprintln(out, "\nMental Health Transitions (Before -> After):")
		for _, tc := range summary.Transitions {
			fmt.Fprintf(out, "%s -> %s: %d instances\n", tc.Before, tc.After, tc.Count)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		server := api.NewServer(a.analysis, a.db, a.registry, logger)
		return server.Run(ctx, cfg.HTTPAddr)
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TelegramToken == "" {
			return errors.New("TELEGRAM_BOT_TOKEN is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		telegramBot, err := bot.New(cfg.TelegramToken, a.analysis, logger)
		if err != nil {
			return err
		}

		logger.Info("bot started, press Ctrl+C to stop")
		if err := telegramBot.Start(ctx); err != nil {
			return err
		}
		logger.Info("shutting down gracefully")
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <game name>",
	Short: "Print the analysis of one game as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		analysis, err := a.analysis.AnalyzeGame(ctx, args[0])
		if errors.Is(err, domain.ErrGameNotFound) {
			return fmt.Errorf("game '%s' not found", args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the game catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.analysis.ListGames(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		if len(names) == 0 {
			logger.Warn("no games found, run the seed command first", zap.String("db", cfg.DatabasePath))
		}
		return nil
	},
}

