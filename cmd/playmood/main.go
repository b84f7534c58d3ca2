package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/config"
	"github.com/glebk/playmood/internal/observability"
)

var (
	v      = viper.New()
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "playmood",
	Short: "Analyze how games affect players' mental health",
	Long: `playmood stores gaming sessions with each player's mood before and after
playing, and turns them into per-game mental health analyses served over
HTTP, Telegram and the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = observability.NewLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db", "./playmood.db", "Path to the SQLite database")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	serveCmd.Flags().String("addr", ":8000", "HTTP listen address")
	_ = v.BindPFlag("http_addr", serveCmd.Flags().Lookup("addr"))

	seedCmd.Flags().Int("players", 50, "Number of players to generate")
	seedCmd.Flags().Int("sessions", 5, "Sessions per player")
	seedCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
	seedCmd.Flags().Bool("llm", false, "Predict session outcomes with the text generation service")
	_ = v.BindPFlag("seed_players", seedCmd.Flags().Lookup("players"))
	_ = v.BindPFlag("seed_sessions_per_player", seedCmd.Flags().Lookup("sessions"))
	_ = v.BindPFlag("seed_random_seed", seedCmd.Flags().Lookup("seed"))
	_ = v.BindPFlag("seed_use_llm", seedCmd.Flags().Lookup("llm"))

	rootCmd.AddCommand(setupCmd, seedCmd, serveCmd, botCmd, analyzeCmd, gamesCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
