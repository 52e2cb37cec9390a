package cmd

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexio/internal/app"
	"github.com/abhisek/lexio/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexio",
	Short: "Adaptive vocabulary practice engine",
	Long:  "Lexio schedules and generates vocabulary practice tasks from your goals, resources and immersion content.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIO_DB env var)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed; 0 seeds from entropy")

	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEXIO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openApp wires the application for a command invocation.
func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	return app.New(dbPath, rng)
}
