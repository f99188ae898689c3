package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gammageek/wishlist/internal/config"
	"github.com/gammageek/wishlist/internal/storage"
	"github.com/gammageek/wishlist/internal/storage/memory"
	"github.com/gammageek/wishlist/internal/storage/sqlite"
	"github.com/gammageek/wishlist/pkg/logging"
)

var cfg *config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Gift exchange organizer backend",
	Long: `Serves the gift exchange organizer API.

Group, membership and wishlist exports are read from DATA_DIR at every login.
Each login works on its own copy; nothing is written back to the exports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Setup(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// storeFactory returns the per-session store constructor for the configured backend.
func storeFactory(backend string) storage.Factory {
	if backend == config.BackendSQLite {
		return sqlite.Factory()
	}
	return memory.Factory()
}
