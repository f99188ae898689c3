package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/session"
	"github.com/gammageek/wishlist/internal/views"
)

var (
	summaryEmail   string
	summaryDataDir string
	summaryJSON    bool
)

// summaryCmd prints a user's dashboard straight from the exports.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a user's dashboard from the exports",
	Long: `Loads the exports the way a login does and prints the dashboard of
the given user: counts, recent items and groups, and rejected rows.`,
	Example: `  wishlist summary --email alice@example.com --data ./data`,
	RunE:    runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryEmail, "email", "", "User email (required)")
	summaryCmd.Flags().StringVar(&summaryDataDir, "data", "", "Export directory (default: DATA_DIR)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print the dashboard as JSON")
	summaryCmd.MarkFlagRequired("email")
}

func runSummary(cmd *cobra.Command, args []string) error {
	dir := summaryDataDir
	if dir == "" {
		dir = cfg.DataDir
	}

	identity := models.Identity{
		Email:      summaryEmail,
		FullName:   auth.DisplayName(summaryEmail),
		AuthMethod: models.AuthMethodEmail,
	}

	sessions := session.NewManager(session.DirSource(dir), storeFactory(cfg.StorageBackend), slog.Default())
	defer sessions.CloseAll()

	sess, err := sessions.Open(cmd.Context(), identity)
	if err != nil {
		return err
	}

	data, err := sess.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	dashboard := views.BuildDashboard(data, identity, sess.DataLoaded)

	out := cmd.OutOrStdout()
	if summaryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard)
	}

	printDashboard(out, dashboard, sess)
	return nil
}

func printDashboard(w io.Writer, d views.Dashboard, sess *session.Session) {
	fmt.Fprintf(w, "Dashboard for %s <%s>\n", d.Identity.FullName, d.Identity.Email)
	if !d.DataLoaded {
		fmt.Fprintln(w, "No data loaded.")
		return
	}

	fmt.Fprintf(w, "  Wishlist items: %d\n", d.MyItemCount)
	fmt.Fprintf(w, "  Groups:         %d\n", d.MyGroupCount)
	fmt.Fprintf(w, "  Items claimed:  %d\n", d.ItemsClaimed)

	if len(d.RecentItems) > 0 {
		fmt.Fprintln(w, "\nRecent items:")
		for _, item := range d.RecentItems {
			fmt.Fprintf(w, "  - %s (%s, %s)\n", item.Name, item.PriceRange, item.Priority)
		}
	}
	if len(d.RecentGroups) > 0 {
		fmt.Fprintln(w, "\nRecent groups:")
		for _, g := range d.RecentGroups {
			fmt.Fprintf(w, "  - %s [%s]\n", g.Name, g.InviteCode)
		}
	}

	if sess.Report != nil && len(sess.Report.Rejected) > 0 {
		fmt.Fprintf(w, "\nRejected rows: %d\n", len(sess.Report.Rejected))
		for _, r := range sess.Report.Rejected {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
}
