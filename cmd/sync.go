package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nimbusctl/nimbus/internal/ui"
	"github.com/nimbusctl/nimbus/pkg/api"
)

// Upper bound on in-flight sync requests during --all. Each item's outcome
// stays independent; the bound only keeps N loaded items from opening N
// sockets at once.
const syncConcurrency = 8

var syncCmd = &cobra.Command{
	Use:   "sync [id]",
	Short: "Refresh deployment state from the provider",
	Long: `Ask the backend to re-read one deployment's live provider state.

With --all, every loaded deployment gets its own sync request. Failures are
reported per item and never stop the remaining syncs.

Examples:
  nbs sync 42
  nbs sync --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

var syncAll bool

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every deployment")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient()

	if syncAll {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --all with a deployment ID")
		}
		return runSyncAll(ctx, client, os.Stdout)
	}

	if len(args) == 0 {
		return fmt.Errorf("deployment ID required (or use --all)")
	}

	return runSyncOne(ctx, client, args[0], os.Stdout)
}

// runSyncOne refreshes a single deployment and prints the updated record.
func runSyncOne(ctx context.Context, svc api.DeploymentService, id string, out io.Writer) error {
	d, err := svc.SyncDeployment(ctx, id)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintln(out, ui.RunningStyle.Render("✓")+" Synced deployment "+d.ID)
	fmt.Fprint(out, ui.RenderDeploymentDetails(d))

	return nil
}

// runSyncAll loads the list once, then issues one sync request per loaded
// item. Outcomes are independent: a failed sync is reported and the rest
// continue.
func runSyncAll(ctx context.Context, svc api.DeploymentService, out io.Writer) error {
	deployments, err := svc.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deployments: %w", err)
	}

	if len(deployments) == 0 {
		fmt.Fprintln(out, "No deployments to sync")
		return nil
	}

	results := make([]error, len(deployments))

	var g errgroup.Group
	g.SetLimit(syncConcurrency)
	for i, d := range deployments {
		g.Go(func() error {
			_, results[i] = svc.SyncDeployment(ctx, d.ID)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, d := range deployments {
		if results[i] != nil {
			failed++
			fmt.Fprintf(out, "  %s %s (%s): %v\n",
				ui.ErrorStyle.Render("✗"), d.InstanceName, d.ID, results[i])
		} else {
			fmt.Fprintf(out, "  %s %s (%s)\n",
				ui.RunningStyle.Render("✓"), d.InstanceName, d.ID)
		}
	}
	fmt.Fprintf(out, "Synced %d/%d deployments\n", len(deployments)-failed, len(deployments))

	// Full refresh after the fan-out so the table reflects all updates
	refreshed, err := svc.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload deployments: %w", err)
	}
	fmt.Fprint(out, ui.RenderDeploymentTable(refreshed))

	return nil
}
