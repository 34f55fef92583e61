package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/internal/ui"
)

var deploymentsCmd = &cobra.Command{
	Use:     "deployments",
	Aliases: []string{"ls", "list"},
	Short:   "List deployments",
	Long: `List all deployments known to the backend.

The list is always a full refresh; nothing is cached client-side.

Examples:
  nbs deployments                # Styled table
  nbs deployments -i             # Interactive selector with actions
  nbs deployments get 42         # Single deployment details`,
	RunE: runDeployments,
}

var deploymentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get deployment details",
	Long: `Get detailed information about a single deployment.

Examples:
  nbs deployments get 42`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploymentsGet,
}

var (
	deploymentsInteractive bool
	deploymentsOutput      string
)

func init() {
	rootCmd.AddCommand(deploymentsCmd)
	deploymentsCmd.AddCommand(deploymentsGetCmd)

	deploymentsCmd.Flags().BoolVarP(&deploymentsInteractive, "interactive", "i", false, "Interactive selection mode")
	deploymentsCmd.Flags().StringVarP(&deploymentsOutput, "output", "o", "", "Output format (table, json)")
}

func runDeployments(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient()

	deployments, err := client.ListDeployments(ctx)
	if err != nil {
		return err
	}

	if len(deployments) == 0 {
		fmt.Println("No deployments found")
		return nil
	}

	if deploymentsInteractive {
		d, action, err := ui.SelectDeployment(deployments)
		if errors.Is(err, ui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		switch action {
		case ui.DeploymentActionDetails:
			fmt.Print(ui.RenderDeploymentDetails(d))
			return nil
		case ui.DeploymentActionSync:
			return runSyncOne(ctx, client, d.ID, os.Stdout)
		case ui.DeploymentActionTerminate:
			return runTerminate(ctx, client, d.ID, confirmTerminate, os.Stdout)
		}
		return nil
	}

	output := deploymentsOutput
	if output == "" {
		if cfg, err := config.LoadNimbusConfig(); err == nil && cfg.Defaults != nil {
			output = cfg.Defaults.Output
		}
	}

	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(deployments)
	}

	fmt.Print(ui.RenderDeploymentTable(deployments))

	return nil
}

func runDeploymentsGet(cmd *cobra.Command, args []string) error {
	client := newClient()

	d, err := client.GetDeployment(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderDeploymentDetails(d))
	return nil
}
