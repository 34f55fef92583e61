package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/ui"
	"github.com/nimbusctl/nimbus/pkg/api"
	"github.com/nimbusctl/nimbus/pkg/types"
)

var terminateCmd = &cobra.Command{
	Use:   "terminate <id>",
	Short: "Terminate a deployment's instance",
	Long: `Initiate provider-side teardown for one deployment.

Asks for confirmation unless --yes is given. Deployments already
terminating or terminated are left alone without contacting the backend.

Examples:
  nbs terminate 42
  nbs terminate 42 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runTerminateCmd,
}

var terminateYes bool

func init() {
	rootCmd.AddCommand(terminateCmd)

	terminateCmd.Flags().BoolVarP(&terminateYes, "yes", "y", false, "Skip confirmation")
}

func runTerminateCmd(cmd *cobra.Command, args []string) error {
	confirm := confirmTerminate
	if terminateYes {
		confirm = func(*types.Deployment) bool { return true }
	}

	return runTerminate(context.Background(), newClient(), args[0], confirm, os.Stdout)
}

// confirmTerminate prompts on the terminal before a destructive action.
func confirmTerminate(d *types.Deployment) bool {
	prompt := fmt.Sprintf("Terminate %s (%s)? This cannot be undone.",
		ui.NameStyle.Render(d.InstanceName), d.ID)
	return ui.Confirm(os.Stdout, os.Stdin, prompt)
}

// runTerminate terminates one deployment. No request is issued when the
// record is already in a terminal state or the confirmation is declined.
func runTerminate(ctx context.Context, svc api.DeploymentService, id string, confirm func(*types.Deployment) bool, out io.Writer) error {
	d, err := svc.GetDeployment(ctx, id)
	if err != nil {
		return fmt.Errorf("terminate failed: %w", err)
	}

	if !d.CanTerminate() {
		fmt.Fprintf(out, "Deployment %s is already %s\n", d.ID, d.Status)
		return nil
	}

	if !confirm(d) {
		fmt.Fprintln(out, "Aborted")
		return nil
	}

	resp, err := svc.TerminateDeployment(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("terminate failed: %w", err)
	}

	msg := resp.Message
	if msg == "" {
		msg = "Instance termination initiated"
	}
	fmt.Fprintln(out, ui.TerminatingStyle.Render("✓")+" "+msg)

	deployments, err := svc.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("terminated, but failed to reload deployments: %w", err)
	}
	fmt.Fprint(out, ui.RenderDeploymentTable(deployments))

	return nil
}
