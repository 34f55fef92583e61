package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/internal/ui"
	"github.com/nimbusctl/nimbus/pkg/api"
)

// stdinIsTerminal is a hook so tests can exercise the non-TTY path.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Launch a new instance",
	Long: `Submit launch parameters to the deployer backend.

With -i (or when name/key are missing on a terminal) an interactive form
opens. Instance type and AMI keep the values of the last successful deploy;
name and key always start empty.

Examples:
  nbs deploy -i
  nbs deploy --name web1 --key prod-key
  nbs deploy -n web1 -t t3.small --ami ami-0abc123 -k prod-key`,
	RunE: runDeployCmd,
}

var (
	deployName        string
	deployType        string
	deployAMI         string
	deployKey         string
	deployInteractive bool
)

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVarP(&deployName, "name", "n", "", "Instance name")
	deployCmd.Flags().StringVarP(&deployType, "type", "t", "", "Instance type")
	deployCmd.Flags().StringVar(&deployAMI, "ami", "", "AMI ID")
	deployCmd.Flags().StringVarP(&deployKey, "key", "k", "", "Key pair name")
	deployCmd.Flags().BoolVarP(&deployInteractive, "interactive", "i", false, "Interactive deploy form")
}

func runDeployCmd(cmd *cobra.Command, args []string) error {
	defaultType, defaultAMI := config.GetFormDefaults()
	if deployType != "" {
		defaultType = deployType
	}
	if deployAMI != "" {
		defaultAMI = deployAMI
	}

	var req api.DeployRequest

	if deployInteractive || deployName == "" || deployKey == "" {
		// The form needs a terminal; scripted invocations get a usage
		// error instead of a hung bubbletea program.
		if !stdinIsTerminal() {
			return fmt.Errorf("--name and --key are required when stdin is not a terminal")
		}
		formReq, err := ui.RunDeployForm(defaultType, defaultAMI)
		if errors.Is(err, ui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		req = *formReq
	} else {
		if defaultType == "" {
			defaultType = "t2.micro"
		}
		if defaultAMI == "" {
			defaultAMI = "ami-0c55b159cbfafe1f0"
		}
		req = api.DeployRequest{
			InstanceName: deployName,
			InstanceType: defaultType,
			AMIID:        defaultAMI,
			KeyName:      deployKey,
		}
	}

	return runDeploy(context.Background(), newClient(), req, os.Stdout)
}

// runDeploy issues exactly one create request and, on success, exactly one
// list reload. The backend error text is surfaced verbatim on failure.
func runDeploy(ctx context.Context, svc api.DeploymentService, req api.DeployRequest, out io.Writer) error {
	resp, err := svc.CreateDeployment(ctx, req)
	if err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	msg := resp.Message
	if msg == "" {
		msg = "Instance launch initiated"
	}
	fmt.Fprintln(out, ui.RunningStyle.Render("✓")+" "+msg)

	// Retain the chosen type/AMI for the next deploy; name and key are not kept
	if err := config.SaveFormDefaults(req.InstanceType, req.AMIID); err != nil {
		fmt.Fprintln(out, ui.MutedStyle.Render("  (could not save form defaults: "+err.Error()+")"))
	}

	deployments, err := svc.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("deployed, but failed to reload deployments: %w", err)
	}
	fmt.Fprint(out, ui.RenderDeploymentTable(deployments))

	return nil
}
