package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current context and backend health",
	Long: `Display the current active context and probe the deployer backend's
health endpoint.

Examples:
  nbs status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, ctxName, err := config.GetCurrentContext()
	if err != nil {
		return fmt.Errorf("failed to get current context: %w", err)
	}

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if ctx == nil {
		fmt.Println("Context:  " + ui.MutedStyle.Render("(not set)"))
	} else {
		fmt.Printf("Context:  %s\n", ui.HeaderStyle.Render(ctxName))
		if ctx.Region != "" {
			fmt.Printf("Region:   %s\n", ctx.Region)
		}
	}
	fmt.Printf("Endpoint: %s\n", ui.NameStyle.Render(GetEndpoint()))
	fmt.Println()

	// Probe the backend
	fmt.Print("Backend:  ")
	health, err := newClient().Health(context.Background())
	if err != nil {
		fmt.Println(ui.ErrorStyle.Render("✗ Unreachable"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		return nil
	}

	fmt.Println(ui.RunningStyle.Render("✓ " + health.Status))
	if health.Database != "" {
		fmt.Printf("Database: %s\n", health.Database)
	}

	if ctx == nil {
		fmt.Println()
		fmt.Println("No context configured. Add one with:")
		fmt.Println("  nbs use add prod --endpoint https://deployer.example.com/api")
		fmt.Println("  nbs use prod")
	}

	return nil
}
