package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/internal/ui"
)

var contextsCmd = &cobra.Command{
	Use:     "contexts",
	Aliases: []string{"ctx"},
	Short:   "List all configured contexts",
	Long: `List all configured backend contexts.

The current active context is marked with an asterisk (*).

Examples:
  nbs contexts
  nbs ctx`,
	RunE: runContexts,
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}

func runContexts(cmd *cobra.Command, args []string) error {
	contexts, current, err := config.ListContexts()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}

	if len(contexts) == 0 {
		fmt.Println("No contexts configured.")
		fmt.Println()
		fmt.Println("Add a context with:")
		fmt.Println("  nbs use add prod --endpoint https://deployer.example.com/api")
		return nil
	}

	// Sort context names
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	// Print header
	fmt.Println()
	fmt.Printf("  %-20s  %-42s  %-15s\n",
		ui.HeaderStyle.Render("CONTEXT"),
		ui.HeaderStyle.Render("ENDPOINT"),
		ui.HeaderStyle.Render("REGION"))
	fmt.Println(ui.MutedStyle.Render("  " + strings.Repeat("─", 75)))

	// Print contexts
	for _, name := range names {
		ctx := contexts[name]

		marker := "  "
		if name == current {
			marker = "* "
		}

		region := ctx.Region
		if region == "" {
			region = "-"
		}

		fmt.Printf("%s%-20s  %-42s  %-15s\n", marker, name, ctx.Endpoint, region)
	}
	fmt.Println()

	return nil
}
