package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbusctl/nimbus/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use <context-name>",
	Short: "Set the active context",
	Long: `Set the active deployer backend for subsequent commands.

Once set, all commands talk to that backend without needing --endpoint.

Examples:
  nbs use prod              # Switch to the production backend
  nbs use local             # Switch to a local backend`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

var useAddCmd = &cobra.Command{
	Use:   "add <context-name>",
	Short: "Add a new context",
	Long: `Add a new backend context.

Examples:
  nbs use add prod --endpoint https://deployer.example.com/api --region us-east-1
  nbs use add local --endpoint http://localhost:8000 --timeout 10`,
	Args: cobra.ExactArgs(1),
	RunE: runUseAdd,
}

var useDeleteCmd = &cobra.Command{
	Use:   "delete <context-name>",
	Short: "Delete a context",
	Long: `Delete a backend context.

Examples:
  nbs use delete old-env`,
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm", "remove"},
	RunE:    runUseDelete,
}

var (
	// Flags for use add
	useAddEndpoint string
	useAddRegion   string
	useAddTimeout  int
)

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.AddCommand(useAddCmd)
	useCmd.AddCommand(useDeleteCmd)

	useAddCmd.Flags().StringVar(&useAddEndpoint, "endpoint", "", "Deployer API base URL")
	useAddCmd.Flags().StringVar(&useAddRegion, "region", "", "Region the backend deploys into")
	useAddCmd.Flags().IntVar(&useAddTimeout, "timeout", 0, "Request timeout in seconds")
	_ = useAddCmd.MarkFlagRequired("endpoint")
}

func runUse(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	if err := config.SetCurrentContext(contextName); err != nil {
		// If context doesn't exist, show helpful message
		contexts, current, listErr := config.ListContexts()
		if listErr != nil {
			return err
		}

		fmt.Printf("Context %q not found.\n\n", contextName)

		if len(contexts) == 0 {
			fmt.Println("No contexts configured. Add one with:")
			fmt.Println("  nbs use add prod --endpoint https://deployer.example.com/api")
		} else {
			fmt.Println("Available contexts:")
			for name := range contexts {
				marker := "  "
				if name == current {
					marker = "* "
				}
				fmt.Printf("  %s%s\n", marker, name)
			}
		}
		return nil
	}

	ctx, _, err := config.GetCurrentContext()
	if err != nil {
		return err
	}

	fmt.Printf("Switched to context: %s\n", contextName)
	fmt.Printf("  Endpoint: %s\n", ctx.Endpoint)
	if ctx.Region != "" {
		fmt.Printf("  Region:   %s\n", ctx.Region)
	}

	return nil
}

func runUseAdd(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	ctx := &config.Context{
		Endpoint: useAddEndpoint,
		Region:   useAddRegion,
		Timeout:  useAddTimeout,
	}

	if err := config.AddContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to add context: %w", err)
	}

	fmt.Printf("Added context: %s\n", contextName)
	fmt.Printf("  Endpoint: %s\n", ctx.Endpoint)
	if ctx.Region != "" {
		fmt.Printf("  Region:   %s\n", ctx.Region)
	}
	fmt.Println()
	fmt.Printf("Switch to it with: nbs use %s\n", contextName)

	return nil
}

func runUseDelete(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	if err := config.DeleteContext(contextName); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Printf("Deleted context: %s\n", contextName)
	return nil
}
