package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nimbusctl/nimbus/internal/config"
	"github.com/nimbusctl/nimbus/pkg/api"
)

const defaultEndpoint = "http://localhost:8000"

var (
	// Global flags
	endpoint string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "nbs",
	Short: "Nimbus - terminal client for the EC2 deployer API",
	Long: `Nimbus is a command-line client for an EC2 deployer backend. It submits
launch parameters, lists deployments, and requests sync/terminate for
individual instances. All provisioning happens server-side; nimbus only
talks to the deployer API.

Deploy Commands:
  nbs deploy -i                  # Interactive deploy form
  nbs deploy -n web1 -k mykey    # Deploy with flags

Deployment Commands:
  nbs deployments                # List all deployments
  nbs deployments -i             # Interactive list with actions
  nbs sync <id>                  # Refresh one deployment from the provider
  nbs sync --all                 # Refresh every deployment
  nbs terminate <id>             # Terminate an instance

Context Commands:
  nbs use add prod --endpoint https://deployer.example.com/api
  nbs use prod                   # Switch backend
  nbs contexts                   # List configured backends
  nbs status                     # Current context and backend health`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "Deployer API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Bind flags to viper
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func initConfig() {
	// Migrate from the legacy single-endpoint format if needed
	_ = config.MigrateFromOldConfig() // ~/.nimbus/config.yaml → ~/.nimbus.yaml

	// Read from environment variables
	viper.SetEnvPrefix("NBS")
	viper.AutomaticEnv()

	// Priority for endpoint: --endpoint flag > current context > NBS_ENDPOINT env > default
	if endpoint == "" {
		if ctx, _, err := config.GetCurrentContext(); err == nil && ctx != nil {
			endpoint = ctx.Endpoint
		}
	}
	if endpoint == "" {
		endpoint = os.Getenv("NBS_ENDPOINT")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
}

// GetEndpoint returns the resolved deployer API endpoint
func GetEndpoint() string {
	return endpoint
}

// newClient builds an API client for the resolved endpoint.
func newClient() *api.Client {
	var opts []api.Option

	if verbose {
		logger := log.New(os.Stderr)
		logger.SetLevel(log.DebugLevel)
		opts = append(opts, api.WithLogger(logger))
	}

	if ctx, _, err := config.GetCurrentContext(); err == nil && ctx != nil && ctx.Timeout > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}

	return api.New(endpoint, opts...)
}
