package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Context represents one deployer backend configuration
type Context struct {
	Endpoint string `yaml:"endpoint"`          // Backend base URL
	Region   string `yaml:"region,omitempty"`  // Region the backend deploys into (informational)
	Timeout  int    `yaml:"timeout,omitempty"` // Request timeout in seconds
}

// Defaults represents default settings
type Defaults struct {
	Output       string `yaml:"output,omitempty"`        // table, json
	InstanceType string `yaml:"instance_type,omitempty"` // Pre-filled form instance type
	AMIID        string `yaml:"ami_id,omitempty"`        // Pre-filled form AMI
}

// NimbusConfig represents the main configuration file (~/.nimbus.yaml)
type NimbusConfig struct {
	CurrentContext string              `yaml:"current_context,omitempty"`
	Contexts       map[string]*Context `yaml:"contexts,omitempty"`
	Defaults       *Defaults           `yaml:"defaults,omitempty"`
}

// GetNimbusConfigPath returns the config file path. NBS_CONFIG overrides
// the default ~/.nimbus.yaml.
func GetNimbusConfigPath() string {
	if p := os.Getenv("NBS_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nimbus.yaml"
	}
	return filepath.Join(home, ".nimbus.yaml")
}

// LoadNimbusConfig loads the configuration from ~/.nimbus.yaml
func LoadNimbusConfig() (*NimbusConfig, error) {
	configPath := GetNimbusConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return &NimbusConfig{
				Contexts: make(map[string]*Context),
				Defaults: &Defaults{Output: "table"},
			}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg NimbusConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Initialize maps if nil
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = &Defaults{Output: "table"}
	}

	return &cfg, nil
}

// SaveNimbusConfig saves the configuration to ~/.nimbus.yaml
func SaveNimbusConfig(cfg *NimbusConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := GetNimbusConfigPath()
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetCurrentContext returns the current active context
func GetCurrentContext() (*Context, string, error) {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return nil, "", err
	}

	if cfg.CurrentContext == "" {
		return nil, "", nil
	}

	ctx, ok := cfg.Contexts[cfg.CurrentContext]
	if !ok {
		return nil, "", fmt.Errorf("context %q not found", cfg.CurrentContext)
	}

	return ctx, cfg.CurrentContext, nil
}

// SetCurrentContext sets the current active context
func SetCurrentContext(name string) error {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return err
	}

	// Validate context exists
	if _, ok := cfg.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}

	cfg.CurrentContext = name
	return SaveNimbusConfig(cfg)
}

// AddContext adds or updates a context
func AddContext(name string, ctx *Context) error {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return err
	}

	cfg.Contexts[name] = ctx
	return SaveNimbusConfig(cfg)
}

// DeleteContext removes a context
func DeleteContext(name string) error {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return err
	}

	delete(cfg.Contexts, name)

	// Clear current context if it was the deleted one
	if cfg.CurrentContext == name {
		cfg.CurrentContext = ""
	}

	return SaveNimbusConfig(cfg)
}

// ListContexts returns all configured contexts
func ListContexts() (map[string]*Context, string, error) {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return nil, "", err
	}

	return cfg.Contexts, cfg.CurrentContext, nil
}

// SaveFormDefaults persists the last successfully deployed instance type
// and AMI so the next deploy form starts from them. Name and key are never
// retained.
func SaveFormDefaults(instanceType, amiID string) error {
	cfg, err := LoadNimbusConfig()
	if err != nil {
		return err
	}

	if cfg.Defaults == nil {
		cfg.Defaults = &Defaults{Output: "table"}
	}
	cfg.Defaults.InstanceType = instanceType
	cfg.Defaults.AMIID = amiID

	return SaveNimbusConfig(cfg)
}

// GetFormDefaults returns the saved form defaults, if any.
func GetFormDefaults() (instanceType, amiID string) {
	cfg, err := LoadNimbusConfig()
	if err != nil || cfg.Defaults == nil {
		return "", ""
	}
	return cfg.Defaults.InstanceType, cfg.Defaults.AMIID
}

// MigrateFromOldConfig migrates from the legacy single-endpoint config
// format to the context-based one
func MigrateFromOldConfig() error {
	oldCfg, err := LoadConfig()
	if err != nil {
		return nil // No old config to migrate
	}

	// Check if old config has any data
	if oldCfg.Endpoint == "" {
		return nil
	}

	// Load or create new config
	newCfg, err := LoadNimbusConfig()
	if err != nil {
		newCfg = &NimbusConfig{
			Contexts: make(map[string]*Context),
			Defaults: &Defaults{Output: "table"},
		}
	}

	// Create a context from the old config
	contextName := "default"
	if _, exists := newCfg.Contexts[contextName]; !exists {
		newCfg.Contexts[contextName] = &Context{
			Endpoint: oldCfg.Endpoint,
			Region:   oldCfg.Region,
		}

		// Set as current if no current context
		if newCfg.CurrentContext == "" {
			newCfg.CurrentContext = contextName
		}
	}

	return SaveNimbusConfig(newCfg)
}
