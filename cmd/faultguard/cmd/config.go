package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configShowFormat string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Commands for inspecting the effective faultguard configuration.`,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Prints the configuration the CLI resolved from flags, the config file
and environment variables, in the order of that precedence.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().StringVarP(&configShowFormat, "format", "f", "yaml", "Output format: yaml, json")
}

type effectiveConfig struct {
	ServerURL  string `json:"server_url" yaml:"server_url"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	RecentSize int    `json:"recent_size" yaml:"recent_size"`
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig{
		ServerURL:  GetServerURL(),
		ListenAddr: viper.GetString("listen_addr"),
		RecentSize: viper.GetInt("recent_size"),
		ConfigFile: viper.ConfigFileUsed(),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8085"
	}
	if cfg.RecentSize <= 0 {
		cfg.RecentSize = 50
	}

	switch configShowFormat {
	case "json":
		output, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
	case "yaml":
		output, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(output))
	default:
		return fmt.Errorf("unknown format: %s (expected yaml or json)", configShowFormat)
	}

	return nil
}
