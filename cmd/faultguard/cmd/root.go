package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serverURL    string
	outputFormat string
	cfgFile      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "faultguard",
	Short: "CLI for the faultguard fault interception library",
	Long:  `faultguard is a command line interface for running and inspecting the faultguard ops server, which surfaces intercepted unwinds as structured errors, counters, and fault samples.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.faultguard/config)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "ops server URL (default from config or http://localhost:8085)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".faultguard/config" (without extension)
		configDir := filepath.Join(home, ".faultguard")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("faultguard")
	viper.AutomaticEnv() // read in environment variables that match

	// Bind specific environment variables
	viper.BindEnv("server_url", "FAULTGUARD_SERVER_URL")
	viper.BindEnv("listen_addr", "FAULTGUARD_LISTEN_ADDR")

	// Config file is optional; environment variables apply either way
	_ = viper.ReadInConfig()

	// Flag takes precedence, then config file / environment, then default
	if serverURL == "" {
		serverURL = viper.GetString("server_url")
	}
	if serverURL == "" {
		serverURL = "http://localhost:8085"
	}
}

// GetServerURL returns the configured ops server URL with trailing slashes removed
func GetServerURL() string {
	return strings.TrimRight(serverURL, "/")
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}
