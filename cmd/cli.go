package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/neuragicus/spectrum-api/internal/config"
	"github.com/neuragicus/spectrum-api/pkg/build"
)

// ParseArgs builds the runtime configuration from the config file (if any),
// environment overrides and command line flags, flags winning. The returned
// Config carries the selected one-off command, or an empty Command when the
// service should serve.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()

	var (
		configPath string
		port       int
		logLevel   string
		verbose    bool
	)
	options := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			// Flags beat file and environment, but only when actually set.
			flags := cmd.Root().PersistentFlags()
			if flags.Changed("port") {
				loaded.Server.Port = port
			}
			if flags.Changed("log-level") {
				loaded.LogLevel = logLevel
			}
			if verbose {
				loaded.Debug = true
				loaded.LogLevel = "debug"
			}
			*options = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Command = "serve"
			return nil
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// One-shot analysis of WAV files, no server involved.
	wavCmd := &cobra.Command{
		Use:   "wav <file>...",
		Short: "Analyze the spectrum of one or more WAV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Command = "wav"
			options.CommandArgs = args
			return nil
		},
	}
	rootCmd.AddCommand(wavCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "version"
		},
	}
	rootCmd.AddCommand(versionCmd)

	// Service Configuration
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", config.DefaultConfig,
		"Path to YAML configuration file")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", config.DefaultPort,
		"HTTP listen port")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", config.DefaultLogLevel,
		"Logging level (debug, info, warn, error)")

	// Debug Configuration
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	// Execute the CLI
	rootCmd.SetArgs(os.Args[1:])
	err := rootCmd.Execute()
	if err != nil {
		return nil, err
	}

	return options, nil
}
