/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/swan2flowdroid/core/config"
	"github.com/tristendillon/swan2flowdroid/core/converter"
	"github.com/tristendillon/swan2flowdroid/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "swan2flowdroid -i <swan.json> [-o <output.txt>]",
	Short: "Convert SWAN security-relevant methods to FlowDroid sources and sinks.",
	Long: `swan2flowdroid reads the JSON file produced by SWAN and writes every method
classified as a source, a sink or both in FlowDroid's SourcesAndSinks format:

  <com.example.Foo: boolean bar(java.lang.String)> -> _SOURCE_

Methods that are neither sources nor sinks are dropped. Entries that cannot be
read are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		return convert(cfg)
	},
}

var (
	cfgFile    string
	logfile    string
	verbose    bool
	inputPath  string
	outputPath string
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	addIOFlags(rootCmd)
}

func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default <input before first dot>.flowdroid.txt)")
	cmd.MarkFlagRequired("input")
}

// setup loads the config and applies logging options; flags win over the
// config file.
func setup() (*config.Config, func(), error) {
	logger.SetErrorWriter()
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	closer, err := logger.Configure(verbose || cfg.Logging.Verbose, firstNonEmpty(logfile, cfg.Logging.File))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if closer == nil {
			return
		}
		logger.SetPlainWriter(nil)
		closer.Close()
	}
	return cfg, cleanup, nil
}

func convert(cfg *config.Config) error {
	out, err := converter.ResolveOutput(inputPath, outputPath, cfg.Output.Suffix)
	if err != nil {
		return err
	}

	logger.Debug("Converting %s to %s", inputPath, out)
	stats, err := converter.ConvertFile(inputPath, out)
	if err != nil {
		return err
	}
	logger.Info("Wrote %s (%s)", out, stats)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
