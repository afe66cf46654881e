/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/swan2flowdroid/core/logger"
	"github.com/tristendillon/swan2flowdroid/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch -i <swan.json> [-o <output.txt>]",
	Short: "Convert again every time the SWAN file changes",
	Long: `Converts the input once, then watches it and writes the FlowDroid file again
whenever its content changes. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := convert(cfg); err != nil {
			logger.Error("%v", err)
		}

		fw, err := watcher.NewFileWatcher(inputPath, cfg.Watch.Debounce(), func() error {
			return convert(cfg)
		})
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", inputPath, err)
		}
		defer fw.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fw.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addIOFlags(watchCmd)
}
