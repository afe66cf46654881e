/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/swan2flowdroid/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of swan2flowdroid",
	Long:  `Displays the version of swan2flowdroid.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "swan2flowdroid %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
