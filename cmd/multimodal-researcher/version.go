package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of multimodal-researcher",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("multimodal-researcher %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
