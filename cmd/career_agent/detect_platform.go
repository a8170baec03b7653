package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-wizard/internal/brand"
)

var detectPlatformCmd = &cobra.Command{
	Use:   "detect-platform URL [URL...]",
	Short: "Detect the brand building platform for profile URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetectPlatform,
}

func init() {
	rootCmd.AddCommand(detectPlatformCmd)
}

func runDetectPlatform(_ *cobra.Command, args []string) error {
	for _, urlStr := range args {
		platform, ok := brand.DetectPlatform(urlStr)
		if !ok {
			fmt.Printf("%s: unsupported\n", urlStr)
			continue
		}
		fmt.Printf("%s: %s\n", urlStr, platform.DisplayName())
	}
	return nil
}
