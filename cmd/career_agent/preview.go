package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-wizard/internal/brand"
	"github.com/jonathan/career-wizard/internal/preview"
)

var (
	previewUseBrowser bool
	previewTimeout    time.Duration
)

var previewCmd = &cobra.Command{
	Use:   "preview URL",
	Short: "Fetch a link preview for a profile URL",
	Long:  `Fetches the page and prints its Open Graph title, description, and site name. With --use-browser, falls back to a headless browser for pages that render their metadata client-side.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewUseBrowser, "use-browser", false, "Use a headless browser fallback (requires Chrome)")
	previewCmd.Flags().DurationVar(&previewTimeout, "timeout", preview.DefaultTimeout, "Fetch timeout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	urlStr := args[0]

	opts := preview.DefaultOptions()
	opts.UseBrowser = previewUseBrowser
	opts.Timeout = previewTimeout

	ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
	defer cancel()

	p, err := preview.Fetch(ctx, urlStr, opts)
	if err != nil {
		return err
	}

	if platform, ok := brand.DetectPlatform(urlStr); ok {
		fmt.Printf("Platform:    %s\n", platform.DisplayName())
	}
	fmt.Printf("Title:       %s\n", p.Title)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if p.SiteName != "" {
		fmt.Printf("Site:        %s\n", p.SiteName)
	}
	return nil
}
