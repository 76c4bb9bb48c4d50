package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nijanthan/portfolio-cms/internal/render"
)

var (
	snapshotURL string
	snapshotOut string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the served page to a PDF",
	Long:  `Render the portfolio page to a PDF via headless Chrome, producing the downloadable artifact the resume link points at.`,
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "", "Page URL (defaults to the configured site URL)")
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "portfolio.pdf", "Output PDF path")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig()
	if err != nil {
		return err
	}

	url := snapshotURL
	if url == "" {
		url = cfg.SiteURL
	}
	if url == "" {
		return fmt.Errorf("a page URL is required (--url or site_url config)")
	}

	pdf, err := render.Snapshot(context.Background(), url, cfg.ChromePath)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	if err := os.WriteFile(snapshotOut, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", snapshotOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", snapshotOut, len(pdf))
	return nil
}
