package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

var (
	publishToken   string
	publishMessage string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the bundled content document",
	Long:  `Publish the bundled content document to the GitHub repository. Fetches the current version token first and writes conditioned on it, so a concurrent edit is reported as a conflict instead of overwritten.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	publishCmd.Flags().StringVar(&publishMessage, "message", "", "Commit message")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig()
	if err != nil {
		return err
	}
	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return fmt.Errorf("github_owner and github_repo must be configured")
	}

	token := publishToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("a GitHub token is required (--token or GITHUB_TOKEN)")
	}

	doc, err := content.Load(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.ContentPath, err)
	}
	data, err := doc.Canonical()
	if err != nil {
		return err
	}

	client := newRepoClient(cfg, token)
	ctx := context.Background()

	current, err := client.GetFile(ctx, cfg.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to fetch current version: %w", err)
	}

	updated, err := client.PutFile(ctx, cfg.RepoPath, data, current.SHA, publishMessage)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %s at %s\n", cfg.RepoPath, updated.SHA)
	return nil
}
