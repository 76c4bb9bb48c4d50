package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nijanthan/portfolio-cms/internal/config"
	"github.com/nijanthan/portfolio-cms/internal/content"
	"github.com/nijanthan/portfolio-cms/internal/github"
)

var pullToken string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the remote content document",
	Long:  `Fetch the content document from the GitHub repository and overwrite the bundled copy. Prints the blob SHA, which is the version token conditional publishes are checked against.`,
	RunE:  runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig()
	if err != nil {
		return err
	}
	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return fmt.Errorf("github_owner and github_repo must be configured")
	}

	token := pullToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("a GitHub token is required (--token or GITHUB_TOKEN)")
	}

	client := newRepoClient(cfg, token)

	file, err := client.GetFile(context.Background(), cfg.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", cfg.RepoPath, err)
	}

	doc, err := content.Decode(file.Content)
	if err != nil {
		return fmt.Errorf("remote document is not valid content: %w", err)
	}

	if err := doc.Save(cfg.ContentPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.ContentPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s at %s to %s\n", cfg.RepoPath, file.SHA, cfg.ContentPath)
	return nil
}

// newRepoClient builds a contents-API client for the configured
// repository.
func newRepoClient(cfg *config.Config, token string) *github.Client {
	var opts []github.Option
	if cfg.GitHubBaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHubBaseURL))
	}
	return github.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, token, opts...)
}
