package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/accounts"
	"github.com/propbooks-dev/propbooks/internal/catalog"
	"github.com/propbooks-dev/propbooks/internal/config"
	"github.com/propbooks-dev/propbooks/internal/contacts"
	"github.com/propbooks-dev/propbooks/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := resolveBooksDir(dir)
			if err != nil {
				return err
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "property name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	dirs := []string{
		"accounts",
		"catalog",
		"contacts",
		"readings",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, "propbooks.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(accounts.DefaultChart()).Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := catalog.NewService(catalog.DefaultCatalog()).Save(dir); err != nil {
		return fmt.Errorf("writing item catalog: %w", err)
	}

	if err := contacts.NewService(nil, nil).Save(dir); err != nil {
		return fmt.Errorf("writing contacts: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	repo := gitops.NewRepo(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err := repo.Init(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := repo.CommitAll("init: Initialize books for " + name)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	logger.Info().Str("dir", dir).Str("commit", hash).Msg("initialized books repository")
	fmt.Printf("Initialized books for %s at %s (%s)\n", name, dir, hash)
	return nil
}
