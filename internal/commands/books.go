package commands

import (
	"fmt"
	"path/filepath"

	"github.com/propbooks-dev/propbooks/internal/accounts"
	"github.com/propbooks-dev/propbooks/internal/catalog"
	"github.com/propbooks-dev/propbooks/internal/config"
	"github.com/propbooks-dev/propbooks/internal/contacts"
	"github.com/propbooks-dev/propbooks/internal/gitops"
	"github.com/propbooks-dev/propbooks/internal/receipt"
)

// books bundles the services of one opened books repository.
type books struct {
	dir      string
	cfg      *config.Config
	accounts *accounts.Service
	catalog  *catalog.Service
	contacts *contacts.Service
	receipts *receipt.Service
}

// openBooks loads the config and reference data of a books repository.
func openBooks(dir string) (*books, error) {
	absDir, err := resolveBooksDir(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(absDir, "propbooks.yaml"))
	if err != nil {
		return nil, fmt.Errorf("not a books repository (run propbooks init): %w", err)
	}

	accts, err := accounts.Load(absDir)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(absDir)
	if err != nil {
		return nil, err
	}
	people, err := contacts.Load(absDir)
	if err != nil {
		return nil, err
	}

	return &books{
		dir:      absDir,
		cfg:      cfg,
		accounts: accts,
		catalog:  cat,
		contacts: people,
		receipts: receipt.NewService(absDir, cat, accts, people),
	}, nil
}

// commit auto-commits the books repository when enabled in config.
func (b *books) commit(message string) {
	if !b.cfg.Git.AutoCommit {
		return
	}
	repo := gitops.NewRepo(b.dir, b.cfg.Git.AuthorName, b.cfg.Git.AuthorEmail)
	if !repo.IsRepo() {
		return
	}
	hash, err := repo.CommitAll(message)
	if err != nil {
		logger.Warn().Err(err).Msg("auto-commit failed")
		return
	}
	logger.Debug().Str("commit", hash).Msg("committed books")
}
