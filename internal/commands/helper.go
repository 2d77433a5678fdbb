package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/osadchistudio/family-finance-sub001/internal/categories"
	"github.com/osadchistudio/family-finance-sub001/internal/categorize"
	"github.com/osadchistudio/family-finance-sub001/internal/config"
	"github.com/osadchistudio/family-finance-sub001/internal/gitops"
	"github.com/osadchistudio/family-finance-sub001/internal/ledger"
	"github.com/osadchistudio/family-finance-sub001/internal/logger"
	"github.com/osadchistudio/family-finance-sub001/internal/recurring"
	"github.com/osadchistudio/family-finance-sub001/internal/store"
)

// env holds the opened services for one command invocation.
type env struct {
	dir    string
	cfg    *config.Config
	ledger *ledger.Service
	cats   *categories.Service
	kw     *store.Store
	log    zerolog.Logger
}

// openEnv loads the data directory. Callers must close().
func openEnv(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%s is not a famfin directory (run famfin init): %w", absDir, err)
	}

	cats, err := categories.Load(absDir)
	if err != nil {
		return nil, err
	}

	kw, err := store.Open(filepath.Join(absDir, store.FileName))
	if err != nil {
		return nil, err
	}

	return &env{
		dir:    absDir,
		cfg:    cfg,
		ledger: ledger.NewService(absDir),
		cats:   cats,
		kw:     kw,
		log:    logger.New(),
	}, nil
}

func (e *env) close() {
	if e.kw != nil {
		_ = e.kw.Close()
	}
}

// keywordTable builds a fresh Table from the keyword store.
func (e *env) keywordTable() (*categorize.Table, error) {
	keywords, err := e.kw.CategoryKeywords()
	if err != nil {
		return nil, err
	}
	return categorize.NewTable(keywords, nil), nil
}

// recurringSet builds a fresh Set from the keyword store.
func (e *env) recurringSet() (*recurring.Set, error) {
	keywords, err := e.kw.RecurringKeywords()
	if err != nil {
		return nil, err
	}
	words := make([]string, len(keywords))
	for i, kw := range keywords {
		words[i] = kw.Keyword
	}
	return recurring.NewSet(words), nil
}

// categoryName resolves an ID for display, falling back to the ID.
func (e *env) categoryName(id string) string {
	if c, ok := e.cats.Get(id); ok {
		return c.Name
	}
	return id
}

// autoCommit commits the data directory when git auto-commit is on.
// Commit failure is logged, never fatal: the data change already
// happened.
func (e *env) autoCommit(message string) {
	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.dir) {
		return
	}
	if _, err := gitops.CommitAll(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
		e.log.Warn().Err(err).Msg("auto-commit failed")
	}
}
