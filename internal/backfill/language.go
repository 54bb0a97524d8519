package backfill

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// LanguageCandidate is a financer_user row without a language, joined with
// its user's locale.
type LanguageCandidate struct {
	PivotID    string
	UserLocale string
}

type LanguageStore interface {
	PivotsMissingLanguage(ctx context.Context, afterID string, limit int) ([]LanguageCandidate, error)
	SetPivotLanguage(ctx context.Context, pivotID, language string) error
}

type LanguageResult struct {
	Pages     int
	Processed int
	Updated   int
	Skipped   int
}

// LanguageBackfill copies the user's locale onto financer_user rows whose
// language is still null.
type LanguageBackfill struct {
	store LanguageStore
	cfg   config
}

func NewLanguageBackfill(store LanguageStore, opts ...Option) (*LanguageBackfill, error) {
	if store == nil {
		return nil, errors.New("language store is required")
	}
	return &LanguageBackfill{store: store, cfg: newConfig(opts)}, nil
}

func (b *LanguageBackfill) Run(ctx context.Context) (LanguageResult, error) {
	var (
		res    LanguageResult
		lastID string
	)
	for {
		if err := b.cfg.wait(ctx); err != nil {
			return res, err
		}
		page, err := b.store.PivotsMissingLanguage(ctx, lastID, b.cfg.pageSize)
		if err != nil {
			return res, errors.Wrapf(err, "load pivots after %q", lastID)
		}
		if len(page) == 0 {
			return res, nil
		}
		res.Pages++
		for _, c := range page {
			lastID = c.PivotID
			res.Processed++
			locale := strings.TrimSpace(c.UserLocale)
			if locale == "" {
				res.Skipped++
				continue
			}
			if err := b.store.SetPivotLanguage(ctx, c.PivotID, locale); err != nil {
				return res, errors.Wrapf(err, "set language on pivot %s", c.PivotID)
			}
			res.Updated++
		}
		b.cfg.reporter.Report(Progress{
			Job:       "financer_user_language",
			Page:      res.Pages,
			Processed: res.Processed,
			Changed:   res.Updated,
			Skipped:   res.Skipped,
			LastID:    lastID,
		})
		if len(page) < b.cfg.pageSize {
			return res, nil
		}
	}
}
