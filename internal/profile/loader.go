package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/nextlevelcleaning/cards/internal/fetch"
	"github.com/nextlevelcleaning/cards/internal/schemas"
	"github.com/nextlevelcleaning/cards/internal/types"
	"go.uber.org/zap"
)

// Fetcher retrieves the body of a document. *fetch.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Loader.
type Options struct {
	Site Site
	// AllowFallback enables FallbackTable when every candidate fails.
	AllowFallback bool
	// StrictContent validates each document against the profile schema; an invalid document
	// counts as a failed candidate.
	StrictContent bool
	Logger        *zap.Logger
}

// Attempt records one candidate request.
type Attempt struct {
	URL        string
	StatusCode int
	Err        error
	Duration   time.Duration
}

// OK reports whether the attempt produced the record.
func (a Attempt) OK() bool {
	return a.Err == nil
}

// LoadReport describes how a record was obtained.
type LoadReport struct {
	Slug         string
	Attempts     []Attempt
	Source       string // URL the record came from; empty when the fallback table was used
	UsedFallback bool
}

// Loader resolves profile records for card pages.
type Loader struct {
	fetcher Fetcher
	opts    Options
	logger  *zap.Logger
}

// NewLoader creates a Loader reading documents through f.
func NewLoader(f Fetcher, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: f, opts: opts, logger: logger}
}

// Load fetches the record for slug, trying Candidates(pageURL, ...) in order. Requests are
// sequential and stop at the first success. When all fail the error is a *NotFoundError,
// unless fallback is enabled and the slug has a built-in record.
func (l *Loader) Load(ctx context.Context, pageURL *url.URL, slug string) (*types.ProfileRecord, *LoadReport, error) {
	if slug == "" {
		return nil, nil, fmt.Errorf("load profile: empty slug")
	}

	report := &LoadReport{Slug: slug}
	candidates := Candidates(pageURL, l.opts.Site, slug)

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, report, fmt.Errorf("load profile %q: %w", slug, err)
		}

		start := time.Now()
		rec, err := l.try(ctx, candidate)
		attempt := Attempt{URL: candidate, Err: err, Duration: time.Since(start)}
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			attempt.StatusCode = fetchErr.StatusCode
		}
		report.Attempts = append(report.Attempts, attempt)

		if err == nil {
			report.Source = candidate
			l.logger.Debug("profile loaded",
				zap.String("slug", slug),
				zap.String("url", candidate),
				zap.Int("attempt", i+1),
				zap.Int("candidates", len(candidates)))
			return rec, report, nil
		}

		l.logger.Debug("profile candidate failed",
			zap.String("slug", slug),
			zap.String("url", candidate),
			zap.Int("attempt", i+1),
			zap.Error(err))
	}

	if l.opts.AllowFallback {
		if rec, ok := fallbackFor(slug); ok {
			report.UsedFallback = true
			l.logger.Warn("using built-in fallback record",
				zap.String("slug", slug),
				zap.Int("attempts", len(report.Attempts)))
			return rec, report, nil
		}
	}

	l.logger.Error("profile not found",
		zap.String("slug", slug),
		zap.Strings("tried", candidates))
	return nil, report, &NotFoundError{Slug: slug, Attempts: report.Attempts}
}

func (l *Loader) try(ctx context.Context, candidate string) (*types.ProfileRecord, error) {
	body, err := l.fetcher.Fetch(ctx, candidate)
	if err != nil {
		return nil, err
	}

	rec, err := Decode(body)
	if err != nil {
		return nil, &DocumentError{URL: candidate, Message: "invalid JSON", Cause: err}
	}

	if l.opts.StrictContent {
		if err := schemas.ValidateProfile(body); err != nil {
			return nil, &DocumentError{URL: candidate, Message: "schema validation failed", Cause: err}
		}
	}
	return rec, nil
}

// Decode parses a profile document.
func Decode(body []byte) (*types.ProfileRecord, error) {
	var rec types.ProfileRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
