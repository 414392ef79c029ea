// Package session holds the state of one card page view: its identity, the loaded record and
// the modal controller. Population runs at most once however many lifecycle events fire.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/nextlevelcleaning/cards/internal/config"
	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/profile"
	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/rendering"
	"github.com/nextlevelcleaning/cards/internal/share"
	"github.com/nextlevelcleaning/cards/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RecordLoader loads profile records. *profile.Loader implements it.
type RecordLoader interface {
	Load(ctx context.Context, pageURL *url.URL, slug string) (*types.ProfileRecord, *profile.LoadReport, error)
}

// Event names a page lifecycle trigger.
type Event string

// Lifecycle events that may start population.
const (
	EventReady Event = "ready"
	EventLoad  Event = "load"
)

// Options configures a Context.
type Options struct {
	Loader RecordLoader
	// Domain is the production domain encoded in QR codes.
	Domain string
	// QRMode selects the QR presenter (config.QRModeClient or config.QRModeStatic).
	QRMode  string
	Encoder qr.Encoder
	Assets  share.AssetChecker
	// Share carries the platform hooks for the modal; its Lock, Presenter and PageURL are set
	// by the session.
	Share  share.Options
	Logger *zap.Logger
}

// Outcome is the result of populating the page.
type Outcome struct {
	Identity types.Identity
	Rule     identity.Rule
	Record   *types.ProfileRecord
	Report   *profile.LoadReport
	Populate *rendering.PopulateResult
	State    rendering.State
}

// Context is one page session.
type Context struct {
	surfaceMu sync.Mutex // guards surface, shared with the modal controller
	surface   page.Surface

	pageURL  *url.URL
	identity types.Identity
	rule     identity.Rule
	idErr    error

	opts   Options
	logger *zap.Logger
	group  singleflight.Group
	modal  *share.Controller

	mu      sync.Mutex // guards the fields below
	done    bool
	outcome *Outcome
	err     error
	record  *types.ProfileRecord
	runs    int
}

// New starts a session for the page at pageURL rendered into surface. The identity is
// resolved immediately; errors surface when population runs.
func New(pageURL *url.URL, surface page.Surface, opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Context{surface: surface, pageURL: pageURL, opts: opts, logger: logger}
	c.identity, c.rule, c.idErr = identity.Resolve(pageURL)

	shareOpts := opts.Share
	shareOpts.Lock = &c.surfaceMu
	shareOpts.Presenter = c.presenter()
	if pageURL != nil {
		shareOpts.PageURL = pageURL.String()
	}
	if shareOpts.Logger == nil {
		shareOpts.Logger = logger
	}
	c.modal = share.NewController(surface, shareOpts)
	return c
}

// Identity returns the resolved identity, or the resolution error.
func (c *Context) Identity() (types.Identity, error) {
	return c.identity, c.idErr
}

// Modal returns the share/QR modal controller.
func (c *Context) Modal() *share.Controller {
	return c.modal
}

// Record returns the loaded record, or nil before population succeeds.
func (c *Context) Record() *types.ProfileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// OnReady handles the document-ready event.
func (c *Context) OnReady(ctx context.Context) (*Outcome, error) {
	return c.trigger(ctx, EventReady)
}

// OnLoad handles the window-load event.
func (c *Context) OnLoad(ctx context.Context) (*Outcome, error) {
	return c.trigger(ctx, EventLoad)
}

// WithSurface runs f with exclusive access to the page surface.
func (c *Context) WithSurface(f func(page.Surface)) {
	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()
	f(c.surface)
}

// State returns the visible page state.
func (c *Context) State() rendering.State {
	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()
	return rendering.StateOf(c.surface)
}

func (c *Context) trigger(ctx context.Context, ev Event) (*Outcome, error) {
	c.mu.Lock()
	if c.done {
		out, err := c.outcome, c.err
		c.mu.Unlock()
		c.logger.Debug("population already done", zap.String("event", string(ev)))
		return out, err
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do("populate", func() (any, error) {
		return c.populateOnce(ctx)
	})
	if shared {
		c.logger.Debug("joined in-flight population", zap.String("event", string(ev)))
	}
	out, _ := v.(*Outcome)
	return out, err
}

func (c *Context) populateOnce(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.done {
		out, err := c.outcome, c.err
		c.mu.Unlock()
		return out, err
	}
	c.runs++
	c.mu.Unlock()

	out, err := c.populate(ctx)

	c.mu.Lock()
	c.done = true
	c.outcome, c.err = out, err
	if out != nil {
		c.record = out.Record
	}
	c.mu.Unlock()
	return out, err
}

func (c *Context) populate(ctx context.Context) (*Outcome, error) {
	out := &Outcome{Identity: c.identity, Rule: c.rule}

	if c.idErr != nil {
		kind := rendering.ErrorInvalidPage
		if errors.Is(c.idErr, identity.ErrTemplatePageAccessed) {
			kind = rendering.ErrorTemplatePage
			c.logger.Error("template page accessed; not loading data", zap.Stringer("url", c.pageURL))
		}
		out.State = c.showError(kind)
		return out, c.idErr
	}

	if c.opts.Loader == nil {
		out.State = c.showError(rendering.ErrorLoadFailed)
		return out, fmt.Errorf("session has no loader")
	}

	rec, report, err := c.opts.Loader.Load(ctx, c.pageURL, c.identity.Slug)
	out.Report = report
	if err != nil {
		out.State = c.showError(rendering.ErrorLoadFailed)
		return out, err
	}
	out.Record = rec

	c.surfaceMu.Lock()
	res, popErr := rendering.Populate(c.surface, rec, rendering.Options{Logger: c.logger})
	out.State = rendering.StateOf(c.surface)
	c.surfaceMu.Unlock()
	out.Populate = res

	c.mu.Lock()
	c.record = rec
	c.mu.Unlock()
	c.modal.RecordLoaded(ctx, rec)
	if popErr != nil {
		return out, popErr
	}

	c.logger.Info("card populated",
		zap.String("identity", c.identity.String()),
		zap.String("rule", string(c.rule)),
		zap.Bool("fallback", report != nil && report.UsedFallback))
	return out, nil
}

func (c *Context) showError(kind rendering.ErrorKind) rendering.State {
	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()
	rendering.ShowError(c.surface, kind)
	return rendering.StateOf(c.surface)
}

// presenter picks the QR presenter for the configured mode.
func (c *Context) presenter() share.Presenter {
	if c.idErr != nil {
		return failedPresenter{err: c.idErr}
	}
	if c.opts.QRMode == config.QRModeStatic {
		return &share.StaticQR{Record: c.Record, Assets: c.opts.Assets}
	}
	return &share.ClientQR{Encoder: c.opts.Encoder, Domain: c.opts.Domain, Identity: c.identity}
}

type failedPresenter struct{ err error }

func (p failedPresenter) Present(_ context.Context, container *share.Container) error {
	container.ShowError(share.MsgGenerateFailed)
	return p.err
}

// Runs reports how many times population actually executed.
func (c *Context) Runs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs
}
