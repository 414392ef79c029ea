// Package share drives the card's share/QR modal: the native share sheet, the copy-URL view and
// the QR view.
package share

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/types"
	"go.uber.org/zap"
)

// View is the modal state.
type View int

// Modal states.
const (
	Hidden View = iota
	ShareView
	QRView
)

func (v View) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case ShareView:
		return "share"
	case QRView:
		return "qr"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Timing defaults.
const (
	DefaultQRDelay    = 100 * time.Millisecond
	DefaultLabelReset = 2 * time.Second
)

// Copy button labels.
const (
	LabelCopy   = "Copy URL"
	LabelCopied = "Copied!"
)

// KeyEscape closes the modal.
const KeyEscape = "Escape"

// Payload is what the native share sheet receives.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// Sharer is the platform share sheet. Share returns ErrShareCanceled when the user dismisses
// it or the platform refuses it.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, p Payload) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// LegacyCopier is the fallback copy mechanism used when the clipboard refuses.
type LegacyCopier interface {
	Copy(text string) error
}

// Scheduler runs f after d.
type Scheduler func(d time.Duration, f func())

// RealTime schedules with time.AfterFunc.
func RealTime(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Options configures a Controller.
type Options struct {
	PageURL    string
	Presenter  Presenter
	Sharer     Sharer
	Clipboard  Clipboard
	Legacy     LegacyCopier
	Scheduler  Scheduler
	QRDelay    time.Duration
	LabelReset time.Duration
	Logger     *zap.Logger
	// Lock serialises surface access with other writers of the same page. A private lock is
	// used when nil.
	Lock *sync.Mutex
	// OnQR is called with the presenter's result after each QR generation.
	OnQR func(error)
}

// Controller is the modal state machine. Methods are safe for concurrent use.
type Controller struct {
	mu      *sync.Mutex
	surface page.Surface
	view    View
	record  *types.ProfileRecord
	opts    Options
	logger  *zap.Logger
}

// NewController binds a controller to the modal slots of s. The modal starts hidden.
func NewController(s page.Surface, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = RealTime
	}
	if opts.QRDelay == 0 {
		opts.QRDelay = DefaultQRDelay
	}
	if opts.LabelReset == 0 {
		opts.LabelReset = DefaultLabelReset
	}
	mu := opts.Lock
	if mu == nil {
		mu = &sync.Mutex{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{mu: mu, surface: s, opts: opts, logger: logger}
	c.mu.Lock()
	c.render()
	c.mu.Unlock()
	return c
}

// View returns the current modal state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// QRContainer returns the QR slot wrapper.
func (c *Controller) QRContainer() *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Container{mu: c.mu, el: c.surface.Slot(page.SlotQR)}
}

// ShowQR opens the QR view and schedules code generation after the QR delay.
func (c *Controller) ShowQR(ctx context.Context) {
	c.setView(QRView)
	c.generate(ctx, c.opts.QRDelay)
}

// RecordLoaded supplies the loaded record used for share texts and, when the QR view is
// open and still waiting for it, generates the code again.
func (c *Controller) RecordLoaded(ctx context.Context, rec *types.ProfileRecord) {
	c.mu.Lock()
	c.record = rec
	waiting := c.view == QRView
	c.mu.Unlock()

	if waiting && c.QRContainer().State() == ContainerLoading {
		c.logger.Debug("record arrived while QR view was loading; regenerating")
		c.generate(ctx, 0)
	}
}

func (c *Controller) generate(ctx context.Context, delay time.Duration) {
	container := c.QRContainer()
	c.opts.Scheduler(delay, func() {
		var err error
		if c.opts.Presenter == nil {
			container.ShowError(MsgGenerateFailed)
			err = errors.New("no QR presenter configured")
		} else {
			err = c.opts.Presenter.Present(ctx, container)
		}
		if err != nil {
			c.logger.Warn("QR generation failed", zap.Error(err))
		}
		if c.opts.OnQR != nil {
			c.opts.OnQR(err)
		}
	})
}

// Payload returns the share payload for the current record.
func (c *Controller) Payload() Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload()
}

func (c *Controller) payload() Payload {
	name := "Contact"
	company := types.DefaultCompany
	if c.record != nil {
		if c.record.Name != "" {
			name = c.record.Name
		}
		company = c.record.DisplayCompany()
	}
	return Payload{
		Title: name + " - " + company,
		Text:  "Connect with " + name + " from " + company,
		URL:   c.opts.PageURL,
	}
}

// Share offers the page through the native share sheet. When no sharer is available the share
// view opens and ErrShareUnavailable is returned. A canceled share leaves the modal hidden and
// returns ErrShareCanceled; any other failure opens the share view.
func (c *Controller) Share(ctx context.Context) error {
	p := c.Payload()

	if c.opts.Sharer == nil || !c.opts.Sharer.Available() {
		c.setView(ShareView)
		return ErrShareUnavailable
	}

	err := c.opts.Sharer.Share(ctx, p)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrShareCanceled):
		c.logger.Debug("share canceled")
		return err
	default:
		c.logger.Warn("native share failed", zap.Error(err))
		c.setView(ShareView)
		return fmt.Errorf("native share: %w", err)
	}
}

// Close hides the modal.
func (c *Controller) Close() {
	c.setView(Hidden)
}

// BackdropClick handles a click whose target has id targetID. Only clicks on the backdrop
// itself close the modal.
func (c *Controller) BackdropClick(targetID string) {
	if targetID == page.SlotModal {
		c.Close()
	}
}

// KeyDown handles a key press. Escape closes an open modal.
func (c *Controller) KeyDown(key string) {
	if key == KeyEscape && c.View() != Hidden {
		c.Close()
	}
}

// CopyURL copies the page URL. A clipboard failure falls back to the legacy copier. On success
// the button label reads "Copied!" until the label reset delay passes.
func (c *Controller) CopyURL(ctx context.Context) error {
	text := c.opts.PageURL

	var clipErr error
	if c.opts.Clipboard != nil {
		clipErr = c.opts.Clipboard.WriteText(ctx, text)
	} else {
		clipErr = ErrClipboardDenied
	}
	if clipErr != nil {
		c.logger.Debug("clipboard write failed, using legacy copy", zap.Error(clipErr))
		if c.opts.Legacy == nil {
			return fmt.Errorf("%w: %v", ErrCopyFailed, clipErr)
		}
		if err := c.opts.Legacy.Copy(text); err != nil {
			return fmt.Errorf("%w: %v", ErrCopyFailed, errors.Join(clipErr, err))
		}
	}

	c.setCopyLabel(LabelCopied)
	c.opts.Scheduler(c.opts.LabelReset, func() { c.setCopyLabel(LabelCopy) })
	return nil
}

// CopyLabel returns the copy button text.
func (c *Controller) CopyLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el := c.surface.Slot(page.SlotCopyURL); el != nil {
		return el.Text()
	}
	return ""
}

func (c *Controller) setCopyLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el := c.surface.Slot(page.SlotCopyURL); el != nil {
		el.SetText(label)
	}
}

func (c *Controller) setView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == v {
		return
	}
	c.logger.Debug("modal view", zap.Stringer("from", c.view), zap.Stringer("to", v))
	c.view = v
	c.render()
}

// render reflects c.view onto the surface. c.mu must be held.
func (c *Controller) render() {
	toggle := func(id string, visible bool) {
		el := c.surface.Slot(id)
		if el == nil {
			return
		}
		if visible {
			el.RemoveClass(page.HiddenClass)
		} else {
			el.AddClass(page.HiddenClass)
		}
	}

	open := c.view != Hidden
	toggle(page.SlotModal, open)
	toggle(page.SlotQRView, c.view == QRView)
	toggle(page.SlotCopyView, c.view == ShareView)

	if modal := c.surface.Slot(page.SlotModal); modal != nil {
		if open {
			modal.SetAttr("aria-hidden", "false")
		} else {
			modal.SetAttr("aria-hidden", "true")
		}
	}
	if open {
		c.surface.Root().SetStyle("overflow", "hidden")
	} else {
		c.surface.Root().SetStyle("overflow", "")
	}
}
