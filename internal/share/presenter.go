package share

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nextlevelcleaning/cards/internal/fetch"
	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/types"
)

// Presenter fills the QR container.
type Presenter interface {
	Present(ctx context.Context, c *Container) error
}

// ClientQR generates the code for the card's canonical production URL.
type ClientQR struct {
	Encoder  qr.Encoder
	Domain   string
	Identity types.Identity
	Attempts int
	Interval time.Duration
	Sleep    qr.Sleeper
}

// Present implements Presenter.
func (p *ClientQR) Present(ctx context.Context, c *Container) error {
	enc := p.Encoder
	if enc == nil {
		enc = qr.GoQR{}
	}
	if !enc.Ready() {
		c.ShowLoading(MsgLoadingLibrary)
		attempts, interval := p.Attempts, p.Interval
		if attempts == 0 {
			attempts = qr.PollAttempts
		}
		if interval == 0 {
			interval = qr.PollInterval
		}
		if err := qr.WaitReady(ctx, enc, attempts, interval, p.Sleep); err != nil {
			c.ShowError(MsgLibraryUnavailable)
			return err
		}
	}

	target, err := qr.CanonicalURL(p.Domain, p.Identity)
	if err != nil {
		c.ShowError(MsgGenerateFailed)
		return err
	}

	png, err := enc.PNG(target, qr.Size)
	if err != nil {
		c.ShowError(MsgGenerateFailed)
		return fmt.Errorf("generate QR for %s: %w", target, err)
	}
	c.ShowCode(qr.DataURI(png), "QR code for "+target)
	return nil
}

// AssetChecker reports whether a page asset can be loaded.
type AssetChecker interface {
	Check(ctx context.Context, src string) error
}

// StaticQR shows the pre-generated image named by the record's qrImage field.
type StaticQR struct {
	// Record returns the loaded record, or nil while loading.
	Record func() *types.ProfileRecord
	Assets AssetChecker
}

// Present implements Presenter.
func (p *StaticQR) Present(ctx context.Context, c *Container) error {
	var rec *types.ProfileRecord
	if p.Record != nil {
		rec = p.Record()
	}
	if rec == nil {
		c.ShowLoading(MsgLoadingEmployee)
		return ErrRecordNotLoaded
	}
	if rec.QRImage == "" {
		c.ShowError(MsgNotGenerated)
		return fmt.Errorf("%w: record has no qrImage", ErrAssetLoadFailed)
	}
	if p.Assets != nil {
		if err := p.Assets.Check(ctx, rec.QRImage); err != nil {
			c.ShowError(MsgImageNotFound)
			return fmt.Errorf("%w: %s: %v", ErrAssetLoadFailed, rec.QRImage, err)
		}
	}
	c.ShowCode(rec.QRImage, "QR code for "+rec.Name)
	return nil
}

// HTTPAssets checks assets by fetching them relative to the page URL.
type HTTPAssets struct {
	Client  *fetch.Client
	PageURL *url.URL
}

// Check implements AssetChecker.
func (a *HTTPAssets) Check(ctx context.Context, src string) error {
	ref, err := url.Parse(src)
	if err != nil {
		return err
	}
	target := ref
	if a.PageURL != nil {
		target = a.PageURL.ResolveReference(ref)
	}
	res, err := a.Client.Get(ctx, target.String())
	if err != nil {
		return err
	}
	if ct := res.ContentType; ct != "" && !strings.HasPrefix(ct, "image/") && ct != "application/octet-stream" {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	if len(res.Body) == 0 || res.StatusCode != http.StatusOK {
		return errors.New("empty image")
	}
	return nil
}

// DirAssets checks assets as files under a card directory.
type DirAssets struct {
	Dir string
}

// Check implements AssetChecker.
func (a DirAssets) Check(_ context.Context, src string) error {
	info, err := os.Stat(filepath.Join(a.Dir, filepath.FromSlash(src)))
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return errors.New("empty image")
	}
	return nil
}
