// Package qr builds the canonical card URL encoded into QR codes and renders the codes.
package qr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/types"
	"github.com/skip2/go-qrcode"
)

var (
	// ErrMalformedURL means the URL to encode failed validation.
	ErrMalformedURL = errors.New("malformed QR URL")
	// ErrLibraryNotReady means the encoder did not become ready within the polling budget.
	ErrLibraryNotReady = errors.New("QR encoder not ready")
)

// Rendering parameters.
const (
	Size         = 256
	PollAttempts = 30
	PollInterval = 100 * time.Millisecond
)

var (
	splitPattern    = regexp.MustCompile(`^(https?://[^/]+)(/.*)$`)
	cardPathPattern = regexp.MustCompile(`^/id/(director|manager|cleaner)/[^/.]+/$`)
)

// CanonicalURL returns https://<domain>/id/<category>/<slug>/, the address encoded in a card's QR
// code. It never depends on where the card is currently being viewed.
func CanonicalURL(domain string, id types.Identity) (string, error) {
	if domain == "" {
		return "", fmt.Errorf("%w: empty domain", ErrMalformedURL)
	}
	if id.Slug == "" || id.Slug == identity.TemplateSlug {
		return "", fmt.Errorf("%w: no card identity", ErrMalformedURL)
	}
	if id.Category == "" {
		id.Category = types.CategoryDirector
	}
	raw := Normalize("https://" + domain + identity.CanonicalPath(id))
	if err := Validate(raw, domain); err != nil {
		return "", err
	}
	return raw, nil
}

// Normalize repairs path segments that use '.' where '/' was meant (id.director becomes
// id/director). Segments ending in .html and the host are left alone.
func Normalize(raw string) string {
	m := splitPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return strings.TrimSpace(raw)
	}
	origin, path := m[1], m[2]

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.Contains(seg, ".") && !strings.HasSuffix(seg, ".html") {
			segments[i] = strings.ReplaceAll(seg, ".", "/")
		}
	}
	return origin + strings.Join(segments, "/")
}

// Validate checks that raw is an https card URL on domain.
func Validate(raw, domain string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%w: scheme %q", ErrMalformedURL, u.Scheme)
	}
	if !strings.EqualFold(u.Host, domain) {
		return fmt.Errorf("%w: host %q is not %q", ErrMalformedURL, u.Host, domain)
	}
	if !cardPathPattern.MatchString(u.Path) {
		return fmt.Errorf("%w: path %q is not a card path", ErrMalformedURL, u.Path)
	}
	return nil
}

// Encoder renders QR codes. Ready reports whether it can be used yet.
type Encoder interface {
	Ready() bool
	PNG(content string, size int) ([]byte, error)
}

// GoQR encodes with github.com/skip2/go-qrcode at the medium recovery level.
type GoQR struct{}

// Ready implements Encoder. The library is linked in and always ready.
func (GoQR) Ready() bool { return true }

// PNG implements Encoder.
func (GoQR) PNG(content string, size int) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}
	png, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR PNG: %w", err)
	}
	return png, nil
}

// WriteFile renders content to a PNG file at path.
func WriteFile(path, content string, size int) error {
	if err := qrcode.WriteFile(content, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write QR %s: %w", path, err)
	}
	return nil
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WaitReady polls enc up to attempts times, interval apart. It returns ErrLibraryNotReady when
// the budget runs out.
func WaitReady(ctx context.Context, enc Encoder, attempts int, interval time.Duration, sleep Sleeper) error {
	if sleep == nil {
		sleep = Sleep
	}
	if enc.Ready() {
		return nil
	}
	for i := 0; i < attempts; i++ {
		if err := sleep(ctx, interval); err != nil {
			return err
		}
		if enc.Ready() {
			return nil
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrLibraryNotReady, attempts)
}

// DataURI embeds a PNG as a data: URI.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
