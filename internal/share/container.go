package share

import (
	"sync"

	"github.com/nextlevelcleaning/cards/internal/page"
	"golang.org/x/net/html"
)

// QR container messages.
const (
	MsgLoadingLibrary     = "Loading QR code library..."
	MsgLibraryUnavailable = "QR code library not available. Please check your internet connection and refresh the page."
	MsgGenerateFailed     = "Error: Could not generate QR code. Please contact support."
	MsgNotGenerated       = "QR code not generated yet."
	MsgImageNotFound      = "QR code image not found. Please contact support."
	MsgLoadingEmployee    = "Loading employee data..."
)

// ContainerState is what the QR container currently shows.
type ContainerState string

// The QR container always ends in one of these.
const (
	ContainerEmpty   ContainerState = ""
	ContainerCode    ContainerState = "code"
	ContainerLoading ContainerState = "loading"
	ContainerError   ContainerState = "error"
)

const stateAttr = "data-state"

// Container is the QR slot. Each write replaces the previous content under the surface lock,
// so the slot shows exactly one code or message at a time.
type Container struct {
	mu *sync.Mutex
	el *page.Element
}

// ShowCode displays a QR image.
func (c *Container) ShowCode(src, alt string) {
	c.replace(ContainerCode, page.El("img", "src", src, "alt", alt, "width", "256", "height", "256"))
}

// ShowLoading displays a progress message.
func (c *Container) ShowLoading(msg string) {
	c.replace(ContainerLoading, page.Children(page.El("p", "class", "text"), page.Text(msg)))
}

// ShowError displays an error message.
func (c *Container) ShowError(msg string) {
	c.replace(ContainerError, page.Children(page.El("p", "class", "text error"), page.Text(msg)))
}

// State returns what the container shows.
func (c *Container) State() ContainerState {
	if c == nil || c.el == nil {
		return ContainerEmpty
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return ContainerState(c.el.AttrOr(stateAttr, ""))
}

// Text returns the visible message, if any.
func (c *Container) Text() string {
	if c == nil || c.el == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.el.Text()
}

func (c *Container) replace(state ContainerState, content *html.Node) {
	if c == nil || c.el == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.el.Clear()
	c.el.Append(content)
	c.el.SetAttr(stateAttr, string(state))
}
