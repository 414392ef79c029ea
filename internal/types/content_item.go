//nolint:revive // types is a standard Go package name pattern
package types

// ContentType tags a ContentItem variant.
type ContentType string

// Content item variants understood by the stream renderer.
const (
	ContentImage    ContentType = "image"
	ContentVideo    ContentType = "video"
	ContentMP4      ContentType = "mp4"
	ContentCarousel ContentType = "carousel"
	ContentButton   ContentType = "button"
	ContentBanner   ContentType = "banner"
)

// ContentTypes lists every known variant in declaration order.
var ContentTypes = []ContentType{
	ContentImage, ContentVideo, ContentMP4, ContentCarousel, ContentButton, ContentBanner,
}

// Known reports whether t is one of the supported variants.
func (t ContentType) Known() bool {
	for _, c := range ContentTypes {
		if c == t {
			return true
		}
	}
	return false
}

// ContentItem is one block of a card's content stream. Which fields are meaningful depends on Type:
//   - image:    Src, Alt, Title, Link
//   - video:    Src (YouTube/Vimeo URLs embed), Poster, Autoplay, Loop
//   - mp4:      Src, Poster, Autoplay, Loop
//   - carousel: Images
//   - button:   Link, Title, Target
//   - banner:   Src, Alt, Link
type ContentItem struct {
	Type     ContentType `json:"type"`
	Src      string      `json:"src,omitempty"`
	Alt      string      `json:"alt,omitempty"`
	Title    string      `json:"title,omitempty"`
	Link     string      `json:"link,omitempty"`
	Poster   string      `json:"poster,omitempty"`
	Autoplay bool        `json:"autoplay,omitempty"`
	Loop     bool        `json:"loop,omitempty"`
	Images   []string    `json:"images,omitempty"`
	Target   string      `json:"target,omitempty"`
}
