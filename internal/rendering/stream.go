package rendering

import (
	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/types"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// BlockClass is the class every content block carries, followed by the item type.
const BlockClass = "contentBlock"

// DefaultButtonText labels a button item without a title.
const DefaultButtonText = "Click here"

// SkippedItem identifies a content item that produced no block.
type SkippedItem struct {
	Index int
	Type  types.ContentType
	Err   error
}

// StreamResult describes a rendered content stream.
type StreamResult struct {
	Rendered  int
	Skipped   []SkippedItem
	Carousels []*CarouselView
}

// RenderStream clears container and appends one block per item, in order. Items of unknown
// type, and items missing the fields their type needs, are skipped and reported.
func RenderStream(container *page.Element, items []types.ContentItem, opts Options) *StreamResult {
	res := &StreamResult{}
	if container == nil {
		return res
	}
	log := opts.logger()
	container.Clear()

	for i, item := range items {
		block, carousel, err := renderBlock(i, item)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, Type: item.Type, Err: err})
			log.Warn("content item skipped",
				zap.Int("index", i),
				zap.String("type", string(item.Type)),
				zap.Error(err))
			continue
		}
		container.Append(block)
		if carousel != nil {
			res.Carousels = append(res.Carousels, carousel)
		}
		res.Rendered++
	}
	return res
}

func renderBlock(i int, item types.ContentItem) (*html.Node, *CarouselView, error) {
	block := page.El("div", "class", BlockClass+" "+string(item.Type))

	switch item.Type {
	case types.ContentImage:
		if item.Src == "" {
			return nil, nil, &RenderError{Index: i, Message: "image without src"}
		}
		img := page.El("img", "src", item.Src, "alt", item.Alt)
		if item.Title != "" {
			img.Attr = append(img.Attr, html.Attribute{Key: "title", Val: item.Title})
		}
		block.AppendChild(linkWrap(img, item.Link))

	case types.ContentBanner:
		if item.Src == "" {
			return nil, nil, &RenderError{Index: i, Message: "banner without src"}
		}
		block.AppendChild(linkWrap(page.El("img", "src", item.Src, "alt", item.Alt), item.Link))

	case types.ContentVideo:
		if item.Src == "" {
			return nil, nil, &RenderError{Index: i, Message: "video without src"}
		}
		if embed, allow, ok := EmbedURL(item.Src); ok {
			block.AppendChild(page.El("iframe",
				"src", embed,
				"allowfullscreen", "",
				"frameborder", "0",
				"allow", allow))
		} else {
			block.AppendChild(videoElement(item))
		}

	case types.ContentMP4:
		if item.Src == "" {
			return nil, nil, &RenderError{Index: i, Message: "mp4 without src"}
		}
		block.AppendChild(videoElement(item))

	case types.ContentCarousel:
		container, view := buildCarousel(item.Images)
		block.AppendChild(container)
		return block, view, nil

	case types.ContentButton:
		href := item.Link
		if href == "" {
			href = "#"
		}
		label := item.Title
		if label == "" {
			label = DefaultButtonText
		}
		a := page.El("a", "class", "contentButton", "href", href)
		if item.Target != "" {
			a.Attr = append(a.Attr, html.Attribute{Key: "target", Val: item.Target})
		}
		block.AppendChild(page.Children(a, page.Text(label)))

	default:
		return nil, nil, &RenderError{Index: i, Message: "unknown content type " + string(item.Type)}
	}

	return block, nil, nil
}

func linkWrap(n *html.Node, link string) *html.Node {
	if link == "" {
		return n
	}
	return page.Children(page.El("a", "href", link, "target", "_blank", "rel", "noopener noreferrer"), n)
}

func videoElement(item types.ContentItem) *html.Node {
	v := page.El("video", "src", item.Src, "controls", "", "preload", "metadata")
	if item.Poster != "" {
		v.Attr = append(v.Attr, html.Attribute{Key: "poster", Val: item.Poster})
	}
	if item.Autoplay {
		// Browsers only autoplay muted video.
		v.Attr = append(v.Attr, html.Attribute{Key: "autoplay"}, html.Attribute{Key: "muted"})
	}
	if item.Loop {
		v.Attr = append(v.Attr, html.Attribute{Key: "loop"})
	}
	return v
}
