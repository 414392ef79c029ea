package rendering

import (
	"fmt"
	"strconv"

	"github.com/nextlevelcleaning/cards/internal/page"
	"golang.org/x/net/html"
)

// Carousel is the navigation state of an image carousel. Exactly one index is current and
// navigation wraps at both ends.
type Carousel struct {
	n       int
	current int
}

// NewCarousel creates a carousel over n images, starting at the first.
func NewCarousel(n int) *Carousel {
	return &Carousel{n: n}
}

// Len returns the number of images.
func (c *Carousel) Len() int { return c.n }

// Current returns the visible index.
func (c *Carousel) Current() int { return c.current }

// Next advances one image, wrapping to the first.
func (c *Carousel) Next() int {
	if c.n > 0 {
		c.current = (c.current + 1) % c.n
	}
	return c.current
}

// Prev goes back one image, wrapping to the last.
func (c *Carousel) Prev() int {
	if c.n > 0 {
		c.current = (c.current - 1 + c.n) % c.n
	}
	return c.current
}

// GoTo makes index i current.
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= c.n {
		return fmt.Errorf("carousel index %d out of range [0,%d)", i, c.n)
	}
	c.current = i
	return nil
}

// Carousel colours for the active and inactive dot.
const (
	dotActive   = "#333"
	dotInactive = "#ccc"
)

// CarouselView binds a Carousel to its rendered images and dots.
type CarouselView struct {
	model  *Carousel
	images []*page.Element
	dots   []*page.Element
}

// Model returns the navigation state.
func (v *CarouselView) Model() *Carousel { return v.model }

// Next shows the following image.
func (v *CarouselView) Next() { v.model.Next(); v.apply() }

// Prev shows the preceding image.
func (v *CarouselView) Prev() { v.model.Prev(); v.apply() }

// GoTo shows image i, as a dot click does.
func (v *CarouselView) GoTo(i int) error {
	if err := v.model.GoTo(i); err != nil {
		return err
	}
	v.apply()
	return nil
}

// Active returns the indexes of the visible image and the highlighted dot (-1 when there are no
// dots).
func (v *CarouselView) Active() (image, dot int) {
	image, dot = -1, -1
	for i, img := range v.images {
		if img.Style("display") == "block" {
			image = i
		}
	}
	for i, d := range v.dots {
		if d.HasClass("active") {
			dot = i
		}
	}
	return image, dot
}

func (v *CarouselView) apply() {
	cur := v.model.Current()
	for i, img := range v.images {
		if i == cur {
			img.SetStyle("display", "block")
			img.SetAttr("data-active", "true")
		} else {
			img.SetStyle("display", "none")
			img.RemoveAttr("data-active")
		}
	}
	for i, d := range v.dots {
		if i == cur {
			d.AddClass("active")
			d.SetStyle("background", dotActive)
		} else {
			d.RemoveClass("active")
			d.SetStyle("background", dotInactive)
		}
	}
}

func buildCarousel(images []string) (*html.Node, *CarouselView) {
	container := page.El("div", "class", "carousel-container", "style", "position: relative")
	if len(images) == 0 {
		return container, nil
	}

	view := &CarouselView{model: NewCarousel(len(images))}
	wrapper := page.El("div", "class", "carousel-images",
		"style", "position: relative; overflow: hidden; border-radius: 12px")
	for i, src := range images {
		img := page.El("img", "src", src, "data-index", strconv.Itoa(i),
			"style", "display: none; width: 100%; height: auto; border-radius: 12px")
		wrapper.AppendChild(img)
		view.images = append(view.images, page.Wrap(img))
	}
	container.AppendChild(wrapper)

	if len(images) > 1 {
		navStyle := "position: absolute; top: 50%; transform: translateY(-50%); z-index: 10"
		container.AppendChild(page.Children(
			page.El("button", "type", "button", "class", "carousel-nav carousel-prev", "aria-label", "Previous", "style", "left: 10px; "+navStyle),
			page.Text("‹")))
		container.AppendChild(page.Children(
			page.El("button", "type", "button", "class", "carousel-nav carousel-next", "aria-label", "Next", "style", "right: 10px; "+navStyle),
			page.Text("›")))

		dots := page.El("div", "class", "carousel-dots",
			"style", "display: flex; justify-content: center; gap: 8px; margin-top: 10px")
		for i := range images {
			dot := page.El("button", "type", "button", "class", "carousel-dot", "data-index", strconv.Itoa(i),
				"style", "width: 10px; height: 10px; border-radius: 50%; border: none")
			dots.AppendChild(dot)
			view.dots = append(view.dots, page.Wrap(dot))
		}
		container.AppendChild(dots)
	}

	view.apply()
	return container, view
}
