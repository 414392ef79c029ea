package rendering

import (
	"fmt"

	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/types"
	"go.uber.org/zap"
)

// Options configures population and stream rendering.
type Options struct {
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// PopulateResult describes what Populate wrote.
type PopulateResult struct {
	Written  []string // slots written, in write order
	Missing  []string // slots the template does not have
	Repaired []string // name/role slots rewritten by the post-condition check
	Stream   *StreamResult
}

// Populate writes rec into the template slots. Slots absent from the template are skipped and
// fields absent from the record leave the slot untouched. When the record has a content
// stream it is rendered into the contentStream slot.
//
// Afterwards the name and role slots are checked once: if either still shows a placeholder
// or differs from the record it is rewritten. If a placeholder remains, including when the
// record has no value for the slot, the page is put in the incomplete-record error state and
// the result is a *TemplateError wrapping ErrPlaceholderVisible.
func Populate(s page.Surface, rec *types.ProfileRecord, opts Options) (*PopulateResult, error) {
	if rec == nil {
		ShowError(s, ErrorTemplatePage)
		return nil, ErrNoRecord
	}
	log := opts.logger()
	res := &PopulateResult{}

	text := func(id, value string) {
		if value == "" {
			return
		}
		el := s.Slot(id)
		if el == nil {
			res.Missing = append(res.Missing, id)
			return
		}
		el.SetText(value)
		res.Written = append(res.Written, id)
	}
	attrs := func(id string, kv ...string) {
		if len(kv) < 2 || kv[1] == "" {
			return
		}
		el := s.Slot(id)
		if el == nil {
			res.Missing = append(res.Missing, id)
			return
		}
		for i := 0; i+1 < len(kv); i += 2 {
			if kv[i+1] != "" {
				el.SetAttr(kv[i], kv[i+1])
			}
		}
		res.Written = append(res.Written, id)
	}

	if rec.Theme != "" {
		s.Root().SetAttr(page.ThemeAttr, rec.Theme)
		if !types.IsKnownTheme(rec.Theme) {
			log.Debug("unknown theme token", zap.String("theme", rec.Theme))
		}
	}

	if rec.Name != "" {
		text(page.SlotPageTitle, fmt.Sprintf("%s - %s", rec.Name, rec.DisplayCompany()))
	}
	if rec.ProfileImage != "" {
		alt := rec.Name
		attrs(page.SlotProfileImage, "src", rec.ProfileImage, "alt", alt)
	}
	text(page.SlotStaffName, rec.Name)
	text(page.SlotStaffRole, rec.Role)
	text(page.SlotCompanyName, rec.Company)
	text(page.SlotDescription, rec.Description)

	if rec.Phone != "" {
		attrs(page.SlotCallLink, "href", "tel:"+rec.Phone)
	}
	if rec.Email != "" {
		attrs(page.SlotEmailLink, "href", "mailto:"+rec.Email)
	}
	attrs(page.SlotWebsiteLink, "href", rec.Website)
	attrs(page.SlotVcard, "href", rec.ContactVcf, "download", rec.ContactVcf)

	if links := rec.Social.Ordered(); links != nil {
		anchors := s.Select(page.SocialSelector)
		if len(anchors) == len(links) {
			for i, href := range links {
				if href != "" {
					anchors[i].SetAttr("href", href)
				}
			}
			res.Written = append(res.Written, "social")
		} else {
			log.Warn("social anchors do not match template",
				zap.Int("expected", len(links)),
				zap.Int("found", len(anchors)))
		}
	}

	for _, slot := range []struct{ id, want string }{
		{page.SlotStaffName, rec.Name},
		{page.SlotStaffRole, rec.Role},
	} {
		if err := verify(s, slot.id, slot.want, res); err != nil {
			ShowError(s, ErrorIncompleteRecord)
			log.Warn("card left showing a placeholder", zap.Error(err))
			return res, err
		}
	}

	if len(rec.ContentStream) > 0 {
		container := s.Slot(page.SlotContentStream)
		if container == nil {
			res.Missing = append(res.Missing, page.SlotContentStream)
		} else {
			res.Stream = RenderStream(container, rec.ContentStream, opts)
		}
	}

	log.Debug("template populated",
		zap.String("name", rec.Name),
		zap.Strings("written", res.Written),
		zap.Strings("missing", res.Missing))
	return res, nil
}

// verify checks one identity slot after population and rewrites it at most once.
func verify(s page.Surface, id, want string, res *PopulateResult) error {
	el := s.Slot(id)
	if el == nil {
		return nil
	}
	if want == "" {
		if got := el.Text(); IsSentinel(got) {
			return &TemplateError{Slot: id, Message: fmt.Sprintf("record has no value, slot shows %q", got), Cause: ErrPlaceholderVisible}
		}
		return nil
	}
	if got := el.Text(); got == want && !IsSentinel(got) {
		return nil
	}

	el.SetText(want)
	res.Repaired = append(res.Repaired, id)
	if IsSentinel(el.Text()) {
		return &TemplateError{Slot: id, Message: fmt.Sprintf("shows %q", el.Text()), Cause: ErrPlaceholderVisible}
	}
	return nil
}
