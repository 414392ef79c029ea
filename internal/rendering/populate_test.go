package rendering

import (
	"errors"
	"testing"

	"github.com/nextlevelcleaning/cards/internal/page"
	"github.com/nextlevelcleaning/cards/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(t *testing.T) *page.Document {
	t.Helper()
	doc, err := page.NewDefault()
	require.NoError(t, err)
	return doc
}

func jenny() *types.ProfileRecord {
	return &types.ProfileRecord{
		Name:         "Jenny Roscoe",
		Role:         "Director",
		Company:      "Next Level Cleaning Ltd",
		Description:  "Professional commercial cleaning services",
		Email:        "jenny@nextlevelcleaningltd.co.uk",
		Phone:        "+447700900002",
		Website:      "https://nextlevelcleaningltd.co.uk",
		ProfileImage: "profile.jpg",
		ContactVcf:   "contact.vcf",
		Theme:        "purple",
		Social: &types.Social{
			Facebook: "https://www.facebook.com/NextLevelCleaningWirral",
			LinkedIn: "https://www.linkedin.com/company/nextlevelcleaningwirral",
		},
	}
}

func attr(t *testing.T, el *page.Element, name string) string {
	t.Helper()
	require.NotNil(t, el)
	v, ok := el.Attr(name)
	require.True(t, ok, "attribute %s missing", name)
	return v
}

func TestPopulate_WritesSlots(t *testing.T) {
	doc := newTemplate(t)
	assert.Equal(t, StateLoading, StateOf(doc))

	res, err := Populate(doc, jenny(), Options{})
	require.NoError(t, err)

	assert.Equal(t, StatePopulated, StateOf(doc))
	assert.Equal(t, "Jenny Roscoe", doc.Slot(page.SlotStaffName).Text())
	assert.Equal(t, "Director", doc.Slot(page.SlotStaffRole).Text())
	assert.Equal(t, "Jenny Roscoe - Next Level Cleaning Ltd", doc.Slot(page.SlotPageTitle).Text())
	assert.Equal(t, "Professional commercial cleaning services", doc.Slot(page.SlotDescription).Text())
	assert.Equal(t, "purple", attr(t, doc.Root(), page.ThemeAttr))
	assert.Equal(t, "tel:+447700900002", attr(t, doc.Slot(page.SlotCallLink), "href"))
	assert.Equal(t, "mailto:jenny@nextlevelcleaningltd.co.uk", attr(t, doc.Slot(page.SlotEmailLink), "href"))
	assert.Equal(t, "https://nextlevelcleaningltd.co.uk", attr(t, doc.Slot(page.SlotWebsiteLink), "href"))
	assert.Equal(t, "contact.vcf", attr(t, doc.Slot(page.SlotVcard), "download"))
	assert.Equal(t, "Jenny Roscoe", attr(t, doc.Slot(page.SlotProfileImage), "alt"))

	anchors := doc.Select(page.SocialSelector)
	require.Len(t, anchors, 4)
	assert.Equal(t, "https://www.facebook.com/NextLevelCleaningWirral", attr(t, anchors[0], "href"))
	assert.Equal(t, "#", attr(t, anchors[1], "href"), "absent social entries leave the anchor untouched")
	assert.Equal(t, "#", attr(t, anchors[2], "href"))
	assert.Equal(t, "https://www.linkedin.com/company/nextlevelcleaningwirral", attr(t, anchors[3], "href"))

	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Repaired)
	assert.Nil(t, res.Stream)
}

func TestPopulate_MissingFieldsLeaveSlots(t *testing.T) {
	doc := newTemplate(t)
	rec := &types.ProfileRecord{Name: "Lauren Moore", Role: "Director"}

	_, err := Populate(doc, rec, Options{})
	require.NoError(t, err)

	assert.Equal(t, "#", attr(t, doc.Slot(page.SlotCallLink), "href"))
	assert.Equal(t, "Next Level Cleaning Ltd", doc.Slot(page.SlotCompanyName).Text())
	assert.Equal(t, "Lauren Moore - Next Level Cleaning Ltd", doc.Slot(page.SlotPageTitle).Text())
	_, hasTheme := doc.Root().Attr(page.ThemeAttr)
	assert.False(t, hasTheme)
}

func TestPopulate_MissingSlotsSkipped(t *testing.T) {
	doc, err := page.ParseString(`<html><head><title id="pageTitle">Loading...</title></head>
		<body><h1 id="staffName">TEMPLATE NAME</h1></body></html>`)
	require.NoError(t, err)

	res, err := Populate(doc, jenny(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Jenny Roscoe", doc.Slot(page.SlotStaffName).Text())
	assert.Contains(t, res.Missing, page.SlotStaffRole)
	assert.Contains(t, res.Missing, page.SlotCallLink)
	assert.NotContains(t, res.Written, "social")
}

func TestPopulate_UnknownThemePassedThrough(t *testing.T) {
	doc := newTemplate(t)
	rec := jenny()
	rec.Theme = "ultraviolet"

	_, err := Populate(doc, rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ultraviolet", attr(t, doc.Root(), page.ThemeAttr))
}

func TestPopulate_PlaceholderNameFails(t *testing.T) {
	doc := newTemplate(t)
	rec := jenny()
	rec.Name = TemplateName

	res, err := Populate(doc, rec, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlaceholderVisible))

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, page.SlotStaffName, tmplErr.Slot)
	assert.Equal(t, []string{page.SlotStaffName}, res.Repaired)
}

func TestPopulate_RecordWithoutNameShowsError(t *testing.T) {
	doc := newTemplate(t)
	rec := jenny()
	rec.Name = ""

	_, err := Populate(doc, rec, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlaceholderVisible)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, page.SlotStaffName, tmplErr.Slot)

	name, role := ErrorTexts(ErrorIncompleteRecord)
	assert.Equal(t, name, doc.Slot(page.SlotStaffName).Text())
	assert.Equal(t, role, doc.Slot(page.SlotStaffRole).Text())
	assert.Equal(t, StateError, StateOf(doc))
}

func TestPopulate_RecordWithoutRoleShowsError(t *testing.T) {
	doc := newTemplate(t)
	rec := jenny()
	rec.Role = ""

	_, err := Populate(doc, rec, Options{})
	assert.ErrorIs(t, err, ErrPlaceholderVisible)
	assert.Equal(t, StateError, StateOf(doc))
	assert.NotEqual(t, LoadingRole, doc.Slot(page.SlotStaffRole).Text())
}

func TestPopulate_NilRecord(t *testing.T) {
	doc := newTemplate(t)

	_, err := Populate(doc, nil, Options{})
	assert.ErrorIs(t, err, ErrNoRecord)
	assert.Equal(t, StateError, StateOf(doc))
}

func TestPopulate_RendersStream(t *testing.T) {
	doc := newTemplate(t)
	rec := jenny()
	rec.ContentStream = []types.ContentItem{
		{Type: types.ContentImage, Src: "team.jpg"},
		{Type: types.ContentButton, Title: "Get a quote", Link: "/quote"},
	}

	res, err := Populate(doc, rec, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.Stream)
	assert.Equal(t, 2, res.Stream.Rendered)
	assert.Len(t, doc.Slot(page.SlotContentStream).Children(), 2)
}

func TestShowError_DistinctStates(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range []ErrorKind{ErrorInvalidPage, ErrorTemplatePage, ErrorLoadFailed, ErrorIncompleteRecord} {
		doc := newTemplate(t)
		ShowError(doc, kind)

		name := doc.Slot(page.SlotStaffName).Text()
		role := doc.Slot(page.SlotStaffRole).Text()
		assert.Equal(t, StateError, StateOf(doc))
		assert.True(t, IsSentinel(name))
		assert.True(t, IsSentinel(role))
		assert.False(t, seen[name], "error text %q reused", name)
		seen[name] = true
	}
	assert.Len(t, seen, 4)
}

func TestIsSentinel(t *testing.T) {
	for _, s := range []string{LoadingName, LoadingRole, TemplateName, TemplateRole, "ERROR: Invalid page", "Please refresh the page"} {
		assert.True(t, IsSentinel(s), s)
	}
	assert.False(t, IsSentinel("Jenny Roscoe"))
	assert.False(t, IsSentinel(""))
}
