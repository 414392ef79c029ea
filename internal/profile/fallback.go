package profile

import "github.com/nextlevelcleaning/cards/internal/types"

// FallbackTable holds built-in records for employees whose data must render even when every
// candidate location is unreachable. It is consulted only when Options.AllowFallback is set
// and is meant to be removed once the data documents are reliably deployed.
var FallbackTable = map[string]types.ProfileRecord{
	"lauren-moore": fallbackRecord("Lauren Moore", "lauren@nextlevelcleaningltd.co.uk", "+447700900001", "pink"),
	"jenny-roscoe": fallbackRecord("Jenny Roscoe", "jenny@nextlevelcleaningltd.co.uk", "+447700900002", "purple"),
}

func fallbackRecord(name, email, phone, theme string) types.ProfileRecord {
	return types.ProfileRecord{
		Name:         name,
		Role:         "Director",
		Company:      types.DefaultCompany,
		Email:        email,
		Phone:        phone,
		Website:      "https://nextlevelcleaningltd.co.uk",
		ProfileImage: "profile.jpg",
		ContactVcf:   "contact.vcf",
		Theme:        theme,
		Description:  "Professional commercial cleaning services",
		Social: &types.Social{
			Facebook:  "https://www.facebook.com/NextLevelCleaningWirral",
			Instagram: "https://www.instagram.com/NextLevelCleaningWirral",
			TikTok:    "https://www.tiktok.com/@nextlevelcleaningwirral",
			LinkedIn:  "https://www.linkedin.com/company/nextlevelcleaningwirral",
		},
		ContentStream: []types.ContentItem{},
	}
}

// fallbackFor returns a private copy of the fallback record for slug.
func fallbackFor(slug string) (*types.ProfileRecord, bool) {
	rec, ok := FallbackTable[slug]
	if !ok {
		return nil, false
	}
	if rec.Social != nil {
		social := *rec.Social
		rec.Social = &social
	}
	rec.ContentStream = append([]types.ContentItem{}, rec.ContentStream...)
	return &rec, true
}
