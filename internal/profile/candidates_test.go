package profile

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestCandidates_ProductionDomain(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/")

	got := Candidates(page, DefaultSite(), "jenny-roscoe")

	assert.Equal(t, []string{
		"https://nextlevelcleaningltd.co.uk/data/jenny-roscoe.json",
		"https://nextlevelcleaningltd.co.uk/id/data/jenny-roscoe.json",
		"https://lay162.github.io/Next-Level-Cleaning/data/jenny-roscoe.json",
		"https://nextlevelcleaningltd.co.uk/id/director/data/jenny-roscoe.json",
		"https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/data/jenny-roscoe.json",
	}, got)
}

func TestCandidates_HostingPlatform(t *testing.T) {
	page := mustParse(t, "https://lay162.github.io/Next-Level-Cleaning/id/director/lauren-moore/")

	got := Candidates(page, DefaultSite(), "lauren-moore")

	require.NotEmpty(t, got)
	assert.Equal(t, "https://lay162.github.io/Next-Level-Cleaning/data/lauren-moore.json", got[0])
	assert.Equal(t, "https://lay162.github.io/data/lauren-moore.json", got[1])
	assert.Contains(t, got, "https://nextlevelcleaningltd.co.uk/data/lauren-moore.json")
}

func TestCandidates_LocalFile(t *testing.T) {
	page := mustParse(t, "file:///id/director/jenny-roscoe/index.html")

	got := Candidates(page, DefaultSite(), "jenny-roscoe")

	require.NotEmpty(t, got)
	assert.Equal(t, "file:///data/jenny-roscoe.json", got[0])
}

func TestCandidates_Deduplicated(t *testing.T) {
	page := mustParse(t, "http://localhost:8080/id/director/jenny-roscoe/")

	got := Candidates(page, DefaultSite(), "jenny-roscoe")

	seen := map[string]bool{}
	for _, c := range got {
		assert.False(t, seen[c], "duplicate candidate %s", c)
		seen[c] = true
	}
}

func TestCandidates_NoPageURL(t *testing.T) {
	got := Candidates(nil, DefaultSite(), "jenny-roscoe")

	assert.Equal(t, []string{
		"https://lay162.github.io/Next-Level-Cleaning/data/jenny-roscoe.json",
		"https://nextlevelcleaningltd.co.uk/data/jenny-roscoe.json",
	}, got)
}
