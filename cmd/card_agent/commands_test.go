package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/types"
)

const laurenDoc = `{
  "name": "Lauren Moore",
  "role": "Director",
  "email": "lauren@nextlevelcleaningltd.co.uk",
  "phone": "+447700900001",
  "theme": "pink",
  "contentStream": [
    {"type": "banner", "src": "spring-offer.jpg", "title": "Spring offer"},
    {"type": "image", "src": "before.jpg", "alt": "Before"}
  ]
}`

// resetFlags restores every package-level flag variable to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	configPath, siteDir, logLevel, verbose = "", "", "error", false
	buildConcurrency, buildSkipQR, buildDomain = 0, false, ""
	previewOut, previewBaseURL, previewShowQR, previewQRMode, previewFallback = "", "", false, "", false
	qrOut, qrSize, qrDataURI, qrCategory = "", qr.Size, false, string(types.CategoryDirector)
	servePort = 0
}

func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "lauren-moore.json"), []byte(laurenDoc), 0o644))
	return dir
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunResolve(t *testing.T) {
	resetFlags(t)
	cmd, buf := testCmd()

	err := runResolve(cmd, []string{"https://lay162.github.io/Next-Level-Cleaning/id/director/lauren-moore/"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "RESOLVED IDENTITY")
	assert.Contains(t, output, "Canonical: https://nextlevelcleaningltd.co.uk/id/director/lauren-moore/\n")
	assert.Contains(t, output, "CANDIDATE LOCATIONS")
	assert.Contains(t, output, ". https://lay162.github.io/Next-Level-Cleaning/data/lauren-moore.json\n")
}

func TestRunResolve_TemplatePage(t *testing.T) {
	resetFlags(t)
	cmd, _ := testCmd()

	err := runResolve(cmd, []string{"https://nextlevelcleaningltd.co.uk/id/template/"})
	assert.Error(t, err)
}

func TestRunQR(t *testing.T) {
	resetFlags(t)
	cmd, buf := testCmd()
	qrOut = filepath.Join(t.TempDir(), "qr.png")
	qrDataURI = true
	qrCategory = "cleaner"

	require.NoError(t, runQR(cmd, []string{"sam-hill"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "https://nextlevelcleaningltd.co.uk/id/cleaner/sam-hill/", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "data:image/png;base64,"))
	assert.FileExists(t, qrOut)
}

func TestRunQR_FromPageURL(t *testing.T) {
	resetFlags(t)
	cmd, buf := testCmd()

	require.NoError(t, runQR(cmd, []string{"https://lay162.github.io/Next-Level-Cleaning/id/manager/alex-day/index.html"}))
	assert.Equal(t, "https://nextlevelcleaningltd.co.uk/id/manager/alex-day/\n", buf.String())
}

func TestRunValidate(t *testing.T) {
	resetFlags(t)
	site := newSite(t)
	siteDir = site
	require.NoError(t, os.WriteFile(filepath.Join(site, "data", "broken.json"),
		[]byte(`{"name":"X","role":"Y","contentStream":[{"type":"gallery"}]}`), 0o644))

	cmd, buf := testCmd()
	err := runValidate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents invalid")
	assert.Contains(t, buf.String(), "INVALID PROFILE DOCUMENT")
	assert.Contains(t, buf.String(), "contentStream.0.type")

	cmd, buf = testCmd()
	require.NoError(t, runValidate(cmd, []string{filepath.Join(site, "data", "lauren-moore.json")}))
	assert.Contains(t, buf.String(), "Validation passed: 1 documents")
}

func TestRunBuild(t *testing.T) {
	resetFlags(t)
	site := newSite(t)
	siteDir = site
	buildSkipQR = true

	cmd, buf := testCmd()
	require.NoError(t, runBuild(cmd, nil))

	output := buf.String()
	assert.Contains(t, output, "CARD BUILD")
	assert.Contains(t, output, "✓ Lauren Moore (director/lauren-moore)")
	assert.Contains(t, output, "⚠ Jenny Roscoe (director/jenny-roscoe)")
	assert.Contains(t, output, "2 cards updated, 1 warnings")
	assert.FileExists(t, filepath.Join(site, "id", "director", "lauren-moore", "contact.vcf"))
	assert.NoFileExists(t, filepath.Join(site, "id", "director", "lauren-moore", "qr.png"))
}

func TestRunBuild_ConfigRoster(t *testing.T) {
	resetFlags(t)
	site := newSite(t)
	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{
		"site_dir": "`+filepath.ToSlash(site)+`",
		"roster": [{"slug": "sam-hill", "category": "cleaner", "name": "Sam Hill"}]
	}`), 0o644))
	configPath = cfgFile

	cmd, buf := testCmd()
	require.NoError(t, runBuild(cmd, nil))

	assert.Contains(t, buf.String(), "1 cards updated, 1 warnings")
	assert.FileExists(t, filepath.Join(site, "id", "cleaner", "sam-hill", "qr.png"))
}

func TestRunPreview(t *testing.T) {
	resetFlags(t)
	siteDir = newSite(t)
	previewShowQR = true

	cmd, buf := testCmd()
	require.NoError(t, runPreview(cmd, []string{"/id/director/lauren-moore/"}))

	html := buf.String()
	assert.Contains(t, html, "Lauren Moore - Next Level Cleaning Ltd")
	assert.Contains(t, html, `data-theme="pink"`)
	assert.Contains(t, html, "mailto:lauren@nextlevelcleaningltd.co.uk")
	assert.Contains(t, html, "spring-offer.jpg")
	assert.Contains(t, html, "data:image/png;base64,")
	assert.NotContains(t, html, "Please wait...")
}

func TestRunPreview_MissingDocument(t *testing.T) {
	resetFlags(t)
	site := newSite(t)
	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{
		"site_dir": "`+filepath.ToSlash(site)+`",
		"production_domain": "localhost",
		"hosting_base_url": "http://127.0.0.1:1",
		"fetch_timeout_seconds": 1
	}`), 0o644))
	configPath = cfgFile
	previewOut = filepath.Join(t.TempDir(), "out.html")

	cmd, _ := testCmd()
	err := runPreview(cmd, []string{"/id/director/nobody-here/"})
	require.Error(t, err)

	html, readErr := os.ReadFile(previewOut)
	require.NoError(t, readErr)
	assert.NotContains(t, string(html), "Please wait...")
}

func TestPreviewTarget(t *testing.T) {
	resetFlags(t)

	u, dir, err := previewTarget("id/director/lauren-moore", "/srv/site")
	require.NoError(t, err)
	assert.Equal(t, "file:///id/director/lauren-moore/", u.String())
	assert.Equal(t, filepath.Join("/srv/site", "id", "director", "lauren-moore"), dir)

	previewBaseURL = "http://localhost:8080"
	u, dir, err = previewTarget("/id/director/lauren-moore/", "/srv/site")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/id/director/lauren-moore/", u.String())
	assert.Empty(t, dir)
}
