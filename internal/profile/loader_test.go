package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nextlevelcleaning/cards/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves bodies by URL and records every request.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return nil, &fetch.Error{URL: url, Message: "HTTP status 404", StatusCode: http.StatusNotFound}
	}
	return []byte(body), nil
}

const jennyDoc = `{
	"name": "Jenny Roscoe",
	"role": "Director",
	"theme": "purple",
	"contentStream": [{"type": "image", "src": "team.jpg"}]
}`

func TestLoad_StopsAtFirstSuccess(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/")
	candidates := Candidates(page, DefaultSite(), "jenny-roscoe")
	require.GreaterOrEqual(t, len(candidates), 4)

	// First two candidates fail, the third succeeds.
	f := &fakeFetcher{bodies: map[string]string{
		candidates[2]: jennyDoc,
		candidates[3]: `{"name": "Wrong"}`,
	}}
	loader := NewLoader(f, Options{Site: DefaultSite()})

	rec, report, err := loader.Load(context.Background(), page, "jenny-roscoe")
	require.NoError(t, err)

	assert.Equal(t, "Jenny Roscoe", rec.Name)
	assert.Equal(t, candidates[:3], f.calls)
	assert.Equal(t, candidates[2], report.Source)
	require.Len(t, report.Attempts, 3)
	assert.Equal(t, http.StatusNotFound, report.Attempts[0].StatusCode)
	assert.False(t, report.Attempts[0].OK())
	assert.True(t, report.Attempts[2].OK())
	assert.False(t, report.UsedFallback)
}

func TestLoad_AllFail(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/cleaner/ghost-person/")
	f := &fakeFetcher{bodies: map[string]string{}}
	loader := NewLoader(f, Options{Site: DefaultSite()})

	rec, report, err := loader.Load(context.Background(), page, "ghost-person")
	require.Error(t, err)
	assert.Nil(t, rec)

	assert.True(t, errors.Is(err, ErrProfileNotFound))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost-person", notFound.Slug)
	assert.Equal(t, Candidates(page, DefaultSite(), "ghost-person"), notFound.Tried())
	assert.Len(t, report.Attempts, len(f.calls))
}

func TestLoad_FallbackDisabledByDefault(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/lauren-moore/")
	loader := NewLoader(&fakeFetcher{bodies: map[string]string{}}, Options{Site: DefaultSite()})

	_, _, err := loader.Load(context.Background(), page, "lauren-moore")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

// The built-in fallback table is a temporary seam: remove FallbackTable, AllowFallback and
// these fallback tests once every card has a published data document.
func TestLoad_FallbackEnabled(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/lauren-moore/")
	loader := NewLoader(&fakeFetcher{bodies: map[string]string{}}, Options{Site: DefaultSite(), AllowFallback: true})

	rec, report, err := loader.Load(context.Background(), page, "lauren-moore")
	require.NoError(t, err)

	assert.True(t, report.UsedFallback)
	assert.Empty(t, report.Source)
	assert.Equal(t, "Lauren Moore", rec.Name)
	assert.Equal(t, "pink", rec.Theme)
	assert.Equal(t, "+447700900001", rec.Phone)

	// Returned records are copies.
	rec.Social.Facebook = "changed"
	assert.NotEqual(t, "changed", FallbackTable["lauren-moore"].Social.Facebook)
}

func TestLoad_FallbackUnknownSlug(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jane-doe/")
	loader := NewLoader(&fakeFetcher{bodies: map[string]string{}}, Options{Site: DefaultSite(), AllowFallback: true})

	_, _, err := loader.Load(context.Background(), page, "jane-doe")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLoad_InvalidJSONIsFailedCandidate(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/")
	candidates := Candidates(page, DefaultSite(), "jenny-roscoe")
	f := &fakeFetcher{bodies: map[string]string{
		candidates[0]: `<html>not json</html>`,
		candidates[1]: jennyDoc,
	}}
	loader := NewLoader(f, Options{Site: DefaultSite()})

	rec, report, err := loader.Load(context.Background(), page, "jenny-roscoe")
	require.NoError(t, err)
	assert.Equal(t, "Jenny Roscoe", rec.Name)

	var docErr *DocumentError
	require.ErrorAs(t, report.Attempts[0].Err, &docErr)
	assert.Equal(t, candidates[0], docErr.URL)
}

func TestLoad_StrictContentRejectsUnknownType(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/")
	candidates := Candidates(page, DefaultSite(), "jenny-roscoe")
	bad := `{"name": "Jenny Roscoe", "role": "Director", "contentStream": [{"type": "hologram"}]}`
	f := &fakeFetcher{bodies: map[string]string{
		candidates[0]: bad,
		candidates[1]: jennyDoc,
	}}

	lenient := NewLoader(f, Options{Site: DefaultSite()})
	_, report, err := lenient.Load(context.Background(), page, "jenny-roscoe")
	require.NoError(t, err)
	assert.Equal(t, candidates[0], report.Source)

	strict := NewLoader(f, Options{Site: DefaultSite(), StrictContent: true})
	_, report, err = strict.Load(context.Background(), page, "jenny-roscoe")
	require.NoError(t, err)
	assert.Equal(t, candidates[1], report.Source)
}

func TestLoad_ContextCanceled(t *testing.T) {
	page := mustParse(t, "https://nextlevelcleaningltd.co.uk/id/director/jenny-roscoe/")
	f := &fakeFetcher{bodies: map[string]string{}}
	loader := NewLoader(f, Options{Site: DefaultSite()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loader.Load(ctx, page, "jenny-roscoe")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestLoad_EmptySlug(t *testing.T) {
	loader := NewLoader(&fakeFetcher{}, Options{})
	_, _, err := loader.Load(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestLoad_OverHTTP(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/data/jenny-roscoe.json" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, jennyDoc)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	page := mustParse(t, srv.URL+"/id/director/jenny-roscoe/")
	loader := NewLoader(fetch.NewClient(nil), Options{Site: Site{ProductionDomain: "nextlevelcleaningltd.co.uk"}})

	rec, report, err := loader.Load(context.Background(), page, "jenny-roscoe")
	require.NoError(t, err)
	assert.Equal(t, "Jenny Roscoe", rec.Name)
	assert.Equal(t, srv.URL+"/data/jenny-roscoe.json", report.Source)
	assert.Equal(t, []string{"/data/jenny-roscoe.json"}, paths)
}
