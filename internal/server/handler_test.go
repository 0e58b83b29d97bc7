package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumonst21/opencollective-images/internal/config"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/pkg/errors"
	"go.uber.org/zap"
)

type fakeResolver struct {
	members []domain.Member
	stats   *domain.MembersStats
	err     error
	lastReq domain.MembersRequest
}

func (f *fakeResolver) Members(_ context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	f.lastReq = req
	return f.members, f.err
}

func (f *fakeResolver) MembersStats(_ context.Context, req domain.MembersRequest) (*domain.MembersStats, error) {
	f.lastReq = req
	return f.stats, f.err
}

type fakeRedirect struct {
	target  string
	err     error
	lastReq domain.MembersRequest
	lastPos int
}

func (f *fakeRedirect) Target(_ context.Context, req domain.MembersRequest, position int) (string, error) {
	f.lastReq = req
	f.lastPos = position
	return f.target, f.err
}

type fakeRenderer struct {
	out        []byte
	err        error
	lastParams domain.BannerParams
}

func (f *fakeRenderer) Banner(_ context.Context, _ []domain.Member, params domain.BannerParams) ([]byte, error) {
	f.lastParams = params
	return f.out, f.err
}

func newTestHandler(resolver *fakeResolver, redirect *fakeRedirect, renderer *fakeRenderer) *Handler {
	site := config.SiteConfig{
		WebsiteURL: "https://opencollective.com",
		ImagesURL:  "https://images.opencollective.com",
	}
	return NewHandler(resolver, redirect, renderer, site, zap.NewNop())
}

func doRequest(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestWebsiteRedirects301(t *testing.T) {
	redirect := &fakeRedirect{target: "https://acme.example/?utm_source=opencollective"}
	h := newTestHandler(&fakeResolver{}, redirect, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/sponsors/0/website")

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://acme.example/?utm_source=opencollective", rec.Header().Get("Location"))
	assert.Equal(t, domain.KindBackerType, redirect.lastReq.Kind())
	assert.Equal(t, 0, redirect.lastPos)
	assert.True(t, redirect.lastReq.IsActive, "isActive defaults to true for redirects")
}

func TestWebsiteTierRoute(t *testing.T) {
	redirect := &fakeRedirect{target: "https://opencollective.com/webpack#support"}
	h := newTestHandler(&fakeResolver{}, redirect, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/tiers/gold/3/website?isActive=false")

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, domain.KindTier, redirect.lastReq.Kind())
	assert.Equal(t, "gold", redirect.lastReq.TierSlug)
	assert.Equal(t, 3, redirect.lastPos)
	assert.False(t, redirect.lastReq.IsActive)
}

func TestWebsiteErrorsMapToNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"out of range", errors.NewPositionOutOfRangeError(5, 3)},
		{"transport failure", errors.NewAPIError("boom", 502, nil)},
		{"unsupported request", errors.NewUnsupportedRequestError("webpack")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeResolver{}, &fakeRedirect{err: tt.err}, &fakeRenderer{})
			rec := doRequest(t, h, "/webpack/backers/0/website")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Not found", rec.Body.String())
		})
	}
}

func TestWebsiteInvalidPosition(t *testing.T) {
	h := newTestHandler(&fakeResolver{}, &fakeRedirect{target: "https://x"}, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/backers/banana/website")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBannerRendersSVG(t *testing.T) {
	resolver := &fakeResolver{members: []domain.Member{{Slug: "acme"}}}
	renderer := &fakeRenderer{out: []byte("<svg/>")}
	h := newTestHandler(resolver, &fakeRedirect{}, renderer)

	rec := doRequest(t, h, "/webpack/backers.svg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=21600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<svg/>", rec.Body.String())
}

func TestBannerDerivedIsActiveFeedsResolution(t *testing.T) {
	resolver := &fakeResolver{members: []domain.Member{}}
	h := newTestHandler(resolver, &fakeRedirect{}, &fakeRenderer{out: []byte("<svg/>")})

	// tier banners default isActive to true before resolution
	doRequest(t, h, "/webpack/tiers/gold.svg")
	assert.True(t, resolver.lastReq.IsActive)

	// backer banners default it to false
	doRequest(t, h, "/webpack/backers.svg")
	assert.False(t, resolver.lastReq.IsActive)
}

func TestBannerResolutionFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.NewAPIError("boom", 502, nil)}
	h := newTestHandler(resolver, &fakeRedirect{}, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/backers.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadgeRendersStats(t *testing.T) {
	resolver := &fakeResolver{stats: &domain.MembersStats{Name: "backers", Count: 42}}
	h := newTestHandler(resolver, &fakeRedirect{}, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/backers/badge.svg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "backers")
	assert.Contains(t, rec.Body.String(), "42")
}

func TestBadgeTierRoute(t *testing.T) {
	resolver := &fakeResolver{stats: &domain.MembersStats{Slug: "gold", Name: "Gold", Count: 12}}
	h := newTestHandler(resolver, &fakeRedirect{}, &fakeRenderer{})

	rec := doRequest(t, h, "/webpack/tiers/gold/badge.svg")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.KindTier, resolver.lastReq.Kind())
	assert.Contains(t, rec.Body.String(), "Gold")
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&fakeResolver{}, &fakeRedirect{}, &fakeRenderer{})

	rec := doRequest(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
