package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sumonst21/opencollective-images/internal/domain"
)

const imagesURL = "https://images.opencollective.com"

func TestDeriveBannerParamsTierDefaults(t *testing.T) {
	req := domain.NewMembersRequest("webpack", "", "gold", false)
	params := DeriveBannerParams(req, url.Values{}, imagesURL)

	assert.True(t, params.IncludeAnonymous)
	assert.True(t, params.IsActive)
	assert.True(t, params.LinkToProfile)
}

func TestDeriveBannerParamsBackerDefaults(t *testing.T) {
	req := domain.NewMembersRequest("webpack", "backers", "", false)
	params := DeriveBannerParams(req, url.Values{}, imagesURL)

	assert.False(t, params.IncludeAnonymous)
	assert.False(t, params.IsActive)
	assert.True(t, params.LinkToProfile)
}

func TestDeriveBannerParamsExplicitOverrides(t *testing.T) {
	req := domain.NewMembersRequest("webpack", "", "gold", false)
	query := url.Values{
		"includeAnonymous": {"false"},
		"isActive":         {"false"},
	}
	params := DeriveBannerParams(req, query, imagesURL)

	assert.False(t, params.IncludeAnonymous)
	assert.False(t, params.IsActive)
}

func TestDeriveBannerParamsLinkToProfile(t *testing.T) {
	tests := []struct {
		name       string
		backerType string
		tierSlug   string
		want       bool
	}{
		{"contributors never link", "contributors", "", false},
		{"sponsors never link", "sponsors", "", false},
		{"backers link", "backers", "", true},
		{"tiers link", "", "sponsors-tier", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.NewMembersRequest("webpack", tt.backerType, tt.tierSlug, false)
			params := DeriveBannerParams(req, url.Values{}, imagesURL)
			assert.Equal(t, tt.want, params.LinkToProfile)
		})
	}
}

func TestDeriveBannerParamsButtonImage(t *testing.T) {
	sponsorReq := domain.NewMembersRequest("webpack", "sponsors", "", false)
	backerReq := domain.NewMembersRequest("webpack", "backers", "", false)

	sponsorParams := DeriveBannerParams(sponsorReq, url.Values{}, imagesURL)
	backerParams := DeriveBannerParams(backerReq, url.Values{}, imagesURL)

	assert.Equal(t, imagesURL+"/static/images/become_sponsor.svg", sponsorParams.ButtonImage)
	assert.Equal(t, imagesURL+"/static/images/become_backer.svg", backerParams.ButtonImage)

	suppressed := DeriveBannerParams(backerReq, url.Values{"button": {"false"}}, imagesURL)
	assert.Empty(t, suppressed.ButtonImage)
}

func TestDeriveBannerParamsNumericCoercion(t *testing.T) {
	req := domain.NewMembersRequest("webpack", "backers", "", false)
	query := url.Values{
		"limit":  {"not-a-number"},
		"width":  {"300"},
		"height": {""},
		"margin": {"12"},
	}
	params := DeriveBannerParams(req, query, imagesURL)

	assert.Equal(t, 0, params.Limit, "non-numeric limit means unbounded")
	assert.Equal(t, 300, params.Width)
	assert.Equal(t, 0, params.Height, "absent height means auto")
	assert.Equal(t, 12, params.Margin)
	assert.Equal(t, 64, params.AvatarHeight)
}
