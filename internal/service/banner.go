package service

import (
	"fmt"
	"net/url"

	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/internal/util"
)

// DeriveBannerParams computes the renderer option set from the request and
// its raw query params. Pure derivation, no I/O. The IsActive result must
// be fed back into the resolution request before resolving members.
func DeriveBannerParams(req domain.MembersRequest, query url.Values, imagesURL string) domain.BannerParams {
	selector := req.Selector()
	isTier := req.Kind() == domain.KindTier

	params := domain.BannerParams{
		CollectiveSlug: req.CollectiveSlug,
		Limit:          util.ParseIntDefault(query.Get("limit"), 0),
		Width:          util.ParseIntDefault(query.Get("width"), 0),
		Height:         util.ParseIntDefault(query.Get("height"), 0),
		AvatarHeight:   util.ParseIntDefault(query.Get("avatarHeight"), constants.BannerDefaults.AvatarHeight),
		Margin:         util.ParseIntDefault(query.Get("margin"), constants.BannerDefaults.Margin),
	}

	// includeAnonymous and isActive default to true for tiers only.
	if v := query.Get("includeAnonymous"); v != "" {
		params.IncludeAnonymous = util.ParseBoolDefaultFalse(v)
	} else {
		params.IncludeAnonymous = isTier
	}
	if v := query.Get("isActive"); v != "" {
		params.IsActive = util.ParseBoolDefaultFalse(v)
	} else {
		params.IsActive = isTier
	}

	params.LinkToProfile = selector != "contributors" && selector != "sponsors"

	if util.ParseBoolDefaultTrue(query.Get("button")) {
		variant := "backer"
		if domain.IsSponsorLabel(selector) {
			variant = "sponsor"
		}
		params.ButtonImage = fmt.Sprintf("%s/static/images/become_%s.svg", imagesURL, variant)
	}

	return params
}
