package service

import (
	"context"
	"net/url"

	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/pkg/errors"
)

// MembersResolver is the slice of Resolver the redirect service needs.
type MembersResolver interface {
	Members(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error)
}

// Redirect computes the target URL for a ranked position within a resolved
// member list. Position len(list) is a sentinel routed to the collective's
// support anchor; anything past it is out of range.
type Redirect struct {
	resolver   MembersResolver
	websiteURL string
}

func NewRedirect(resolver MembersResolver, websiteURL string) *Redirect {
	return &Redirect{
		resolver:   resolver,
		websiteURL: websiteURL,
	}
}

// Target resolves the member list and returns the fully qualified redirect
// URL for the given zero-based position, with default UTM parameters
// appended for any not already present.
func (s *Redirect) Target(ctx context.Context, req domain.MembersRequest, position int) (string, error) {
	members, err := s.resolver.Members(ctx, req)
	if err != nil {
		return "", err
	}

	if position > len(members) {
		return "", errors.NewPositionOutOfRangeError(position, len(members))
	}

	var target string
	if position == len(members) {
		target = s.websiteURL + "/" + req.CollectiveSlug + "#support"
	} else {
		member := members[position]
		target = s.websiteURL + "/" + member.Slug
		// Only the sponsor branch consults website/twitter; backer and
		// tier redirects always go to the profile page.
		if req.IsSponsor() {
			if w := member.WebsiteURL(); w != "" {
				target = w
			} else if tw := member.TwitterURL(); tw != "" {
				target = tw
			}
		}
	}

	return appendUTM(target, req.CollectiveSlug)
}

// appendUTM adds the default tracking parameters without clobbering any
// query parameter the target already carries.
func appendUTM(target, collectiveSlug string) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", errors.NewAPIError("invalid redirect target", 404, map[string]any{
			"target": target,
		}).WithCause(err)
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}

	query := parsed.Query()
	if !query.Has("utm_source") {
		query.Set("utm_source", constants.UTMDefaults.Source)
	}
	if !query.Has("utm_medium") {
		query.Set("utm_medium", constants.UTMDefaults.Medium)
	}
	if !query.Has("utm_campaign") {
		query.Set("utm_campaign", collectiveSlug)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
