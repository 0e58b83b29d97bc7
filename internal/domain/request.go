package domain

import (
	"strconv"
	"strings"
)

// RequestKind is the closed set of query variants. It is resolved once when
// the request is built instead of re-inspecting strings in every component.
type RequestKind int

const (
	KindUnknown RequestKind = iota
	KindContributors
	KindBackerType
	KindTier
)

func (k RequestKind) String() string {
	switch k {
	case KindContributors:
		return "contributors"
	case KindBackerType:
		return "backerType"
	case KindTier:
		return "tier"
	default:
		return "unknown"
	}
}

// MembersRequest discriminates which upstream query variant applies and
// carries the inputs that query needs. Build it with NewMembersRequest so
// the kind is fixed at the boundary.
type MembersRequest struct {
	CollectiveSlug string
	BackerType     string
	TierSlug       string
	IsActive       bool

	kind RequestKind
}

func NewMembersRequest(collectiveSlug, backerType, tierSlug string, isActive bool) MembersRequest {
	r := MembersRequest{
		CollectiveSlug: collectiveSlug,
		BackerType:     backerType,
		TierSlug:       tierSlug,
		IsActive:       isActive,
	}
	switch {
	case backerType == "contributors":
		r.kind = KindContributors
	case backerType != "":
		r.kind = KindBackerType
	case tierSlug != "":
		r.kind = KindTier
	}
	return r
}

// WithIsActive returns a copy with the isActive filter replaced. Banner
// requests compute the filter from query params before resolution.
func (r MembersRequest) WithIsActive(isActive bool) MembersRequest {
	r.IsActive = isActive
	return r
}

func (r MembersRequest) Kind() RequestKind {
	return r.kind
}

// Selector is the raw label driving sponsor/backer presentation choices:
// the tier slug when set, otherwise the backer type.
func (r MembersRequest) Selector() string {
	if r.TierSlug != "" {
		return r.TierSlug
	}
	return r.BackerType
}

// IsSponsor reports whether the request's selector implies sponsor-style
// (organization) treatment.
func (r MembersRequest) IsSponsor() bool {
	return IsSponsorLabel(r.Selector())
}

// TierSlugs splits the comma-separated tier list.
func (r MembersRequest) TierSlugs() []string {
	parts := strings.Split(r.TierSlug, ",")
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			slugs = append(slugs, trimmed)
		}
	}
	return slugs
}

// CacheParams flattens the request into the parameter map hashed into its
// cache key. Every field participates so any change produces a new key.
func (r MembersRequest) CacheParams() map[string]string {
	return map[string]string{
		"collectiveSlug": r.CollectiveSlug,
		"backerType":     r.BackerType,
		"tierSlug":       r.TierSlug,
		"isActive":       strconv.FormatBool(r.IsActive),
	}
}
