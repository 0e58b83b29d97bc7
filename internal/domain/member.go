package domain

import "strings"

// MemberType classifies the party behind a membership.
type MemberType string

const (
	MemberTypeUser         MemberType = "USER"
	MemberTypeOrganization MemberType = "ORGANIZATION"
	MemberTypeGithubUser   MemberType = "GITHUB_USER"
)

// Member is the canonical party record used by every downstream consumer,
// regardless of which upstream query shape produced it. Within one resolved
// list slugs are unique and order reflects upstream ranking.
type Member struct {
	Slug          string     `json:"slug"`
	Type          MemberType `json:"type"`
	Name          string     `json:"name,omitempty"`
	Image         *string    `json:"image,omitempty"`
	Website       *string    `json:"website,omitempty"`
	TwitterHandle *string    `json:"twitterHandle,omitempty"`
}

// HasImage returns true if the member has a non-empty avatar URL.
func (m *Member) HasImage() bool {
	return m != nil && m.Image != nil && *m.Image != ""
}

// ImageURL returns the avatar URL or empty string.
func (m *Member) ImageURL() string {
	if m.HasImage() {
		return *m.Image
	}
	return ""
}

// WebsiteURL returns the member's own website or empty string.
func (m *Member) WebsiteURL() string {
	if m == nil || m.Website == nil {
		return ""
	}
	return *m.Website
}

// TwitterURL derives a profile URL from the twitter handle, or empty string.
func (m *Member) TwitterURL() string {
	if m == nil || m.TwitterHandle == nil || *m.TwitterHandle == "" {
		return ""
	}
	return "https://twitter.com/" + *m.TwitterHandle
}

// IsAnonymous reports whether the membership hides its party. Anonymous
// orders come back without a slug.
func (m *Member) IsAnonymous() bool {
	return m == nil || m.Slug == ""
}

// IsSponsorLabel is the single place encoding the contract that any
// backer/tier label containing "sponsor" (case-insensitive) implies
// organization-style treatment: organization membership queries and
// website/twitter precedence in redirects.
func IsSponsorLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "sponsor")
}

// DedupBySlug removes later duplicates, keeping the first occurrence so the
// upstream ranking order is preserved.
func DedupBySlug(members []Member) []Member {
	seen := make(map[string]struct{}, len(members))
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m.Slug]; ok {
			continue
		}
		seen[m.Slug] = struct{}{}
		out = append(out, m)
	}
	return out
}
