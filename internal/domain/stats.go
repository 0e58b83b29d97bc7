package domain

// MembersStats is an aggregate count with its label, resolved from a
// different upstream query than member lists and cached under its own
// namespace.
//
// For tier requests only the first matching tier is counted even when
// several tier slugs are supplied. Known limitation carried over from the
// upstream API contract.
type MembersStats struct {
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Count int    `json:"count"`
}
