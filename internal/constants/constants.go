package constants

import "time"

var CacheTTL = struct {
	Members      time.Duration
	MembersStats time.Duration
	Collective   time.Duration
}{
	Members:      10 * time.Minute,
	MembersStats: 10 * time.Minute,
	Collective:   10 * time.Minute,
}

// Cache key namespaces. Member and stats keys get a digest of the request
// parameters appended; collective keys use the slug directly.
var CacheNamespace = struct {
	Members      string
	MembersStats string
	Collective   string
}{
	Members:      "users",
	MembersStats: "members_stats",
	Collective:   "collective",
}

var APIConfig = struct {
	GraphqlTimeout time.Duration
	AvatarTimeout  time.Duration
}{
	GraphqlTimeout: 10 * time.Second,
	AvatarTimeout:  5 * time.Second,
}

// UTM defaults appended to redirect targets. utm_campaign is the collective
// slug and is filled in per request.
var UTMDefaults = struct {
	Source string
	Medium string
}{
	Source: "opencollective",
	Medium: "github",
}

var BannerDefaults = struct {
	AvatarHeight      int
	Margin            int
	AvatarConcurrency int
}{
	AvatarHeight:      64,
	Margin:            5,
	AvatarConcurrency: 8,
}

var HTTPConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	BannerMaxAge    int
}{
	ReadTimeout:     10 * time.Second,
	WriteTimeout:    30 * time.Second,
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	BannerMaxAge:    21600, // 6 hours, banner responses are edge-cacheable
}
