package domain

// BannerParams is the option set handed to the banner renderer. Derived
// from request query params before member resolution; pure data, no I/O.
type BannerParams struct {
	CollectiveSlug   string
	Limit            int // 0 means unbounded
	Width            int // 0 means auto
	Height           int // 0 means auto
	AvatarHeight     int
	Margin           int
	ButtonImage      string // empty when the become-backer/sponsor button is suppressed
	LinkToProfile    bool
	IncludeAnonymous bool
	IsActive         bool
}
