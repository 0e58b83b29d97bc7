package domain

// Collective is the minimal projection of a collective profile needed by
// image handlers (logo, background).
type Collective struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Image           *string `json:"image,omitempty"`
	BackgroundImage *string `json:"backgroundImage,omitempty"`
}

// HasImage returns true if the collective has a non-empty logo URL.
func (c *Collective) HasImage() bool {
	return c != nil && c.Image != nil && *c.Image != ""
}
