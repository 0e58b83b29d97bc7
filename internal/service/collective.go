package service

import (
	"context"

	"github.com/sumonst21/opencollective-images/internal/domain"
)

const collectiveQuery = `
query Collective($collectiveSlug: String) {
  Collective(slug: $collectiveSlug) {
    name
    type
    image
    backgroundImage
  }
}
`

// Collective resolves a collective's profile projection (name, type, logo,
// background image).
func (f *Fetcher) Collective(ctx context.Context, collectiveSlug string) (*domain.Collective, error) {
	var result struct {
		Collective domain.Collective `json:"Collective"`
	}

	vars := map[string]any{"collectiveSlug": collectiveSlug}
	if err := f.gql.Execute(ctx, collectiveQuery, vars, &result); err != nil {
		return nil, err
	}

	return &result.Collective, nil
}
