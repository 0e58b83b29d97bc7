package service

import (
	"context"

	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/pkg/errors"
	"go.uber.org/zap"
)

const backersStatsQuery = `
query Collective($collectiveSlug: String) {
  Collective(slug: $collectiveSlug) {
    stats {
      backers {
        all
        users
        organizations
      }
    }
  }
}
`

const tierStatsQuery = `
query Collective($collectiveSlug: String, $tierSlug: String) {
  Collective(slug: $collectiveSlug) {
    tiers(slug: $tierSlug) {
      slug
      name
      stats {
        totalDistinctOrders
      }
    }
  }
}
`

// MembersStats resolves the aggregate count for a backer type (organizations
// vs users) or a tier (distinct orders of the first matching tier only).
func (f *Fetcher) MembersStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error) {
	switch req.Kind() {
	case domain.KindBackerType, domain.KindContributors:
		return f.fetchBackersStats(ctx, req)
	case domain.KindTier:
		return f.fetchTierStats(ctx, req)
	default:
		return nil, errors.NewUnsupportedRequestError(req.CollectiveSlug)
	}
}

func (f *Fetcher) fetchBackersStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error) {
	var result struct {
		Collective struct {
			Stats struct {
				Backers struct {
					All           int `json:"all"`
					Users         int `json:"users"`
					Organizations int `json:"organizations"`
				} `json:"backers"`
			} `json:"stats"`
		} `json:"Collective"`
	}

	vars := map[string]any{"collectiveSlug": req.CollectiveSlug}
	if err := f.gql.Execute(ctx, backersStatsQuery, vars, &result); err != nil {
		return nil, err
	}

	count := result.Collective.Stats.Backers.Users
	if req.IsSponsor() {
		count = result.Collective.Stats.Backers.Organizations
	}

	f.logger.Debug("Resolved backer stats",
		zap.String("collective", req.CollectiveSlug),
		zap.String("backerType", req.BackerType),
		zap.Int("count", count),
	)
	return &domain.MembersStats{
		Name:  req.BackerType,
		Count: count,
	}, nil
}

func (f *Fetcher) fetchTierStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error) {
	var result struct {
		Collective struct {
			Tiers []struct {
				Slug  string `json:"slug"`
				Name  string `json:"name"`
				Stats struct {
					TotalDistinctOrders int `json:"totalDistinctOrders"`
				} `json:"stats"`
			} `json:"tiers"`
		} `json:"Collective"`
	}

	vars := map[string]any{
		"collectiveSlug": req.CollectiveSlug,
		"tierSlug":       req.TierSlug,
	}
	if err := f.gql.Execute(ctx, tierStatsQuery, vars, &result); err != nil {
		return nil, err
	}

	tiers := result.Collective.Tiers
	if len(tiers) == 0 {
		return nil, errors.NewAPIError("tier not found", 404, map[string]any{
			"collectiveSlug": req.CollectiveSlug,
			"tierSlug":       req.TierSlug,
		})
	}

	// Only the first matching tier is counted even when several slugs were
	// requested. Known limitation of the upstream tier stats contract.
	tier := tiers[0]
	return &domain.MembersStats{
		Name:  tier.Name,
		Slug:  tier.Slug,
		Count: tier.Stats.TotalDistinctOrders,
	}, nil
}
