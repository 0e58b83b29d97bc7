package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/internal/service/graphql"
	"github.com/sumonst21/opencollective-images/pkg/errors"
	"go.uber.org/zap"
)

// Fetcher selects the upstream query variant matching a request and
// normalizes heterogeneous responses into canonical Member lists.
type Fetcher struct {
	gql    graphql.Executor
	logger *zap.Logger
}

func NewFetcher(gql graphql.Executor, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		gql:    gql,
		logger: logger,
	}
}

const contributorsQuery = `
query Collective($collectiveSlug: String) {
  Collective(slug: $collectiveSlug) {
    data
  }
}
`

const backersQuery = `
query allMembers($collectiveSlug: String!, $type: String!, $role: String!, $isActive: Boolean) {
  allMembers(collectiveSlug: $collectiveSlug, type: $type, role: $role, isActive: $isActive, orderBy: "totalDonations") {
    member {
      type
      slug
      name
      image
      website
      twitterHandle
    }
  }
}
`

const tierOrdersQuery = `
query Collective($collectiveSlug: String, $tierSlug: [String], $isActive: Boolean) {
  Collective(slug: $collectiveSlug) {
    tiers(slugs: $tierSlug) {
      orders(isActive: $isActive) {
        fromCollective {
          type
          slug
          name
          image
          website
          twitterHandle
        }
      }
    }
  }
}
`

// Members executes the query variant matching the request kind and returns
// the normalized, slug-deduplicated member list in upstream ranking order.
func (f *Fetcher) Members(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	switch req.Kind() {
	case domain.KindContributors:
		return f.fetchContributors(ctx, req)
	case domain.KindBackerType:
		return f.fetchBackers(ctx, req)
	case domain.KindTier:
		return f.fetchTierMembers(ctx, req)
	default:
		return nil, errors.NewUnsupportedRequestError(req.CollectiveSlug)
	}
}

func (f *Fetcher) fetchContributors(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	var result struct {
		Collective struct {
			Data struct {
				GithubContributors json.RawMessage `json:"githubContributors"`
			} `json:"data"`
		} `json:"Collective"`
	}

	vars := map[string]any{"collectiveSlug": req.CollectiveSlug}
	if err := f.gql.Execute(ctx, contributorsQuery, vars, &result); err != nil {
		return nil, err
	}

	usernames, err := orderedKeys(result.Collective.Data.GithubContributors)
	if err != nil {
		return nil, errors.NewAPIError("unexpected contributors shape", 502, nil).WithCause(err)
	}

	members := make([]domain.Member, 0, len(usernames))
	for _, username := range usernames {
		image := fmt.Sprintf("https://avatars.githubusercontent.com/%s?s=96", username)
		website := "https://github.com/" + username
		members = append(members, domain.Member{
			Slug:    username,
			Type:    domain.MemberTypeGithubUser,
			Image:   &image,
			Website: &website,
		})
	}

	f.logger.Debug("Resolved contributors",
		zap.String("collective", req.CollectiveSlug),
		zap.Int("count", len(members)),
	)
	return members, nil
}

func (f *Fetcher) fetchBackers(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	memberType := domain.MemberTypeUser
	if req.IsSponsor() {
		memberType = domain.MemberTypeOrganization
	}

	var result struct {
		AllMembers []struct {
			Member domain.Member `json:"member"`
		} `json:"allMembers"`
	}

	vars := map[string]any{
		"collectiveSlug": req.CollectiveSlug,
		"type":           string(memberType),
		"role":           "BACKER",
		"isActive":       req.IsActive,
	}
	if err := f.gql.Execute(ctx, backersQuery, vars, &result); err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(result.AllMembers))
	for _, m := range result.AllMembers {
		members = append(members, m.Member)
	}

	members = domain.DedupBySlug(members)
	f.logger.Debug("Resolved backers",
		zap.String("collective", req.CollectiveSlug),
		zap.String("type", string(memberType)),
		zap.Int("count", len(members)),
	)
	return members, nil
}

func (f *Fetcher) fetchTierMembers(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	var result struct {
		Collective struct {
			Tiers []struct {
				Orders []struct {
					FromCollective domain.Member `json:"fromCollective"`
				} `json:"orders"`
			} `json:"tiers"`
		} `json:"Collective"`
	}

	vars := map[string]any{
		"collectiveSlug": req.CollectiveSlug,
		"tierSlug":       req.TierSlugs(),
		"isActive":       req.IsActive,
	}
	if err := f.gql.Execute(ctx, tierOrdersQuery, vars, &result); err != nil {
		return nil, err
	}

	// Flatten all tiers' orders in requested tier order, then dedup so a
	// party backing several tiers keeps its first-seen rank.
	var members []domain.Member
	for _, tier := range result.Collective.Tiers {
		for _, order := range tier.Orders {
			members = append(members, order.FromCollective)
		}
	}

	members = domain.DedupBySlug(members)
	f.logger.Debug("Resolved tier members",
		zap.String("collective", req.CollectiveSlug),
		zap.Strings("tiers", req.TierSlugs()),
		zap.Int("count", len(members)),
	)
	return members, nil
}

// orderedKeys extracts object keys in document order. Contributor maps are
// ranked upstream, so Go map iteration order would scramble the ranking.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
