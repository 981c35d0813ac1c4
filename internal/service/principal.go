package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jjenkins/gabinete/internal/model"
)

// PrincipalResolver follows a bill's "principal proposal" references to the root bill
type PrincipalResolver struct {
	camara  *CamaraClient
	authors *AuthorResolver
	maxHops int
}

// NewPrincipalResolver creates a new PrincipalResolver that gives up after maxHops fetches
func NewPrincipalResolver(camara *CamaraClient, authors *AuthorResolver, maxHops int) *PrincipalResolver {
	return &PrincipalResolver{
		camara:  camara,
		authors: authors,
		maxHops: maxHops,
	}
}

// Resolve returns the root of the reference chain starting at proposalID, or nil
// when proposalID is its own root. Chains longer than maxHops (including cycles)
// fail with ErrChainTooDeep.
func (r *PrincipalResolver) Resolve(ctx context.Context, proposalID int) (*model.EnrichedPrincipal, error) {
	current := proposalID

	for hop := 0; hop < r.maxHops; hop++ {
		raw, err := r.camara.FetchProposal(ctx, current)
		if err != nil {
			return nil, err
		}

		if raw.PrincipalURI == nil || *raw.PrincipalURI == "" {
			if raw.ID == proposalID {
				return nil, nil
			}
			return r.build(ctx, raw)
		}

		next, err := strconv.Atoi(lastSegment(*raw.PrincipalURI))
		if err != nil {
			return nil, fmt.Errorf("invalid principal reference %q on proposal %d: %w", *raw.PrincipalURI, raw.ID, ErrRemoteDecode)
		}
		current = next
	}

	return nil, fmt.Errorf("proposal %d: %w after %d hops", proposalID, ErrChainTooDeep, r.maxHops)
}

func (r *PrincipalResolver) build(ctx context.Context, raw *RawProposal) (*model.EnrichedPrincipal, error) {
	authors, err := r.authors.Resolve(ctx, raw.ID)
	if err != nil {
		return nil, err
	}

	return &model.EnrichedPrincipal{
		ID:      raw.ID,
		Title:   proposalTitle(raw),
		Number:  raw.Number,
		Type:    raw.TypeAcronym,
		Summary: raw.Summary,
		Authors: authors,
	}, nil
}

func proposalTitle(raw *RawProposal) string {
	return fmt.Sprintf("%s %d/%d", raw.TypeAcronym, raw.Number, raw.Year)
}
