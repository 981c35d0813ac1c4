package service

import (
	"context"

	"github.com/jjenkins/gabinete/internal/model"
)

// Situations that mean a bill is no longer moving
var archivedSituations = map[string]bool{
	"Arquivada":                      true,
	"Transformada em norma jurídica": true,
}

// DetailResolver fetches the status snapshot of a bill
type DetailResolver struct {
	camara *CamaraClient
}

// NewDetailResolver creates a new DetailResolver
func NewDetailResolver(camara *CamaraClient) *DetailResolver {
	return &DetailResolver{camara: camara}
}

// Resolve dereferences a bill's self URI and extracts its status snapshot
func (r *DetailResolver) Resolve(ctx context.Context, uri string) (model.ProposalDetail, error) {
	raw, err := r.camara.FetchProposalURI(ctx, uri)
	if err != nil {
		return model.ProposalDetail{}, err
	}

	return model.ProposalDetail{
		FiledAt:     raw.FiledAt,
		DocumentURL: raw.DocumentURL,
		Archived:    archivedSituations[raw.Status.Description],
		TypeName:    raw.TypeName,
	}, nil
}
