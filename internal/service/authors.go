package service

import (
	"context"

	"github.com/jjenkins/gabinete/internal/model"
)

const (
	// codTipo of an author who is a sitting deputy
	deputyTypeCode   = 10000
	deputyProfileURL = "https://www.camara.leg.br/deputados/"
)

// AuthorResolver fetches and normalizes the author list of a bill
type AuthorResolver struct {
	camara *CamaraClient
}

// NewAuthorResolver creates a new AuthorResolver
func NewAuthorResolver(camara *CamaraClient) *AuthorResolver {
	return &AuthorResolver{camara: camara}
}

// Resolve returns the authors of a bill in upstream order.
// Remote errors, including 404, are returned unchanged.
func (r *AuthorResolver) Resolve(ctx context.Context, proposalID int) ([]model.Author, error) {
	raw, err := r.camara.FetchAuthors(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	authors := make([]model.Author, len(raw))
	for i, a := range raw {
		authors[i] = normalizeAuthor(a)
	}
	return authors, nil
}

func normalizeAuthor(a RawAuthor) model.Author {
	id := lastSegment(a.URI)

	var profile string
	if a.TypeCode == deputyTypeCode {
		profile = deputyProfileURL + id
	}

	return model.Author{
		ID:             id,
		Name:           a.Name,
		ProfileURL:     profile,
		SignatureOrder: a.SignatureOrder,
		IsProponent:    a.Proponent != 0,
	}
}

// AuthoredBy reports whether name signed the bill as a proponent
func AuthoredBy(authors []model.Author, name string) bool {
	for _, a := range authors {
		if a.Name == name && a.SignatureOrder != 0 && a.IsProponent {
			return true
		}
	}
	return false
}
