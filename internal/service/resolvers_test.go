package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gabinete/internal/model"
)

func TestAuthorResolver_Resolve(t *testing.T) {
	api := newFakeAPI(t)
	api.authors(123,
		author(204554, "Fulana de Tal", deputyTypeCode, 1, 1),
		author(900, "Comissão de Saúde", 40000, 2, 0),
	)

	authors, err := NewAuthorResolver(newTestCamara(api)).Resolve(context.Background(), 123)
	require.NoError(t, err)
	require.Len(t, authors, 2)

	assert.Equal(t, model.Author{
		ID:             "204554",
		Name:           "Fulana de Tal",
		ProfileURL:     "https://www.camara.leg.br/deputados/204554",
		SignatureOrder: 1,
		IsProponent:    true,
	}, authors[0])

	assert.Equal(t, "900", authors[1].ID)
	assert.Empty(t, authors[1].ProfileURL)
	assert.False(t, authors[1].IsProponent)
}

func TestAuthorResolver_SurfacesNotFound(t *testing.T) {
	api := newFakeAPI(t)

	_, err := NewAuthorResolver(newTestCamara(api)).Resolve(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAuthoredBy(t *testing.T) {
	const target = "X"

	tests := []struct {
		name     string
		authors  []model.Author
		expected bool
	}{
		{
			name:     "name, signature and proponent all set",
			authors:  []model.Author{{Name: "X", SignatureOrder: 1, IsProponent: true}},
			expected: true,
		},
		{
			name:     "missing signature order",
			authors:  []model.Author{{Name: "X", SignatureOrder: 0, IsProponent: true}},
			expected: false,
		},
		{
			name:     "not a proponent",
			authors:  []model.Author{{Name: "X", SignatureOrder: 3, IsProponent: false}},
			expected: false,
		},
		{
			name:     "different name",
			authors:  []model.Author{{Name: "Y", SignatureOrder: 1, IsProponent: true}},
			expected: false,
		},
		{
			name: "flags split across entries",
			authors: []model.Author{
				{Name: "X", SignatureOrder: 1, IsProponent: false},
				{Name: "Y", SignatureOrder: 0, IsProponent: true},
			},
			expected: false,
		},
		{
			name: "match after other co-authors",
			authors: []model.Author{
				{Name: "Y", SignatureOrder: 1, IsProponent: true},
				{Name: "X", SignatureOrder: 2, IsProponent: true},
			},
			expected: true,
		},
		{
			name:     "no authors",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AuthoredBy(tt.authors, target))
		})
	}
}

func TestDetailResolver_Resolve(t *testing.T) {
	api := newFakeAPI(t)
	api.proposal(10, 0, "Arquivada")
	api.proposal(11, 0, "Transformada em norma jurídica")
	api.proposal(12, 0, "Aguardando Designação de Relator(a)")

	resolver := NewDetailResolver(newTestCamara(api))
	ctx := context.Background()

	detail, err := resolver.Resolve(ctx, api.uri(10))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T10:00", detail.FiledAt)
	assert.Equal(t, "https://camara.leg.br/inteiro-teor/10", detail.DocumentURL)
	assert.Equal(t, "Projeto de Lei", detail.TypeName)
	assert.True(t, detail.Archived)

	detail, err = resolver.Resolve(ctx, api.uri(11))
	require.NoError(t, err)
	assert.True(t, detail.Archived)

	detail, err = resolver.Resolve(ctx, api.uri(12))
	require.NoError(t, err)
	assert.False(t, detail.Archived)

	_, err = resolver.Resolve(ctx, api.uri(13))
	assert.ErrorIs(t, err, ErrRemoteStatus)
}

func TestPrincipalResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	newResolver := func(api *fakeAPI, maxHops int) *PrincipalResolver {
		camara := newTestCamara(api)
		return NewPrincipalResolver(camara, NewAuthorResolver(camara), maxHops)
	}

	t.Run("bill without reference is its own root", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(100, 0, "")

		principal, err := newResolver(api, 16).Resolve(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, principal)
		assert.Zero(t, api.hitCount("/proposicoes/100/autores"))
	})

	t.Run("single hop resolves the referenced bill", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(100, 200, "")
		api.proposal(200, 0, "")
		api.authors(200, author(1, "Autor Raiz", deputyTypeCode, 1, 1))

		principal, err := newResolver(api, 16).Resolve(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, principal)
		assert.Equal(t, 200, principal.ID)
		assert.Equal(t, "PL 200/2024", principal.Title)
		assert.Equal(t, 200, principal.Number)
		assert.Equal(t, "PL", principal.Type)
		assert.Equal(t, "Ementa 200", principal.Summary)
		require.Len(t, principal.Authors, 1)
		assert.Equal(t, "Autor Raiz", principal.Authors[0].Name)
	})

	t.Run("three hop chain resolves the last bill", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(1, 2, "")
		api.proposal(2, 3, "")
		api.proposal(3, 0, "")
		api.authors(3)

		principal, err := newResolver(api, 16).Resolve(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, principal)
		assert.Equal(t, 3, principal.ID)
		assert.NotNil(t, principal.Authors)
		assert.Zero(t, api.hitCount("/proposicoes/1/autores"))
		assert.Zero(t, api.hitCount("/proposicoes/2/autores"))
	})

	t.Run("cycle fails with chain too deep", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(1, 2, "")
		api.proposal(2, 1, "")

		_, err := newResolver(api, 5).Resolve(ctx, 1)
		assert.ErrorIs(t, err, ErrChainTooDeep)
		assert.Equal(t, 3, api.hitCount("/proposicoes/1"))
		assert.Equal(t, 2, api.hitCount("/proposicoes/2"))
	})

	t.Run("chain exactly at the hop limit resolves", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(1, 2, "")
		api.proposal(2, 3, "")
		api.proposal(3, 0, "")
		api.authors(3)

		principal, err := newResolver(api, 3).Resolve(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, principal.ID)
	})

	t.Run("upstream failure mid-chain propagates", func(t *testing.T) {
		api := newFakeAPI(t)
		api.proposal(1, 2, "")

		_, err := newResolver(api, 16).Resolve(ctx, 1)
		assert.True(t, IsNotFound(err))
	})
}

func TestNoteLinker_Link(t *testing.T) {
	ctx := context.Background()
	note := &model.Note{ID: 1, ProposalID: 10, Title: "Nota"}

	linker := NewNoteLinker(fakeNotes{notes: map[int]*model.Note{10: note}})

	got, err := linker.Link(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, note, got)

	got, err = linker.Link(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = NewNoteLinker(fakeNotes{err: assert.AnError}).Link(ctx, 10)
	assert.ErrorIs(t, err, ErrNoteStoreUnavailable)
	assert.ErrorIs(t, err, assert.AnError)
}
