package service

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPageFromLinks(t *testing.T) {
	tests := []struct {
		name     string
		links    []Link
		expected int
		ok       bool
	}{
		{
			name: "last link present",
			links: []Link{
				{Rel: "self", Href: "https://dadosabertos.camara.leg.br/api/v2/proposicoes?pagina=1&itens=10"},
				{Rel: "last", Href: "https://dadosabertos.camara.leg.br/api/v2/proposicoes?siglaTipo=PL&pagina=7&itens=10"},
			},
			expected: 7,
			ok:       true,
		},
		{
			name:  "no last link",
			links: []Link{{Rel: "self", Href: "https://x/proposicoes?pagina=3"}},
		},
		{
			name:  "last link without page",
			links: []Link{{Rel: "last", Href: "https://x/proposicoes?itens=10"}},
		},
		{
			name:  "last link with garbage page",
			links: []Link{{Rel: "last", Href: "https://x/proposicoes?pagina=abc"}},
		},
		{
			name: "no links",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := lastPageFromLinks(tt.links)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, page)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 0, totalPages(5, 0))
	assert.Equal(t, 1, totalPages(3, math.MaxInt))
	assert.Equal(t, 0, totalPages(0, math.MaxInt))
}

func TestPageBounds(t *testing.T) {
	start, end := pageBounds(25, 10, 3)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = pageBounds(25, 10, 1)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = pageBounds(5, 10, 4)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = pageBounds(3, math.MaxInt, 1)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	start, end = pageBounds(3, 2, math.MaxInt)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}

func TestPageLinks(t *testing.T) {
	links := pageLinks(func(p int) string { return "?pagina=" + strconv.Itoa(p) }, 2, 9)
	assert.Equal(t, "?pagina=1", links.First)
	assert.Equal(t, "?pagina=2", links.Self)
	assert.Equal(t, "?pagina=9", links.Last)
}
