package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SenadoClient handles communication with the Federal Senate open data API
type SenadoClient struct {
	remote  *RemoteClient
	baseURL string
}

// NewSenadoClient creates a new Senado API client
func NewSenadoClient(remote *RemoteClient, baseURL string) *SenadoClient {
	return &SenadoClient{
		remote:  remote,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RawMeasure is one matter returned by the basic search
type RawMeasure struct {
	Code           flexString `json:"Codigo"`
	Number         flexInt    `json:"Numero"`
	Acronym        string     `json:"Sigla"`
	Year           flexString `json:"Ano"`
	Identification string     `json:"DescricaoIdentificacao"`
	Summary        string     `json:"Ementa"`
	Date           string     `json:"Data"`
}

// RawAmendment is one amendment of a matter. Every nested structure is optional.
type RawAmendment struct {
	Code    flexString `json:"CodigoEmenda"`
	Number  flexString `json:"NumeroEmenda"`
	FiledAt string     `json:"DataApresentacao"`
	Stage   string     `json:"DescricaoTurno"`
	Texts   *struct {
		Text oneOrMany[rawAmendmentText] `json:"TextoEmenda"`
	} `json:"TextosEmenda"`
	Authorship *struct {
		Authors oneOrMany[rawAmendmentAuthor] `json:"Autor"`
	} `json:"AutoriaEmenda"`
}

type rawAmendmentText struct {
	Description string `json:"DescricaoTexto"`
	URL         string `json:"UrlTexto"`
}

type rawAmendmentAuthor struct {
	Name           string `json:"NomeAutor"`
	Identification *struct {
		Party string `json:"SiglaPartidoParlamentar"`
		State string `json:"UfParlamentar"`
	} `json:"IdentificacaoParlamentar"`
}

type measureSearchResponse struct {
	Search struct {
		Matters *struct {
			Matter oneOrMany[RawMeasure] `json:"Materia"`
		} `json:"Materias"`
	} `json:"PesquisaBasicaMateria"`
}

type amendmentsResponse struct {
	Amendments struct {
		Matter struct {
			Amendments *struct {
				Amendment oneOrMany[RawAmendment] `json:"Emenda"`
			} `json:"Emendas"`
		} `json:"Materia"`
	} `json:"EmendaMateria"`
}

// SearchMeasures lists the matters of one acronym filed in year.
// A search with no matching collection returns an empty slice.
func (c *SenadoClient) SearchMeasures(ctx context.Context, acronym string, year int) ([]RawMeasure, error) {
	params := url.Values{}
	params.Set("sigla", acronym)
	params.Set("ano", strconv.Itoa(year))

	var resp measureSearchResponse
	if err := c.remote.GetJSON(ctx, c.baseURL+"/materia/pesquisa/lista?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search %s measures of %d: %w", acronym, year, err)
	}

	if resp.Search.Matters == nil {
		return nil, nil
	}
	return resp.Search.Matters.Matter, nil
}

// FetchAmendments retrieves the amendments filed against one matter
func (c *SenadoClient) FetchAmendments(ctx context.Context, code string) ([]RawAmendment, error) {
	var resp amendmentsResponse
	endpoint := fmt.Sprintf("%s/materia/emendas/%s", c.baseURL, url.PathEscape(code))
	if err := c.remote.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch amendments of matter %s: %w", code, err)
	}

	if resp.Amendments.Matter.Amendments == nil {
		return nil, nil
	}
	return resp.Amendments.Matter.Amendments.Amendment, nil
}
