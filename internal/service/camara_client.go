package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CamaraClient handles communication with the Chamber of Deputies open data API
type CamaraClient struct {
	remote  *RemoteClient
	baseURL string
}

// NewCamaraClient creates a new Câmara API client
func NewCamaraClient(remote *RemoteClient, baseURL string) *CamaraClient {
	return &CamaraClient{
		remote:  remote,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RawProposal is a bill as returned by /proposicoes and /proposicoes/{id}.
// List items only carry the identifying fields.
type RawProposal struct {
	ID           int     `json:"id"`
	URI          string  `json:"uri"`
	TypeAcronym  string  `json:"siglaTipo"`
	Number       int     `json:"numero"`
	Year         int     `json:"ano"`
	Summary      string  `json:"ementa"`
	FiledAt      string  `json:"dataApresentacao"`
	DocumentURL  string  `json:"urlInteiroTeor"`
	TypeName     string  `json:"descricaoTipo"`
	PrincipalURI *string `json:"uriPropPrincipal"`
	Status       struct {
		Description string `json:"descricaoSituacao"`
	} `json:"statusProposicao"`
}

// RawAuthor is one entry of /proposicoes/{id}/autores
type RawAuthor struct {
	URI            string `json:"uri"`
	Name           string `json:"nome"`
	TypeCode       int    `json:"codTipo"`
	Type           string `json:"tipo"`
	SignatureOrder int    `json:"ordemAssinatura"`
	Proponent      int    `json:"proponente"`
}

// RawCommittee is one entry of /deputados/{id}/orgaos
type RawCommittee struct {
	ID              int    `json:"idOrgao"`
	Acronym         string `json:"siglaOrgao"`
	Name            string `json:"nomeOrgao"`
	PublicationName string `json:"nomePublicacao"`
	Role            string `json:"titulo"`
	StartedAt       string `json:"dataInicio"`
	EndedAt         string `json:"dataFim"`
}

// Link is one entry of the "links" collection the API attaches to listings
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// ProposalList is one page of /proposicoes
type ProposalList struct {
	Proposals []RawProposal `json:"dados"`
	Links     []Link        `json:"links"`
}

// ProposalListQuery carries the filters of a bill listing
type ProposalListQuery struct {
	AuthorID int
	Type     string
	Year     int
	Items    int
	Order    string
	OrderBy  string
	Page     int
}

type proposalResponse struct {
	Data RawProposal `json:"dados"`
}

type authorsResponse struct {
	Data []RawAuthor `json:"dados"`
}

type committeesResponse struct {
	Data []RawCommittee `json:"dados"`
}

// ListProposals retrieves one page of bills matching q
func (c *CamaraClient) ListProposals(ctx context.Context, q ProposalListQuery) (*ProposalList, error) {
	params := url.Values{}
	params.Set("siglaTipo", q.Type)
	params.Set("ano", strconv.Itoa(q.Year))
	params.Set("idDeputadoAutor", strconv.Itoa(q.AuthorID))
	params.Set("itens", strconv.Itoa(q.Items))
	params.Set("ordem", q.Order)
	params.Set("ordenarPor", q.OrderBy)
	params.Set("pagina", strconv.Itoa(q.Page))

	var list ProposalList
	if err := c.remote.GetJSON(ctx, c.baseURL+"/proposicoes?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return &list, nil
}

// FetchProposal retrieves the full record of one bill by id
func (c *CamaraClient) FetchProposal(ctx context.Context, id int) (*RawProposal, error) {
	return c.FetchProposalURI(ctx, fmt.Sprintf("%s/proposicoes/%d", c.baseURL, id))
}

// FetchProposalURI retrieves the full record of one bill from its self URI
func (c *CamaraClient) FetchProposalURI(ctx context.Context, uri string) (*RawProposal, error) {
	var resp proposalResponse
	if err := c.remote.GetJSON(ctx, uri, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch proposal: %w", err)
	}
	return &resp.Data, nil
}

// FetchAuthors retrieves the authors of one bill in signature order
func (c *CamaraClient) FetchAuthors(ctx context.Context, id int) ([]RawAuthor, error) {
	var resp authorsResponse
	if err := c.remote.GetJSON(ctx, fmt.Sprintf("%s/proposicoes/%d/autores", c.baseURL, id), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch authors of proposal %d: %w", id, err)
	}
	return resp.Data, nil
}

// FetchCommittees retrieves the organs a deputy has joined since the given date
func (c *CamaraClient) FetchCommittees(ctx context.Context, legislatorID int, since string) ([]RawCommittee, error) {
	params := url.Values{}
	if since != "" {
		params.Set("dataInicio", since)
	}
	params.Set("itens", "100")
	params.Set("ordem", "ASC")
	params.Set("ordenarPor", "idOrgao")

	endpoint := fmt.Sprintf("%s/deputados/%d/orgaos?%s", c.baseURL, legislatorID, params.Encode())

	var resp committeesResponse
	if err := c.remote.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch committees of deputy %d: %w", legislatorID, err)
	}
	return resp.Data, nil
}
