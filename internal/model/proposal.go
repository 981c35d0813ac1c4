package model

// Author is one signatory of a bill
type Author struct {
	ID             string `json:"id_autor"`
	Name           string `json:"nome_autor"`
	ProfileURL     string `json:"pagina_autor"`
	SignatureOrder int    `json:"assinatura"`
	IsProponent    bool   `json:"proponente"`
}

// ProposalDetail is the status snapshot of a bill taken from its detail endpoint
type ProposalDetail struct {
	FiledAt     string `json:"proposicao_apresentacao"`
	DocumentURL string `json:"proposicao_documento"`
	Archived    bool   `json:"proposicao_arquivada"`
	TypeName    string `json:"proposicao_tipo"`
}

// EnrichedPrincipal is the root bill at the end of a principal-reference chain
type EnrichedPrincipal struct {
	ID      int      `json:"proposicao_id"`
	Title   string   `json:"proposicao_titulo"`
	Number  int      `json:"proposicao_numero"`
	Type    string   `json:"proposicao_sigla"`
	Summary string   `json:"proposicao_ementa"`
	Authors []Author `json:"proposicao_autores"`
}

// EnrichedProposal is one bill of a listing with every dependent lookup folded in.
// Principal and TechnicalNote are nil when absent.
type EnrichedProposal struct {
	ID               int                `json:"proposicao_id"`
	Title            string             `json:"proposicao_titulo"`
	Summary          string             `json:"proposicao_ementa"`
	URL              string             `json:"proposicao_site"`
	Detail           ProposalDetail     `json:"proposicao_informacoes"`
	AuthoredByTarget bool               `json:"proposicao_autoria"`
	Authors          []Author           `json:"proposicoes_autores"`
	Principal        *EnrichedPrincipal `json:"proposicao_principal"`
	TechnicalNote    *Note              `json:"proposicao_nota_tecnica"`
}

// PageLinks are navigation query strings for a listing
type PageLinks struct {
	First string `json:"first"`
	Self  string `json:"self"`
	Last  string `json:"last"`
}
