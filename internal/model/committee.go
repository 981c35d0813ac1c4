package model

// Committee is one organ membership of the legislator
type Committee struct {
	ID        int    `json:"comissao_id"`
	Acronym   string `json:"comissao_sigla"`
	Name      string `json:"comissao_nome"`
	Nickname  string `json:"comissao_apelido"`
	URL       string `json:"comissao_site"`
	Role      string `json:"comissao_cargo"`
	StartedAt string `json:"comissao_inicio"`
	EndedAt   string `json:"comissao_fim"`
	Active    bool   `json:"comissao_ativo"`
}
