package model

// Amendment is a proposed change to a provisional measure
type Amendment struct {
	ID          string `json:"emenda_id"`
	Number      string `json:"emenda_numero"`
	FiledAt     string `json:"emenda_apresentacao"`
	Stage       string `json:"emenda_turno"`
	Excerpt     string `json:"emenda_ementa"`
	DocumentURL string `json:"emenda_documento"`
	AuthorName  string `json:"emenda_autor"`
	AuthorParty string `json:"emenda_autor_partido"`
	AuthorState string `json:"emenda_autor_estado"`
	IsByTarget  bool   `json:"emenda_autoria"`
}

// ProvisionalMeasure is an executive decree (MPV) tracked by the Senate API
type ProvisionalMeasure struct {
	ID                string      `json:"mp_id"`
	Number            int         `json:"mp_numero"`
	Acronym           string      `json:"mp_sigla"`
	Year              string      `json:"mp_ano"`
	Title             string      `json:"mp_titulo"`
	Summary           string      `json:"mp_ementa"`
	FiledAt           string      `json:"mp_apresentacao"`
	AmendmentDeadline string      `json:"mp_prazo_emenda"`
	URL               string      `json:"mp_link"`
	AmendedByTarget   bool        `json:"mp_emenda_deputado"`
	Amendments        []Amendment `json:"mp_emendas"`
}
