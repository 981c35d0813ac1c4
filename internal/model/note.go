package model

import "time"

// Note is a technical note written by the office about one bill.
// A bill has at most one note.
type Note struct {
	ID         int       `json:"nota_id"`
	ProposalID int       `json:"nota_proposicao"`
	Title      string    `json:"nota_titulo"`
	Nickname   string    `json:"nota_apelido"`
	Body       string    `json:"nota_texto"`
	AuthorID   int       `json:"nota_criada_por"`
	CreatedAt  time.Time `json:"nota_criada_em"`
	UpdatedAt  time.Time `json:"nota_atualizada_em"`
}
