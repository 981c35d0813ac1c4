package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jjenkins/gabinete/internal/model"
)

// ErrDuplicateNote is returned when the bill already has a technical note
var ErrDuplicateNote = errors.New("proposal already has a technical note")

const uniqueViolation = "23505"

const noteColumns = `nota_id, nota_proposicao, nota_titulo, nota_apelido, nota_texto,
		       nota_criada_por, nota_criada_em, nota_atualizada_em`

// NoteStore handles database operations for technical notes
type NoteStore struct {
	db *sql.DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

// GetByProposal retrieves the note attached to a bill, or nil when there is none
func (s *NoteStore) GetByProposal(ctx context.Context, proposalID int) (*model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM nota_tecnica WHERE nota_proposicao = $1`

	n, err := scanNote(s.db.QueryRowContext(ctx, query, proposalID))
	if err != nil {
		return nil, fmt.Errorf("failed to get note of proposal %d: %w", proposalID, err)
	}
	return n, nil
}

// GetByID retrieves a note by its id, or nil when it does not exist
func (s *NoteStore) GetByID(ctx context.Context, id int) (*model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM nota_tecnica WHERE nota_id = $1`

	n, err := scanNote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	return n, nil
}

// List returns one page of notes ordered by id along with the total count
func (s *NoteStore) List(ctx context.Context, limit, offset int) ([]model.Note, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nota_tecnica`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	query := `SELECT ` + noteColumns + ` FROM nota_tecnica ORDER BY nota_id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID,
			&n.ProposalID,
			&n.Title,
			&n.Nickname,
			&n.Body,
			&n.AuthorID,
			&n.CreatedAt,
			&n.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, total, nil
}

// Create inserts a note and fills its generated fields
func (s *NoteStore) Create(ctx context.Context, n *model.Note) error {
	query := `
		INSERT INTO nota_tecnica (nota_proposicao, nota_titulo, nota_apelido, nota_texto, nota_criada_por)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING nota_id, nota_criada_em, nota_atualizada_em
	`

	err := s.db.QueryRowContext(ctx, query,
		n.ProposalID,
		n.Title,
		n.Nickname,
		n.Body,
		n.AuthorID,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateNote
	}
	if err != nil {
		return fmt.Errorf("failed to create note for proposal %d: %w", n.ProposalID, err)
	}
	return nil
}

// Update overwrites the editable fields of n and refreshes its update time.
// It reports whether the note existed.
func (s *NoteStore) Update(ctx context.Context, n *model.Note) (bool, error) {
	query := `
		UPDATE nota_tecnica
		SET nota_proposicao = $1, nota_titulo = $2, nota_apelido = $3, nota_texto = $4,
		    nota_criada_por = $5, nota_atualizada_em = NOW()
		WHERE nota_id = $6
		RETURNING nota_atualizada_em
	`

	err := s.db.QueryRowContext(ctx, query,
		n.ProposalID,
		n.Title,
		n.Nickname,
		n.Body,
		n.AuthorID,
		n.ID,
	).Scan(&n.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return false, ErrDuplicateNote
	}
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update note %d: %w", n.ID, err)
	}
	return true, nil
}

// Delete removes a note and reports whether it existed
func (s *NoteStore) Delete(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM nota_tecnica WHERE nota_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanNote(row *sql.Row) (*model.Note, error) {
	var n model.Note
	err := row.Scan(
		&n.ID,
		&n.ProposalID,
		&n.Title,
		&n.Nickname,
		&n.Body,
		&n.AuthorID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
