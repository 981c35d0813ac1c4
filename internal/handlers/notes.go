package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gabinete/internal/model"
	"github.com/jjenkins/gabinete/internal/store"
)

const maxNoteItems = 100

// NoteRepository is the technical-note store as seen by the HTTP layer
type NoteRepository interface {
	GetByID(ctx context.Context, id int) (*model.Note, error)
	List(ctx context.Context, limit, offset int) ([]model.Note, int, error)
	Create(ctx context.Context, n *model.Note) error
	Update(ctx context.Context, n *model.Note) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type createNoteRequest struct {
	ProposalID int    `json:"nota_proposicao"`
	Title      string `json:"nota_titulo"`
	Nickname   string `json:"nota_apelido"`
	Body       string `json:"nota_texto"`
	AuthorID   int    `json:"nota_criada_por"`
}

func (r createNoteRequest) valid() bool {
	return r.ProposalID > 0 && r.Title != "" && r.Nickname != "" && r.Body != "" && r.AuthorID > 0
}

func CreateNoteHandler(notes NoteRepository, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		var req createNoteRequest
		if err := c.BodyParser(&req); err != nil || !req.valid() {
			return respond(c, fiber.StatusBadRequest, "Campos obrigatórios faltando ou vazios, ou formato de dados incorretos", nil, nil)
		}

		note := &model.Note{
			ProposalID: req.ProposalID,
			Title:      req.Title,
			Nickname:   req.Nickname,
			Body:       req.Body,
			AuthorID:   req.AuthorID,
		}

		err := notes.Create(c.UserContext(), note)
		if errors.Is(err, store.ErrDuplicateNote) {
			return respond(c, fiber.StatusConflict, "Essa proposição já contém uma nota técnica", nil, nil)
		}
		if err != nil {
			return internalError(c, logger, err)
		}

		return respond(c, fiber.StatusCreated, "Nota criada com sucesso!", note, nil)
	}
}

// Fields a note update may carry
var editableNoteFields = map[string]bool{
	"nota_proposicao": true,
	"nota_titulo":     true,
	"nota_apelido":    true,
	"nota_texto":      true,
	"nota_criada_por": true,
}

type updateNoteRequest struct {
	ProposalID *int    `json:"nota_proposicao"`
	Title      *string `json:"nota_titulo"`
	Nickname   *string `json:"nota_apelido"`
	Body       *string `json:"nota_texto"`
	AuthorID   *int    `json:"nota_criada_por"`
}

func (r updateNoteRequest) hasEmpty() bool {
	return (r.ProposalID != nil && *r.ProposalID <= 0) ||
		(r.Title != nil && *r.Title == "") ||
		(r.Nickname != nil && *r.Nickname == "") ||
		(r.Body != nil && *r.Body == "") ||
		(r.AuthorID != nil && *r.AuthorID <= 0)
}

func (r updateNoteRequest) apply(n *model.Note) {
	if r.ProposalID != nil {
		n.ProposalID = *r.ProposalID
	}
	if r.Title != nil {
		n.Title = *r.Title
	}
	if r.Nickname != nil {
		n.Nickname = *r.Nickname
	}
	if r.Body != nil {
		n.Body = *r.Body
	}
	if r.AuthorID != nil {
		n.AuthorID = *r.AuthorID
	}
}

// UpdateNoteHandler applies a partial update. Only editable fields are
// accepted and none of them may be sent empty.
func UpdateNoteHandler(notes NoteRepository, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return respond(c, fiber.StatusBadRequest, "Identificador de nota inválido", nil, nil)
		}

		var fields map[string]any
		var req updateNoteRequest
		if c.BodyParser(&fields) != nil || c.BodyParser(&req) != nil {
			return respond(c, fiber.StatusBadRequest, "Formato de dados incorreto", nil, nil)
		}
		if req.hasEmpty() {
			return respond(c, fiber.StatusBadRequest, "Campos obrigatórios vazios", nil, nil)
		}

		note, err := notes.GetByID(c.UserContext(), id)
		if err != nil {
			return internalError(c, logger, err)
		}
		if note == nil {
			return respond(c, fiber.StatusNotFound, "Nota não encontrada", nil, nil)
		}

		for field := range fields {
			if !editableNoteFields[field] {
				return respond(c, fiber.StatusBadRequest, "Campos inválidos enviados.", nil, nil)
			}
		}

		req.apply(note)

		updated, err := notes.Update(c.UserContext(), note)
		if errors.Is(err, store.ErrDuplicateNote) {
			return respond(c, fiber.StatusConflict, "Essa proposição já contém uma nota técnica", nil, nil)
		}
		if err != nil {
			return internalError(c, logger, err)
		}
		if !updated {
			return respond(c, fiber.StatusNotFound, "Nota não encontrada", nil, nil)
		}

		return respond(c, fiber.StatusOK, "Nota atualizada com sucesso!", note, nil)
	}
}

func NoteDetailHandler(notes NoteRepository, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return respond(c, fiber.StatusBadRequest, "Identificador de nota inválido", nil, nil)
		}

		note, err := notes.GetByID(c.UserContext(), id)
		if err != nil {
			return internalError(c, logger, err)
		}
		if note == nil {
			return respond(c, fiber.StatusOK, "Nota não encontrada", nil, nil)
		}

		return respond(c, fiber.StatusOK, "Nota encontrada", note, nil)
	}
}

func NotesHandler(notes NoteRepository, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		items := c.QueryInt("itens", 10)
		if items <= 0 {
			items = 10
		}
		items = min(items, maxNoteItems)
		page := c.QueryInt("pagina", 1)
		if page <= 0 {
			page = 1
		}

		// Saturate rather than overflow; such a page is past the end
		offset := math.MaxInt
		if page-1 <= math.MaxInt/items {
			offset = items * (page - 1)
		}

		list, total, err := notes.List(c.UserContext(), items, offset)
		if err != nil {
			return internalError(c, logger, err)
		}
		if total == 0 {
			return respond(c, fiber.StatusOK, "Nenhuma nota registrada", []model.Note{}, nil)
		}

		last := total / items
		if total%items != 0 {
			last++
		}
		links := model.PageLinks{
			First: notesLink(items, 1),
			Self:  notesLink(items, page),
			Last:  notesLink(items, last),
		}
		if page > last {
			return respond(c, fiber.StatusOK, "Nenhuma nota nesta página", []model.Note{}, &links)
		}
		return respond(c, fiber.StatusOK, "Notas encontradas", list, &links)
	}
}

func DeleteNoteHandler(notes NoteRepository, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return respond(c, fiber.StatusBadRequest, "Identificador de nota inválido", nil, nil)
		}

		deleted, err := notes.Delete(c.UserContext(), id)
		if err != nil {
			return internalError(c, logger, err)
		}
		if !deleted {
			return respond(c, fiber.StatusNotFound, "Nota não encontrada", nil, nil)
		}

		return respond(c, fiber.StatusOK, "Nota apagada com sucesso.", nil, nil)
	}
}

func notesLink(items, page int) string {
	params := url.Values{}
	params.Set("itens", strconv.Itoa(items))
	params.Set("pagina", strconv.Itoa(page))
	return "/api/notas-tecnicas?" + params.Encode()
}
