package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
)

const proposalPublicURL = "https://www.camara.leg.br/proposicoesWeb/fichadetramitacao?idProposicao="

// ProposalQuery carries the caller's listing parameters. Zero values are
// replaced by defaults in ProposalAggregator.List.
type ProposalQuery struct {
	AuthorID int
	Type     string
	Year     int
	Items    int
	Order    string
	OrderBy  string
	Page     int
}

// ProposalPage is one enriched page of bills
type ProposalPage struct {
	Proposals []model.EnrichedProposal `json:"data"`
	Links     model.PageLinks          `json:"links"`
}

// ProposalAggregator lists a legislator's bills and enriches each one with its
// status, authors, principal bill and technical note.
type ProposalAggregator struct {
	camara         *CamaraClient
	details        *DetailResolver
	authors        *AuthorResolver
	principals     *PrincipalResolver
	notes          *NoteLinker
	legislator     config.Legislator
	maxConcurrency int
	metrics        *Metrics
	logger         *slog.Logger
	now            func() time.Time
}

// NewProposalAggregator wires the resolvers around one Câmara client
func NewProposalAggregator(cfg config.Config, camara *CamaraClient, notes NoteFinder, metrics *Metrics, logger *slog.Logger) *ProposalAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	authors := NewAuthorResolver(camara)
	return &ProposalAggregator{
		camara:         camara,
		details:        NewDetailResolver(camara),
		authors:        authors,
		principals:     NewPrincipalResolver(camara, authors, cfg.MaxPrincipalHops),
		notes:          NewNoteLinker(notes),
		legislator:     cfg.Legislator,
		maxConcurrency: cfg.MaxConcurrency,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// Legislator returns the identity authorship is checked against
func (a *ProposalAggregator) Legislator() config.Legislator {
	return a.legislator
}

// WithDefaults fills every zero field of q
func (a *ProposalAggregator) WithDefaults(q ProposalQuery) ProposalQuery {
	if q.AuthorID <= 0 {
		q.AuthorID = a.legislator.ID
	}
	if q.Type == "" {
		q.Type = "PL"
	}
	if q.Year <= 0 {
		q.Year = a.now().Year()
	}
	if q.Items <= 0 {
		q.Items = 10
	}
	if q.Order == "" {
		q.Order = "DESC"
	}
	if q.OrderBy == "" {
		q.OrderBy = "id"
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q
}

// List fetches one page of bills and enriches every bill concurrently.
// Any resolver failure fails the whole page.
func (a *ProposalAggregator) List(ctx context.Context, q ProposalQuery) (page *ProposalPage, err error) {
	defer func() { a.metrics.IncrementPage("proposals", err) }()

	q = a.WithDefaults(q)

	list, err := a.camara.ListProposals(ctx, ProposalListQuery(q))
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	proposals := make([]model.EnrichedProposal, len(list.Proposals))
	for i, raw := range list.Proposals {
		g.Go(func() error {
			enriched, err := a.enrich(gctx, raw)
			if err != nil {
				return fmt.Errorf("failed to enrich proposal %d: %w", raw.ID, err)
			}
			proposals[i] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	last, ok := lastPageFromLinks(list.Links)
	if !ok {
		last = q.Page
	}

	a.logger.DebugContext(ctx, "proposal page aggregated",
		"author_id", q.AuthorID,
		"page", q.Page,
		"items", len(proposals),
		"last_page", last,
	)

	return &ProposalPage{
		Proposals: proposals,
		Links:     pageLinks(func(p int) string { return proposalsLink(q, p) }, q.Page, last),
	}, nil
}

// Authors returns the normalized author list of one bill
func (a *ProposalAggregator) Authors(ctx context.Context, proposalID int) ([]model.Author, error) {
	return a.authors.Resolve(ctx, proposalID)
}

// enrich runs the four dependent lookups of one bill concurrently and folds
// them into one record.
func (a *ProposalAggregator) enrich(ctx context.Context, raw RawProposal) (model.EnrichedProposal, error) {
	var (
		detail    model.ProposalDetail
		authors   []model.Author
		principal *model.EnrichedPrincipal
		note      *model.Note
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		detail, err = a.details.Resolve(ctx, raw.URI)
		return err
	})

	g.Go(func() error {
		var err error
		authors, err = a.authors.Resolve(ctx, raw.ID)
		return err
	})

	g.Go(func() error {
		var err error
		principal, err = a.principals.Resolve(ctx, raw.ID)
		return err
	})

	g.Go(func() error {
		var err error
		note, err = a.notes.Link(ctx, raw.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.EnrichedProposal{}, err
	}

	return model.EnrichedProposal{
		ID:               raw.ID,
		Title:            proposalTitle(&raw),
		Summary:          raw.Summary,
		URL:              proposalPublicURL + strconv.Itoa(raw.ID),
		Detail:           detail,
		AuthoredByTarget: AuthoredBy(authors, a.legislator.Name),
		Authors:          authors,
		Principal:        principal,
		TechnicalNote:    note,
	}, nil
}

func proposalsLink(q ProposalQuery, page int) string {
	params := url.Values{}
	params.Set("autor", strconv.Itoa(q.AuthorID))
	params.Set("tipo", q.Type)
	params.Set("ano", strconv.Itoa(q.Year))
	params.Set("itens", strconv.Itoa(q.Items))
	params.Set("ordem", q.Order)
	params.Set("ordernarPor", q.OrderBy)
	params.Set("pagina", strconv.Itoa(page))
	return "/api/proposicoes?" + params.Encode()
}
