package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
)

const (
	measureAcronym        = "mpv"
	measurePublicURL      = "https://www.congressonacional.leg.br/materias/medidas-provisorias/-/mpv/"
	amendmentWindowInDays = 5
)

// MeasureQuery carries the caller's listing parameters
type MeasureQuery struct {
	Year  int
	Items int
	Page  int
}

// MeasurePage is one locally paginated page of provisional measures.
// Measures is empty when the search found nothing or Page is past TotalPages.
type MeasurePage struct {
	Measures   []model.ProvisionalMeasure
	TotalPages int
	Links      model.PageLinks
}

// MeasureAggregator lists provisional measures of a year with their amendments.
// Sorting and pagination happen locally because the Senate search returns the
// whole year at once.
type MeasureAggregator struct {
	senado         *SenadoClient
	legislator     config.Legislator
	maxConcurrency int
	metrics        *Metrics
	logger         *slog.Logger
	now            func() time.Time
}

// NewMeasureAggregator creates a new MeasureAggregator
func NewMeasureAggregator(cfg config.Config, senado *SenadoClient, metrics *Metrics, logger *slog.Logger) *MeasureAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeasureAggregator{
		senado:         senado,
		legislator:     cfg.Legislator,
		maxConcurrency: cfg.MaxConcurrency,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// WithDefaults fills every zero field of q
func (a *MeasureAggregator) WithDefaults(q MeasureQuery) MeasureQuery {
	if q.Year <= 0 {
		q.Year = a.now().Year()
	}
	if q.Items <= 0 {
		q.Items = 10
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q
}

// List searches the year's measures, attaches amendments, sorts by number
// descending and returns the requested page. A failed amendment fetch only
// empties that measure's amendment list.
func (a *MeasureAggregator) List(ctx context.Context, q MeasureQuery) (page *MeasurePage, err error) {
	defer func() { a.metrics.IncrementPage("measures", err) }()

	q = a.WithDefaults(q)

	raw, err := a.senado.SearchMeasures(ctx, measureAcronym, q.Year)
	if err != nil {
		return nil, err
	}

	measures := make([]model.ProvisionalMeasure, len(raw))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, m := range raw {
		g.Go(func() error {
			amendments := a.amendments(ctx, string(m.Code))
			measures[i] = a.normalizeMeasure(m, amendments)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(measures, func(i, j int) bool {
		return measures[i].Number > measures[j].Number
	})

	total := totalPages(len(measures), q.Items)
	links := pageLinks(func(p int) string { return measuresLink(q, p) }, q.Page, total)

	if q.Page > total {
		return &MeasurePage{Measures: []model.ProvisionalMeasure{}, TotalPages: total, Links: links}, nil
	}

	start, end := pageBounds(len(measures), q.Items, q.Page)
	return &MeasurePage{
		Measures:   measures[start:end],
		TotalPages: total,
		Links:      links,
	}, nil
}

// amendments fetches and normalizes one measure's amendments, logging and
// swallowing any failure.
func (a *MeasureAggregator) amendments(ctx context.Context, code string) []model.Amendment {
	raw, err := a.senado.FetchAmendments(ctx, code)
	if err != nil {
		a.logger.WarnContext(ctx, "amendment fetch failed, continuing without amendments",
			"measure_id", code,
			"error", err,
		)
		a.metrics.IncrementDegradedAmendments()
		return []model.Amendment{}
	}

	amendments := make([]model.Amendment, len(raw))
	for i, e := range raw {
		amendments[i] = normalizeAmendment(e, a.legislator.Name)
	}
	return amendments
}

func (a *MeasureAggregator) normalizeMeasure(m RawMeasure, amendments []model.Amendment) model.ProvisionalMeasure {
	amended := false
	for _, e := range amendments {
		if e.IsByTarget {
			amended = true
			break
		}
	}

	return model.ProvisionalMeasure{
		ID:                string(m.Code),
		Number:            int(m.Number),
		Acronym:           m.Acronym,
		Year:              string(m.Year),
		Title:             m.Identification,
		Summary:           m.Summary,
		FiledAt:           m.Date,
		AmendmentDeadline: AmendmentDeadline(m.Date),
		URL:               measurePublicURL + string(m.Code),
		AmendedByTarget:   amended,
		Amendments:        amendments,
	}
}

func normalizeAmendment(e RawAmendment, legislatorName string) model.Amendment {
	amendment := model.Amendment{
		ID:      string(e.Code),
		Number:  string(e.Number),
		FiledAt: e.FiledAt,
		Stage:   e.Stage,
	}

	if e.Texts != nil && len(e.Texts.Text) > 0 {
		amendment.Excerpt = e.Texts.Text[0].Description
		amendment.DocumentURL = e.Texts.Text[0].URL
	}

	if e.Authorship != nil && len(e.Authorship.Authors) > 0 {
		author := e.Authorship.Authors[0]
		amendment.AuthorName = author.Name
		if author.Identification != nil {
			amendment.AuthorParty = author.Identification.Party
			amendment.AuthorState = author.Identification.State
		}
		amendment.IsByTarget = author.Name != "" && author.Name == legislatorName
	}

	return amendment
}

// AmendmentDeadline returns the last day amendments can be filed against a
// measure filed on date (YYYY-MM-DD...). It returns "" for unparseable dates.
func AmendmentDeadline(date string) string {
	if len(date) < len(time.DateOnly) {
		return ""
	}
	filed, err := time.Parse(time.DateOnly, date[:len(time.DateOnly)])
	if err != nil {
		return ""
	}
	return filed.AddDate(0, 0, amendmentWindowInDays).Format(time.DateOnly)
}

func measuresLink(q MeasureQuery, page int) string {
	params := url.Values{}
	params.Set("ano", strconv.Itoa(q.Year))
	params.Set("itens", strconv.Itoa(q.Items))
	params.Set("pagina", strconv.Itoa(page))
	return fmt.Sprintf("/api/medidas-provisorias?%s", params.Encode())
}
