package service

import (
	"context"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
)

const (
	// idOrgao of the plenary, which every deputy belongs to
	plenaryOrganID   = 180
	committeeSiteURL = "https://www.camara.leg.br/"
)

// CommitteeService lists the legislator's committee memberships
type CommitteeService struct {
	camara     *CamaraClient
	legislator config.Legislator
	since      string
}

// NewCommitteeService creates a new CommitteeService
func NewCommitteeService(cfg config.Config, camara *CamaraClient) *CommitteeService {
	return &CommitteeService{
		camara:     camara,
		legislator: cfg.Legislator,
		since:      cfg.FirstLegislatureDate,
	}
}

// List returns the memberships of legislatorID (the configured legislator when
// zero). With activeOnly, memberships that have ended are dropped. The plenary
// is never listed.
func (s *CommitteeService) List(ctx context.Context, legislatorID int, activeOnly bool) ([]model.Committee, error) {
	if legislatorID <= 0 {
		legislatorID = s.legislator.ID
	}

	raw, err := s.camara.FetchCommittees(ctx, legislatorID, s.since)
	if err != nil {
		return nil, err
	}

	committees := make([]model.Committee, 0, len(raw))
	for _, c := range raw {
		if c.ID == plenaryOrganID {
			continue
		}
		active := c.EndedAt == ""
		if activeOnly && !active {
			continue
		}
		committees = append(committees, model.Committee{
			ID:        c.ID,
			Acronym:   c.Acronym,
			Name:      c.Name,
			Nickname:  c.PublicationName,
			URL:       committeeSiteURL + c.Acronym,
			Role:      c.Role,
			StartedAt: c.StartedAt,
			EndedAt:   c.EndedAt,
			Active:    active,
		})
	}
	return committees, nil
}

// Legislator returns the configured legislator
func (s *CommitteeService) Legislator() config.Legislator {
	return s.legislator
}
