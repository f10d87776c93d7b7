package auction

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/tabular"
)

// Import kinds, used as metric labels
const (
	kindCatalog  = "catalog"
	kindReimport = "reimport"
)

// CatalogSummary describes a loaded catalog
type CatalogSummary struct {
	Source   string   `json:"source,omitempty"`
	Players  int      `json:"players"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// ImportSummary describes a re-imported session
type ImportSummary struct {
	Participants int       `json:"participants"`
	Players      int       `json:"players"`
	Owned        int       `json:"owned"`
	ExportedAt   time.Time `json:"exportedAt,omitzero"`
	Warnings     []string  `json:"warnings"`
}

// JSONExport is the auxiliary JSON document of the whole auction
type JSONExport struct {
	Participants []*model.Participant `json:"participants"`
	Players      []*model.Player      `json:"players"`
	Stats        model.Stats          `json:"stats"`
	ExportDate   time.Time            `json:"exportDate"`
}

// LoadCatalog replaces the player catalog with the first sheet of an xlsx
// workbook. Every player starts free, so participants get their full budget
// back and empty rosters.
func (s *Service) LoadCatalog(ctx context.Context, data []byte, source string) (*CatalogSummary, error) {
	res, err := tabular.ParseCatalog(data, s.random)
	if err == nil && len(res.Players) == 0 {
		err = &model.ParseError{Reason: "no players found", Err: model.ErrEmptyCatalog}
	}
	s.metrics.ObserveImport(kindCatalog, err)
	if err != nil {
		s.logger.Warn("catalog rejected",
			slog.String("source", source),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.session.Clone()
	next.Players = res.Players
	for _, p := range next.Participants {
		p.Budget = next.InitialBudget
		p.Roster = []model.RosterEntry{}
	}
	s.commit(ctx, next)

	for _, w := range res.Warnings {
		s.logger.Warn("catalog warning", slog.String("source", source), slog.String("warning", w))
	}
	s.logger.Info("catalog loaded",
		slog.String("source", source),
		slog.String("sheet", res.Sheet),
		slog.Int("players", len(res.Players)),
		slog.Int("skipped", res.Skipped),
	)

	return &CatalogSummary{
		Source:   source,
		Players:  len(res.Players),
		Skipped:  res.Skipped,
		Warnings: nonNil(res.Warnings),
	}, nil
}

// Import replaces the whole session with the one stored in a workbook's
// re-import sheet. On any error the live session is untouched.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportSummary, error) {
	res, err := tabular.ParseReimport(data, s.random)
	s.metrics.ObserveImport(kindReimport, err)
	if err != nil {
		s.logger.Warn("import rejected", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, res.Session)

	for _, w := range res.Warnings {
		s.logger.Warn("import warning", slog.String("warning", w))
	}
	s.logger.Info("session imported",
		slog.Int("participants", len(res.Session.Participants)),
		slog.Int("players", len(res.Session.Players)),
		slog.Int("owned", res.OwnedCount),
	)

	return &ImportSummary{
		Participants: len(res.Session.Participants),
		Players:      len(res.Session.Players),
		Owned:        res.OwnedCount,
		ExportedAt:   res.ExportedAt,
		Warnings:     nonNil(res.Warnings),
	}, nil
}

// ExportWorkbook renders the four-sheet workbook and its download name
func (s *Service) ExportWorkbook(ctx context.Context) ([]byte, string, error) {
	s.mu.Lock()
	session := s.session.Clone()
	stats := s.ledger.Statistics()
	now := s.clock.Now()
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := tabular.WriteExport(&buf, session, stats, now); err != nil {
		s.logger.Error("export failed", slog.String("error", err.Error()))
		return nil, "", err
	}
	s.logger.Info("workbook exported", slog.Int("bytes", buf.Len()))
	return buf.Bytes(), tabular.ExportFileName(now), nil
}

// ExportJSON returns the auxiliary JSON export
func (s *Service) ExportJSON(ctx context.Context) *JSONExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session.Clone()
	return &JSONExport{
		Participants: session.Participants,
		Players:      session.Players,
		Stats:        s.ledger.Statistics(),
		ExportDate:   s.clock.Now(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
