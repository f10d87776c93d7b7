package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/fantasta/internal/dependencies/clock"
	"github.com/mcoot/fantasta/internal/metrics"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/storage"
)

// RecordVersion is written into every stored record
const RecordVersion = 1

// Store keys
const (
	SessionKey = "session"
	BackupKey  = "session:backup"
)

// Record is the stored form of a session
type Record struct {
	Version       int                  `json:"version"`
	Participants  []*model.Participant `json:"participants"`
	Players       []*model.Player      `json:"players"`
	InitialBudget int                  `json:"initialBudget"`
	Timestamp     int64                `json:"timestamp"` // unix milliseconds
}

// Service saves and restores the session. Store failures are logged as
// persistence warnings and never returned: the in-memory session stays
// authoritative for the rest of the run.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a new persistence service
func New(storage storage.Storage, clock clock.Clock, metrics *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// Save writes the session under the session key
func (s *Service) Save(ctx context.Context, session *model.Session) {
	s.put(ctx, SessionKey, "save", session)
}

// Load reads the stored session. It returns nil when nothing is stored or
// the record cannot be decoded.
func (s *Service) Load(ctx context.Context) *model.Session {
	return s.get(ctx, SessionKey, "load")
}

// Clear removes the stored session and its backup
func (s *Service) Clear(ctx context.Context) {
	for _, key := range []string{SessionKey, BackupKey} {
		if err := s.storage.DeleteRecord(ctx, key); err != nil {
			s.warn("clear", key, err)
		}
	}
}

// SaveBackup stores the state an undo would return to
func (s *Service) SaveBackup(ctx context.Context, session *model.Session) {
	s.put(ctx, BackupKey, "backup", session)
}

// LoadBackup returns the undo state, or nil when there is none
func (s *Service) LoadBackup(ctx context.Context) *model.Session {
	return s.get(ctx, BackupKey, "load_backup")
}

// DropBackup forgets the undo state
func (s *Service) DropBackup(ctx context.Context) {
	if err := s.storage.DeleteRecord(ctx, BackupKey); err != nil {
		s.warn("drop_backup", BackupKey, err)
	}
}

func (s *Service) put(ctx context.Context, key, action string, session *model.Session) {
	data, err := Encode(session, s.clock.Now())
	if err != nil {
		s.warn(action, key, err)
		return
	}
	if err := s.storage.SaveRecord(ctx, key, data); err != nil {
		s.warn(action, key, err)
	}
}

func (s *Service) get(ctx context.Context, key, action string) *model.Session {
	data, err := s.storage.GetRecord(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrRecordNotFound) {
			s.warn(action, key, err)
		}
		return nil
	}
	session, err := Decode(data)
	if err != nil {
		s.warn(action, key, err)
		return nil
	}
	return session
}

func (s *Service) warn(action, key string, err error) {
	s.metrics.PersistenceFailed(action)
	s.logger.Warn("persistence warning",
		slog.String("action", action),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// Encode serializes a session as a versioned record stamped with now
func Encode(session *model.Session, now time.Time) ([]byte, error) {
	rec := Record{
		Version:       RecordVersion,
		Participants:  session.Participants,
		Players:       session.Players,
		InitialBudget: session.InitialBudget,
		Timestamp:     now.UnixMilli(),
	}
	if rec.Participants == nil {
		rec.Participants = []*model.Participant{}
	}
	if rec.Players == nil {
		rec.Players = []*model.Player{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Decode parses a record, filling documented defaults for missing fields:
// initial budget 500, empty participant and player lists, empty rosters.
func Decode(data []byte) (*model.Session, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if rec.Version > RecordVersion {
		return nil, fmt.Errorf("decode session: unsupported record version %d", rec.Version)
	}

	session := model.NewSession()
	if rec.InitialBudget > 0 {
		session.InitialBudget = rec.InitialBudget
	}
	if rec.Timestamp > 0 {
		session.UpdatedAt = time.UnixMilli(rec.Timestamp).UTC()
	}

	for _, p := range rec.Participants {
		if p == nil {
			continue
		}
		if p.Roster == nil {
			p.Roster = []model.RosterEntry{}
		}
		session.Participants = append(session.Participants, p)
	}
	for _, p := range rec.Players {
		if p == nil {
			continue
		}
		normalizeOwnership(p)
		session.Players = append(session.Players, p)
	}
	return session, nil
}

// normalizeOwnership restores the rule that status, owner and price move
// together. Records written by hand may break it.
func normalizeOwnership(p *model.Player) {
	if p.OwnedBy != nil && p.PaidPrice != nil && (p.Status == model.StatusOwned || p.Status == "") {
		p.Status = model.StatusOwned
		return
	}
	p.MarkFree()
}
