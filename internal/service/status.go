package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eduride/eduride-ui/internal/domain/model"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

// StatusWriter persists a pickup status change on the backend.
type StatusWriter interface {
	SaveStatus(ctx context.Context, rec model.StatusRecord) error
}

// statusEntry is one student's row on a helper's board. seq is bumped on
// every mark; a failed save only reverts the row while its own seq is still
// current, so a stale failure can never clobber a newer mark.
type statusEntry struct {
	status model.PickupStatus
	marked time.Time
	seq    uint64
}

// StatusService keeps the per-session board of today's pickup statuses and
// applies marks optimistically: the board shows the new value immediately
// and rolls back to the previous one when the backend rejects the save.
type StatusService struct {
	writer StatusWriter
	logger *slog.Logger

	mu     sync.Mutex
	boards map[string]map[int64]*statusEntry // session ID -> student ID -> entry
}

// StatusServiceOptions groups dependencies for StatusService.
type StatusServiceOptions struct {
	Writer StatusWriter
	Logger *slog.Logger
}

// NewStatusService constructs a new StatusService.
func NewStatusService(opts StatusServiceOptions) *StatusService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusService{
		writer: opts.Writer,
		logger: logger,
		boards: make(map[string]map[int64]*statusEntry),
	}
}

// Seed replaces a session's board with the statuses fetched from the
// backend. Called on page load before any marks.
func (s *StatusService) Seed(sessionID string, records []model.StatusRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := make(map[int64]*statusEntry, len(records))
	for _, rec := range records {
		board[rec.StudentID] = &statusEntry{status: rec.PickupStatus, marked: rec.MarkedAt}
	}
	s.boards[sessionID] = board
}

// Board returns a snapshot of a session's board. The snapshot is detached;
// later marks do not mutate it.
func (s *StatusService) Board(sessionID string) map[int64]model.StatusRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.boards[sessionID]
	out := make(map[int64]model.StatusRecord, len(board))
	for id, entry := range board {
		out[id] = model.StatusRecord{StudentID: id, PickupStatus: entry.status, MarkedAt: entry.marked}
	}
	return out
}

// Forget drops a session's board, typically on logout.
func (s *StatusService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, sessionID)
}

// Mark applies a status change optimistically. The board is updated before
// the backend call; if the save fails, the row reverts to its previous
// value unless a newer mark for the same student has landed in the
// meantime. The returned record is the row's state after settlement, so
// the caller can render it either way.
func (s *StatusService) Mark(ctx context.Context, sessionID string, studentID int64, status model.PickupStatus) (model.StatusRecord, error) {
	if !model.ValidPickupStatus(status) {
		return model.StatusRecord{}, apperrors.Validation(fmt.Sprintf("unknown pickup status %q", status))
	}
	if studentID <= 0 {
		return model.StatusRecord{}, apperrors.Validation("student ID is required")
	}

	s.mu.Lock()
	board, ok := s.boards[sessionID]
	if !ok {
		board = make(map[int64]*statusEntry)
		s.boards[sessionID] = board
	}
	entry, ok := board[studentID]
	if !ok {
		entry = &statusEntry{}
		board[studentID] = entry
	}
	prev := entry.status
	entry.seq++
	token := entry.seq
	entry.status = status
	entry.marked = time.Now()
	s.mu.Unlock()

	err := s.writer.SaveStatus(ctx, model.StatusRecord{StudentID: studentID, PickupStatus: status})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if entry.seq == token {
			entry.status = prev
		} else {
			s.logger.DebugContext(ctx, "stale status save failed, keeping newer mark",
				"student_id", studentID)
		}
		return model.StatusRecord{StudentID: studentID, PickupStatus: entry.status, MarkedAt: entry.marked}, err
	}
	return model.StatusRecord{StudentID: studentID, PickupStatus: entry.status, MarkedAt: entry.marked}, nil
}
