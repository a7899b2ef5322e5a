package availability

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/stkrfx/digitaloffices-1/internal/db/dbtest"
)

// memRepo keeps weeks in memory. failNext makes the next replace fail before
// anything is written.
type memRepo struct {
	mu       sync.Mutex
	weeks    map[string][]Slot
	failNext error
}

func newMemRepo() *memRepo {
	return &memRepo{weeks: map[string][]Slot{}}
}

func (m *memRepo) ReplaceForExpert(_ context.Context, expertID string, slots []Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	week := make([]Slot, len(slots))
	for i, s := range slots {
		s.ID = uuid.NewString()
		s.ExpertID = expertID
		week[i] = s
	}
	sortSlots(week)
	m.weeks[expertID] = week
	return nil
}

func (m *memRepo) ListByExpert(_ context.Context, expertID string) ([]Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Slot, len(m.weeks[expertID]))
	copy(out, m.weeks[expertID])
	return out, nil
}

func (m *memRepo) HasCoveringSlot(_ context.Context, expertID string, day int, start, end string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.weeks[expertID] {
		if s.DayOfWeek == day && s.StartTime <= start && s.EndTime >= end {
			return true, nil
		}
	}
	return false, nil
}

var errDiskFull = errors.New("disk full")

func newTestService(t *testing.T) (Service, *memRepo, *dbtest.SerialTx) {
	t.Helper()
	repo := newMemRepo()
	tx := &dbtest.SerialTx{}
	log, _ := logtest.NewNullLogger()
	return NewService(repo, tx, log, nil), repo, tx
}
