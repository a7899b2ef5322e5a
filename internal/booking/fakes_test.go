package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/db/dbtest"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type memRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	locks    int
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[string]*Booking{}}
}

func (m *memRepo) LockProvider(ctx context.Context, _ provider.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !dbtest.InTx(ctx) {
		panic("LockProvider outside transaction")
	}
	m.locks++
	return nil
}

func (m *memRepo) HasOverlap(_ context.Context, owner provider.Owner, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Owner == owner && b.Status.IsActive() && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memRepo) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return m.GetByID(ctx, id)
}

func (m *memRepo) UpdateStatus(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = b.Status
	stored.UpdatedAt = time.Now()
	b.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *memRepo) List(_ context.Context, f Filter) ([]*Booking, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Booking
	for _, b := range m.bookings {
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.Owner != nil && b.Owner != *f.Owner {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memRepo) activeFor(owner provider.Owner) []*Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Booking
	for _, b := range m.bookings {
		if b.Owner == owner && b.Status.IsActive() {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

type memCatalog struct {
	mu       sync.Mutex
	services map[string]*catalog.Service
}

func (c *memCatalog) GetBookable(_ context.Context, id string) (*catalog.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.services[id]
	if !ok || !s.IsActive {
		return nil, catalog.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (c *memCatalog) add(s *catalog.Service) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[s.ID] = s
}

func (c *memCatalog) setPrice(id string, p decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[id].Price = p
}

// weekHours answers availability from (weekday, open, close) clock windows.
type weekHours struct {
	windows map[time.Weekday][2]string
}

func (w weekHours) IsWithinAvailability(_ context.Context, _ string, start time.Time, durationMin int) (bool, error) {
	start = start.UTC()
	end := start.Add(time.Duration(durationMin) * time.Minute)
	if end.Day() != start.Day() {
		return false, nil
	}
	win, ok := w.windows[start.Weekday()]
	if !ok {
		return false, nil
	}
	return win[0] <= start.Format("15:04") && win[1] >= end.Format("15:04"), nil
}

type fixture struct {
	svc     Service
	repo    *memRepo
	catalog *memCatalog
	tx      *dbtest.SerialTx
	expert  provider.Owner
	org     provider.Owner
	// X: 60 minutes, 100.00, owned by the expert who works Monday 09:00-17:00.
	serviceX *catalog.Service
	// Y: 30 minutes, owned by an organization.
	serviceY *catalog.Service
	user     string
}

// 2030-01-07 is a Monday.
func monday(hh, mm int) time.Time {
	return time.Date(2030, time.January, 7, hh, mm, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    newMemRepo(),
		catalog: &memCatalog{services: map[string]*catalog.Service{}},
		tx:      &dbtest.SerialTx{},
		expert:  provider.Expert(uuid.NewString()),
		org:     provider.Organization(uuid.NewString()),
		user:    uuid.NewString(),
	}
	f.serviceX = &catalog.Service{
		ID: uuid.NewString(), Title: "X", Price: decimal.RequireFromString("100.00"),
		DurationMin: 60, IsActive: true, Owner: f.expert,
	}
	f.serviceY = &catalog.Service{
		ID: uuid.NewString(), Title: "Y", Price: decimal.RequireFromString("35.50"),
		DurationMin: 30, IsActive: true, Owner: f.org,
	}
	f.catalog.add(f.serviceX)
	f.catalog.add(f.serviceY)

	hours := weekHours{windows: map[time.Weekday][2]string{time.Monday: {"09:00", "17:00"}}}
	log, _ := logtest.NewNullLogger()
	svc := NewService(f.repo, f.tx, f.catalog, hours, log, nil).(*service)
	svc.now = func() time.Time { return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func (f *fixture) book(t *testing.T, serviceID string, start time.Time) (*Booking, error) {
	t.Helper()
	return f.svc.Create(context.Background(), CreateRequest{UserID: f.user, ServiceID: serviceID, StartTime: start})
}

func mockExpert() provider.Owner {
	return provider.Expert(mockExpertID)
}
