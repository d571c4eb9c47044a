package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
	"tenant-booking/pkg/utils"

	"go.uber.org/zap"
)

var errStore = errors.New("store unavailable")

type memTenants struct {
	mu      sync.Mutex
	tenants map[string]*entity.Tenant
	err     error
}

func (m *memTenants) Create(ctx context.Context, t *entity.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenants) FindByID(ctx context.Context, id string) (*entity.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.tenants[id], nil
}

func (m *memTenants) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range m.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(len(out), offset+limit)], nil
}

func (m *memTenants) CountAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tenants)), nil
}

func (m *memTenants) Update(ctx context.Context, t *entity.Tenant) error {
	return m.Create(ctx, t)
}

type memCalendars struct {
	mu        sync.Mutex
	calendars map[string]*entity.Calendar
}

func (m *memCalendars) Create(ctx context.Context, c *entity.Calendar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendars[c.ID] = c
	return nil
}

func (m *memCalendars) FindByID(ctx context.Context, id string) (*entity.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calendars[id], nil
}

func (m *memCalendars) FindByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Calendar
	for _, c := range m.calendars {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCalendars) CountByTenantID(ctx context.Context, tenantID string) (int64, error) {
	out, _ := m.FindByTenantID(ctx, tenantID, 0, 0)
	return int64(len(out)), nil
}

func (m *memCalendars) Update(ctx context.Context, c *entity.Calendar) error {
	return m.Create(ctx, c)
}

// memReservations mirrors the store contract: CreateIfFree is atomic under mu.
type memReservations struct {
	mu           sync.Mutex
	reservations map[string]*entity.Reservation
	writes       int
}

func (m *memReservations) overlapping(tenantID, calendarID string, start, end time.Time) []*entity.Reservation {
	var out []*entity.Reservation
	for _, r := range m.reservations {
		if r.TenantID == tenantID && r.CalendarID == calendarID &&
			r.Status != entity.ReservationStatusCancelled && entity.Overlaps(r.Start, r.End, start, end) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (m *memReservations) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (m *memReservations) FindOverlapping(ctx context.Context, tenantID, calendarID string, start, end time.Time) ([]*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapping(tenantID, calendarID, start, end), nil
}

func (m *memReservations) FindByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time, limit, offset int) ([]*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.overlapping(tenantID, calendarID, from, to)
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(len(out), offset+limit)], nil
}

func (m *memReservations) CountByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.overlapping(tenantID, calendarID, from, to))), nil
}

func (m *memReservations) CreateIfFree(ctx context.Context, r *entity.Reservation, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.overlapping(r.TenantID, r.CalendarID, r.Start, r.End)) >= max(capacity, 1) {
		return repository.ErrSlotUnavailable
	}
	m.reservations[r.ID] = r
	m.writes++
	return nil
}

func (m *memReservations) UpdateStatus(ctx context.Context, r *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *r
	m.reservations[r.ID] = &clone
	m.writes++
	return nil
}

func (m *memReservations) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUsers) Create(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// memIdempotency fails on a done context, like a network client would.
type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
	ttls map[string]time.Duration
}

func (m *memIdempotency) Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.keys[key]; ok {
		return id, false, nil
	}
	m.keys[key] = ""
	m.ttls[key] = ttl
	return "", true, nil
}

func (m *memIdempotency) Complete(ctx context.Context, key, id string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = id
	m.ttls[key] = ttl
	return nil
}

func (m *memIdempotency) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	delete(m.ttls, key)
	return nil
}

type fixture struct {
	repo         *repository.Repository
	tenants      *memTenants
	calendars    *memCalendars
	reservations *memReservations
	users        *memUsers
	idempotency  *memIdempotency
	config       *utils.Config
}

func ptr[T any](v T) *T { return &v }

func newFixture() *fixture {
	f := &fixture{
		tenants:      &memTenants{tenants: map[string]*entity.Tenant{}},
		calendars:    &memCalendars{calendars: map[string]*entity.Calendar{}},
		reservations: &memReservations{reservations: map[string]*entity.Reservation{}},
		users:        &memUsers{users: map[string]*entity.User{}},
		idempotency:  &memIdempotency{keys: map[string]string{}, ttls: map[string]time.Duration{}},
		config: &utils.Config{
			JWT: utils.JWTConfig{Secret: "test-secret", Issuer: "tenant-booking", ExpiryHours: 1},
		},
	}
	f.repo = &repository.Repository{
		Tenant:      f.tenants,
		Calendar:    f.calendars,
		Reservation: f.reservations,
		User:        f.users,
	}

	f.tenants.tenants["t1"] = &entity.Tenant{
		Base:   entity.Base{ID: "t1"},
		Name:   "Acme",
		Domain: "acme.test",
		Status: entity.TenantStatusActive,
		SchemaConfig: entity.SchemaConfig{
			"meeting": {
				Fields: []entity.SchemaFieldDefinition{
					{Name: "title", Type: entity.FieldTypeString, Required: true},
					{Name: "attendees", Type: entity.FieldTypeNumber, Min: ptr(1.0), Max: ptr(20.0)},
				},
			},
			"consult": {
				Fields:           []entity.SchemaFieldDefinition{{Name: "topic", Type: entity.FieldTypeString}},
				RequiresApproval: true,
			},
		},
	}
	f.tenants.tenants["t2"] = &entity.Tenant{
		Base:         entity.Base{ID: "t2"},
		Name:         "Other",
		Status:       entity.TenantStatusActive,
		SchemaConfig: entity.SchemaConfig{"meeting": {}},
	}
	f.calendars.calendars["c1"] = &entity.Calendar{
		Base:                  entity.Base{ID: "c1"},
		TenantID:              "t1",
		Name:                  "Room A",
		SlotDuration:          30,
		MaxConcurrentBookings: 1,
		IsActive:              true,
		ReservationTypeKey:    "meeting",
	}
	f.calendars.calendars["c-untyped"] = &entity.Calendar{
		Base:     entity.Base{ID: "c-untyped"},
		TenantID: "t1",
		Name:     "Hall",
		IsActive: true,
	}
	f.calendars.calendars["c2"] = &entity.Calendar{
		Base:     entity.Base{ID: "c2"},
		TenantID: "t2",
		Name:     "Elsewhere",
		IsActive: true,
	}
	return f
}

func (f *fixture) reservationService() *reservationService {
	return NewReservationService(f.repo, f.config, zap.NewNop()).(*reservationService)
}

func (f *fixture) seed(id, calendarID string, start, end string, status entity.ReservationStatus) {
	s, _ := utils.ParseTime(start)
	e, _ := utils.ParseTime(end)
	f.reservations.reservations[id] = &entity.Reservation{
		Base:       entity.Base{ID: id},
		TenantID:   f.calendars.calendars[calendarID].TenantID,
		CalendarID: calendarID,
		Start:      s,
		End:        e,
		UserID:     "owner",
		Status:     status,
	}
}

var (
	member     = &utils.Identity{UserID: "u1", TenantID: "t1", Roles: []string{"member"}}
	admin      = &utils.Identity{UserID: "a1", TenantID: "t1", Roles: []string{"admin"}}
	superAdmin = &utils.Identity{UserID: "root", Roles: []string{"super_admin"}}
	noClaims   = &utils.Identity{UserID: "u9"}
)
