package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newBoltRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.InitBolt(filepath.Join(t.TempDir(), "store", "test.db"))
	if err != nil {
		t.Fatalf("init bolt: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewBoltRepository(db, zap.NewNop())
	ctx := context.Background()
	if err := repo.Tenant.Create(ctx, &entity.Tenant{Base: entity.Base{ID: "t1"}, Name: "Acme", Status: entity.TenantStatusActive}); err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	if err := repo.Calendar.Create(ctx, &entity.Calendar{Base: entity.Base{ID: "c1"}, TenantID: "t1", Name: "Room A", IsActive: true}); err != nil {
		t.Fatalf("create calendar: %v", err)
	}
	return repo
}

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func hour(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newReservation(id string, start, end time.Time) *entity.Reservation {
	return &entity.Reservation{
		Base:       entity.Base{ID: id, CreatedAt: day, UpdatedAt: day},
		TenantID:   "t1",
		CalendarID: "c1",
		Start:      start,
		End:        end,
		UserID:     "u1",
		Details:    map[string]any{"title": "x"},
		Status:     entity.ReservationStatusConfirmed,
	}
}

func TestBoltCreateIfFree(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	if err := repo.Reservation.CreateIfFree(ctx, newReservation("r1", hour(9, 0), hour(10, 0)), 1); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	tests := []struct {
		name       string
		start, end time.Time
		capacity   int
		wantErr    error
	}{
		{name: "overlapping tail", start: hour(9, 30), end: hour(10, 30), capacity: 1, wantErr: ErrSlotUnavailable},
		{name: "contained", start: hour(9, 15), end: hour(9, 45), capacity: 1, wantErr: ErrSlotUnavailable},
		{name: "touching end is free", start: hour(10, 0), end: hour(11, 0), capacity: 1},
		{name: "touching start is free", start: hour(8, 0), end: hour(9, 0), capacity: 1},
		{name: "second seat under capacity 2", start: hour(9, 0), end: hour(9, 30), capacity: 2},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReservation("r-"+string(rune('a'+i)), tt.start, tt.end)
			err := repo.Reservation.CreateIfFree(ctx, r, tt.capacity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateIfFree() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	stored, err := repo.Reservation.FindByID(ctx, "r1")
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v, %v", stored, err)
	}
	if diff := cmp.Diff(newReservation("r1", hour(9, 0), hour(10, 0)), stored); diff != "" {
		t.Errorf("stored reservation mismatch (-want +got):\n%s", diff)
	}

	missing, err := repo.Reservation.FindByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("FindByID(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestBoltCreateIfFreeConcurrent(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := newReservation("r"+string(rune('0'+i)), hour(14, 0), hour(15, 0))
			errs[i] = repo.Reservation.CreateIfFree(ctx, r, 1)
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrSlotUnavailable):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("created %d reservations for one slot, want 1", created)
	}
}

func TestBoltCancelledDoesNotBlock(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	r := newReservation("r1", hour(9, 0), hour(10, 0))
	if err := repo.Reservation.CreateIfFree(ctx, r, 1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	r.Status = entity.ReservationStatusCancelled
	r.CancellationReason = "sick"
	if err := repo.Reservation.UpdateStatus(ctx, r); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	overlapping, err := repo.Reservation.FindOverlapping(ctx, "t1", "c1", hour(9, 0), hour(10, 0))
	if err != nil {
		t.Fatalf("FindOverlapping: %v", err)
	}
	if len(overlapping) != 0 {
		t.Fatalf("cancelled reservation still overlaps: %v", overlapping)
	}
	if err := repo.Reservation.CreateIfFree(ctx, newReservation("r2", hour(9, 0), hour(10, 0)), 1); err != nil {
		t.Fatalf("rebook cancelled slot: %v", err)
	}
}

func TestBoltFindByCalendarPaging(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	for i, h := range []int{12, 8, 10} {
		r := newReservation("r"+string(rune('a'+i)), hour(h, 0), hour(h+1, 0))
		if err := repo.Reservation.CreateIfFree(ctx, r, 1); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	total, err := repo.Reservation.CountByCalendar(ctx, "t1", "c1", day, day.Add(24*time.Hour))
	if err != nil || total != 3 {
		t.Fatalf("CountByCalendar = %d, %v; want 3", total, err)
	}

	got, err := repo.Reservation.FindByCalendar(ctx, "t1", "c1", day, day.Add(24*time.Hour), 2, 1)
	if err != nil {
		t.Fatalf("FindByCalendar: %v", err)
	}
	var starts []int
	for _, r := range got {
		starts = append(starts, r.Start.Hour())
	}
	if diff := cmp.Diff([]int{10, 12}, starts); diff != "" {
		t.Errorf("page order (-want +got):\n%s", diff)
	}
}

func TestBoltUserEmailUnique(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	user := &entity.User{Base: entity.Base{ID: "u1"}, TenantID: "t1", Email: "ann@example.com", Role: entity.RoleMember}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &entity.User{Base: entity.Base{ID: "u2"}, TenantID: "t1", Email: "ANN@example.com"}
	if err := repo.User.Create(ctx, dup); err == nil {
		t.Fatal("duplicate email accepted")
	}

	found, err := repo.User.FindByEmail(ctx, "Ann@Example.com")
	if err != nil || found == nil || found.ID != "u1" {
		t.Fatalf("FindByEmail = %v, %v", found, err)
	}
}
