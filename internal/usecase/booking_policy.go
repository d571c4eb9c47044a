package usecase

import (
	"fmt"
	"strings"
	"time"

	"tenant-booking/internal/data/entity"
)

// BookingPolicy applies the calendar and tenant booking rules. When disabled
// every calendar admits a single reservation per interval and no rule is checked.
type BookingPolicy struct {
	enforce bool
	now     func() time.Time
}

func NewBookingPolicy(enforce bool) *BookingPolicy {
	return &BookingPolicy{enforce: enforce, now: time.Now}
}

func (p *BookingPolicy) Enforced() bool {
	return p.enforce
}

// Capacity is the number of overlapping non-cancelled reservations the calendar admits.
func (p *BookingPolicy) Capacity(calendar *entity.Calendar) int {
	if !p.enforce {
		return 1
	}
	return max(1, calendar.MaxConcurrentBookings)
}

// Check returns a FailedPrecondition error when [start, end) breaks a rule.
func (p *BookingPolicy) Check(tenant *entity.Tenant, calendar *entity.Calendar, start, end time.Time) error {
	if !p.enforce {
		return nil
	}

	if tenant.Status != entity.TenantStatusActive {
		return FailedPrecondition("tenant is not active")
	}
	if !calendar.IsActive {
		return FailedPrecondition("calendar is not active")
	}

	now := p.now()
	loc := tenantLocation(tenant)

	if rules := calendar.BookingRules; rules != nil {
		if rules.MinAdvanceHours > 0 && start.Before(now.Add(time.Duration(rules.MinAdvanceHours)*time.Hour)) {
			return FailedPrecondition("reservation must be made at least %d hours in advance", rules.MinAdvanceHours)
		}
		if rules.MaxDurationMinutes > 0 && end.Sub(start) > time.Duration(rules.MaxDurationMinutes)*time.Minute {
			return FailedPrecondition("reservation exceeds maximum duration of %d minutes", rules.MaxDurationMinutes)
		}
		if rules.AllowWeekends != nil && !*rules.AllowWeekends && touchesWeekend(start.In(loc), end.In(loc)) {
			return FailedPrecondition("weekend reservations are not allowed")
		}
	}

	if s := tenant.Settings; s != nil && s.MaxAdvanceBookingDays > 0 {
		if start.After(now.AddDate(0, 0, s.MaxAdvanceBookingDays)) {
			return FailedPrecondition("reservation cannot be made more than %d days in advance", s.MaxAdvanceBookingDays)
		}
	}

	if len(calendar.Availability) > 0 {
		return checkAvailability(calendar.Availability, start.In(loc), end.In(loc))
	}
	return nil
}

func tenantLocation(tenant *entity.Tenant) *time.Location {
	if tenant.Settings == nil || tenant.Settings.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tenant.Settings.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func touchesWeekend(start, end time.Time) bool {
	// end is exclusive
	last := end.Add(-time.Nanosecond)
	for day := dateOf(start); !day.After(dateOf(last)); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// checkAvailability requires [start, end) to sit inside one day's window
// without touching any of its breaks. Times are in the tenant's zone.
func checkAvailability(availability entity.Availability, start, end time.Time) error {
	day, ok := availability[strings.ToLower(start.Weekday().String())]
	if !ok {
		return FailedPrecondition("calendar is not available on %s", start.Weekday())
	}

	open, err := parseClock(day.Start)
	if err != nil {
		return FailedPrecondition("calendar availability is misconfigured")
	}
	closing, err := parseClock(day.End)
	if err != nil {
		return FailedPrecondition("calendar availability is misconfigured")
	}

	from := clockOf(start)
	to := from + int(end.Sub(start)/time.Minute)
	if end.Sub(start)%time.Minute != 0 {
		to++
	}
	if from < open || to > closing {
		return FailedPrecondition("requested time is outside calendar availability (%s-%s)", day.Start, day.End)
	}

	for _, b := range day.Breaks {
		bs, err1 := parseClock(b.Start)
		be, err2 := parseClock(b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if from < be && to > bs {
			name := b.Name
			if name == "" {
				name = "break"
			}
			return FailedPrecondition("requested time overlaps %s (%s-%s)", name, b.Start, b.End)
		}
	}
	return nil
}

// parseClock converts "15:04" to minutes after midnight; "24:00" is allowed.
func parseClock(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func clockOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// validateAvailability checks weekday keys and window bounds of a calendar template.
func validateAvailability(availability entity.Availability) error {
	for key, day := range availability {
		if !isWeekday(key) {
			return InvalidArgument("availability: unknown weekday '%s'", key)
		}
		open, err := parseClock(day.Start)
		if err != nil {
			return InvalidArgument("availability.%s.start: %v", key, err)
		}
		closing, err := parseClock(day.End)
		if err != nil {
			return InvalidArgument("availability.%s.end: %v", key, err)
		}
		if closing <= open {
			return InvalidArgument("availability.%s: end must be after start", key)
		}
		for i, b := range day.Breaks {
			bs, err1 := parseClock(b.Start)
			be, err2 := parseClock(b.End)
			if err1 != nil || err2 != nil || be <= bs {
				return InvalidArgument("availability.%s.breaks[%d]: invalid interval", key, i)
			}
		}
	}
	return nil
}

func isWeekday(key string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == key {
			return true
		}
	}
	return false
}
