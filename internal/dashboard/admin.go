// Package dashboard hosts the two view controllers built on the resource
// store: the admin console (services, barbers, agenda, business hours) and
// the customer dashboard (own appointments and waiting list).
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"figaro/internal/apierr"
	"figaro/internal/calendar"
	"figaro/internal/classify"
	"figaro/internal/dateutil"
	"figaro/internal/domain"
	"figaro/internal/hours"
	"figaro/internal/metrics"
	"figaro/internal/models"
	"figaro/internal/store"
)

// Admin drives the admin console. Mutations go through the BookingAPI and,
// on confirmed success, invalidate the owning resource; the cache is never
// written directly, so it always reflects backend-confirmed state.
type Admin struct {
	api     domain.BookingAPI
	session domain.SessionProvider
	st      *store.Store
	editor  *hours.Editor
	locale  calendar.Locale
	logger  *zerolog.Logger
	now     func() time.Time

	mu           sync.Mutex
	selectedDate string
	calendarRef  time.Time
	monthLabel   string
	days         []calendar.Day

	editingBarber     *models.Barber
	barberServiceIDs  map[int64]struct{}
	barberServicesSet bool
}

// NewAdmin wires the console. Call Init before use.
func NewAdmin(api domain.BookingAPI, session domain.SessionProvider, st *store.Store, editor *hours.Editor, locale calendar.Locale, logger *zerolog.Logger) *Admin {
	return &Admin{
		api:     api,
		session: session,
		st:      st,
		editor:  editor,
		locale:  locale,
		logger:  logger,
		now:     time.Now,
	}
}

// Init verifies the session and triggers the initial loads: services,
// barbers, business hours and today's agenda. A non-admin session emits the
// navigate-to-login signal and loads nothing.
func (a *Admin) Init(ctx context.Context) error {
	if !a.session.IsAdmin() {
		a.st.Bus().Publish(store.SignalNavigateLogin)
		return apierr.NewStatus("admin init", 403, nil)
	}

	a.st.Services.Invalidate(ctx)
	a.st.Barbers.Invalidate(ctx)
	a.editor.Load(ctx)

	today := a.now()
	a.setSelectedDate(dateutil.FormatDateForInput(today))
	a.st.Appointments.SetDate(ctx, a.SelectedDate())
	a.updateCalendar(&today)
	return nil
}

// Services returns the cached service list.
func (a *Admin) Services() []models.Service { return a.st.Services.Value() }

// Barbers returns the cached barber list.
func (a *Admin) Barbers() []models.Barber { return a.st.Barbers.Value() }

// Appointments returns the selected day's agenda, ordered by start time.
func (a *Admin) Appointments() []models.Appointment { return a.st.Appointments.Value() }

// HoursEditor exposes the business-hours draft editor.
func (a *Admin) HoursEditor() *hours.Editor { return a.editor }

// CreateService validates locally and submits a new service. Empty name or
// description never reaches the backend.
func (a *Admin) CreateService(ctx context.Context, service models.Service) error {
	if service.Name == "" || service.Description == "" {
		return apierr.Validation("service needs name and description")
	}

	if err := a.api.CreateService(ctx, service); err != nil {
		metrics.IncMutation("create_service", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("create service failed")
		return fmt.Errorf("create service: %w", err)
	}
	metrics.IncMutation("create_service", metrics.OutcomeOK)
	a.st.Services.Invalidate(ctx)
	return nil
}

// UpdateService saves an edited service.
func (a *Admin) UpdateService(ctx context.Context, service models.Service) error {
	if service.ID == 0 {
		return apierr.ErrNoTarget
	}

	if err := a.api.UpdateService(ctx, service.ID, service); err != nil {
		metrics.IncMutation("update_service", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("update service failed")
		return fmt.Errorf("update service: %w", err)
	}
	metrics.IncMutation("update_service", metrics.OutcomeOK)
	a.st.Services.Invalidate(ctx)
	return nil
}

// DeleteService removes a service. A zero id is a no-op.
func (a *Admin) DeleteService(ctx context.Context, id int64) error {
	if id == 0 {
		return apierr.ErrNoTarget
	}

	if err := a.api.DeleteService(ctx, id); err != nil {
		metrics.IncMutation("delete_service", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("delete service failed")
		return fmt.Errorf("delete service: %w", err)
	}
	metrics.IncMutation("delete_service", metrics.OutcomeOK)
	a.st.Services.Invalidate(ctx)
	return nil
}

// CreateBarber validates locally and submits a new barber.
func (a *Admin) CreateBarber(ctx context.Context, barber models.Barber) error {
	if barber.FirstName == "" || barber.LastName == "" {
		return apierr.Validation("barber needs first and last name")
	}

	if err := a.api.CreateBarber(ctx, barber); err != nil {
		metrics.IncMutation("create_barber", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("create barber failed")
		return fmt.Errorf("create barber: %w", err)
	}
	metrics.IncMutation("create_barber", metrics.OutcomeOK)
	a.st.Barbers.Invalidate(ctx)
	return nil
}

// DeleteBarber removes a barber. A zero id is a no-op.
func (a *Admin) DeleteBarber(ctx context.Context, id int64) error {
	if id == 0 {
		return apierr.ErrNoTarget
	}

	if err := a.api.DeleteBarber(ctx, id); err != nil {
		metrics.IncMutation("delete_barber", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("delete barber failed")
		return fmt.Errorf("delete barber: %w", err)
	}
	metrics.IncMutation("delete_barber", metrics.OutcomeOK)
	a.st.Barbers.Invalidate(ctx)
	return nil
}

// StartEditBarber opens the barber edit draft and loads the barber's current
// service assignment into the selection set.
func (a *Admin) StartEditBarber(ctx context.Context, barber models.Barber) error {
	a.mu.Lock()
	copied := barber
	a.editingBarber = &copied
	a.barberServiceIDs = make(map[int64]struct{})
	a.barberServicesSet = true
	a.mu.Unlock()

	if barber.ID == 0 {
		return nil
	}

	services, err := a.api.ServicesForBarber(ctx, barber.ID)
	if err != nil {
		a.logger.Error().Err(err).Int64("barber_id", barber.ID).Msg("load barber services failed")
		return fmt.Errorf("load barber services: %w", err)
	}

	a.mu.Lock()
	ids := make(map[int64]struct{}, len(services))
	for _, s := range services {
		ids[s.ID] = struct{}{}
	}
	a.barberServiceIDs = ids
	a.mu.Unlock()
	return nil
}

// CancelEditBarber discards the edit draft without merging anything back.
func (a *Admin) CancelEditBarber() {
	a.mu.Lock()
	a.editingBarber = nil
	a.barberServiceIDs = nil
	a.barberServicesSet = false
	a.mu.Unlock()
}

// EditingBarber returns a copy of the current draft, nil when no edit is in
// progress.
func (a *Admin) EditingBarber() *models.Barber {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.editingBarber == nil {
		return nil
	}
	copied := *a.editingBarber
	return &copied
}

// SetEditingBarberFields replaces the editable fields of the draft.
func (a *Admin) SetEditingBarberFields(barber models.Barber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.editingBarber == nil {
		return
	}
	barber.ID = a.editingBarber.ID
	*a.editingBarber = barber
}

// ToggleBarberService adds or removes a service from the selection set.
func (a *Admin) ToggleBarberService(serviceID int64, selected bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.barberServiceIDs == nil {
		a.barberServiceIDs = make(map[int64]struct{})
		a.barberServicesSet = true
	}
	if selected {
		a.barberServiceIDs[serviceID] = struct{}{}
	} else {
		delete(a.barberServiceIDs, serviceID)
	}
}

// BarberServiceSelected reports whether a service is in the selection set.
func (a *Admin) BarberServiceSelected(serviceID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.barberServiceIDs[serviceID]
	return ok
}

// SaveBarber runs the two-step save: barber fields first, then the service
// reassignment, issued only after the first step's confirmed success. There
// is no rollback: if step two fails, the barber fields stay applied on the
// backend and the draft stays open so the reassignment can be retried.
func (a *Admin) SaveBarber(ctx context.Context) error {
	a.mu.Lock()
	if a.editingBarber == nil {
		a.mu.Unlock()
		return apierr.ErrNoTarget
	}
	barber := *a.editingBarber
	hasSelection := a.barberServicesSet && barber.ID != 0
	serviceIDs := make([]int64, 0, len(a.barberServiceIDs))
	for id := range a.barberServiceIDs {
		serviceIDs = append(serviceIDs, id)
	}
	a.mu.Unlock()

	if err := a.api.UpdateBarber(ctx, barber.ID, barber); err != nil {
		metrics.IncMutation("update_barber", metrics.OutcomeError)
		a.logger.Error().Err(err).Msg("update barber failed")
		return fmt.Errorf("update barber: %w", err)
	}
	metrics.IncMutation("update_barber", metrics.OutcomeOK)

	if hasSelection {
		if err := a.api.SetBarberServices(ctx, barber.ID, serviceIDs); err != nil {
			metrics.IncMutation("set_barber_services", metrics.OutcomeError)
			a.logger.Error().Err(err).Int64("barber_id", barber.ID).Msg("set barber services failed")
			return fmt.Errorf("set barber services: %w", err)
		}
		metrics.IncMutation("set_barber_services", metrics.OutcomeOK)
	}

	a.st.Barbers.Invalidate(ctx)
	a.CancelEditBarber()
	return nil
}

// SelectedDate returns the agenda's selected date string.
func (a *Admin) SelectedDate() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedDate
}

func (a *Admin) setSelectedDate(date string) {
	a.mu.Lock()
	a.selectedDate = date
	a.mu.Unlock()
}

// SetSelectedDate reacts to a direct date-input change: refetch the day's
// appointments and recompute the grid around the new date.
func (a *Admin) SetSelectedDate(ctx context.Context, date string) {
	a.setSelectedDate(date)
	a.onAgendaDateChange(ctx)
}

func (a *Admin) onAgendaDateChange(ctx context.Context) {
	date := a.SelectedDate()
	if date == "" {
		return
	}
	a.st.Appointments.SetDate(ctx, date)
	a.updateCalendar(nil)
}

// SetToday selects the current day.
func (a *Admin) SetToday(ctx context.Context) {
	today := a.now()
	a.setSelectedDate(dateutil.FormatDateForInput(today))
	a.onAgendaDateChange(ctx)
	a.updateCalendar(&today)
}

// SelectDay selects a grid cell, also when it belongs to a neighbouring
// month: the grid re-anchors on that day's month.
func (a *Admin) SelectDay(ctx context.Context, day calendar.Day) {
	a.setSelectedDate(dateutil.FormatDateForInput(day.Date))
	a.onAgendaDateChange(ctx)
	a.updateCalendar(&day.Date)
}

// PrevMonth shows the previous month without changing the selection.
func (a *Admin) PrevMonth() {
	ref := calendar.ShiftMonth(a.calendarReference(), -1)
	a.updateCalendar(&ref)
}

// NextMonth shows the next month without changing the selection.
func (a *Admin) NextMonth() {
	ref := calendar.ShiftMonth(a.calendarReference(), 1)
	a.updateCalendar(&ref)
}

func (a *Admin) calendarReference() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calendarRef.IsZero() {
		return calendar.MonthStart(a.now())
	}
	return a.calendarRef
}

// MonthLabel returns the heading of the displayed month.
func (a *Admin) MonthLabel() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.monthLabel
}

// CalendarDays returns the current grid.
func (a *Admin) CalendarDays() []calendar.Day {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]calendar.Day(nil), a.days...)
}

// WeekdayHeaders returns the Monday-first column headers.
func (a *Admin) WeekdayHeaders() [7]string { return a.locale.WeekdayHeaders }

// DayName returns the localized name for a backend weekday.
func (a *Admin) DayName(weekday int) string { return a.locale.DayName(weekday) }

// StatusClass maps a free-text appointment status to its display class.
func (a *Admin) StatusClass(status string) string { return classify.StatusDisplayClass(status) }

// FormatTime truncates a backend time value for display.
func (a *Admin) FormatTime(value string) string { return dateutil.FormatTime(value) }

// updateCalendar regenerates the grid. With a nil reference it anchors on
// the selected date when parseable, today otherwise.
func (a *Admin) updateCalendar(reference *time.Time) {
	now := a.now()

	var selected *time.Time
	if parsed, ok := dateutil.ParseDateInput(a.SelectedDate()); ok {
		selected = &parsed
	}

	base := now
	if reference != nil {
		base = *reference
	} else if selected != nil {
		base = *selected
	}

	start := calendar.MonthStart(base)
	days := calendar.BuildMonthGrid(start, selected, now)

	a.mu.Lock()
	a.calendarRef = start
	a.monthLabel = a.locale.MonthLabel(start)
	a.days = days
	a.mu.Unlock()
}
