package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"figaro/internal/apierr"
	"figaro/internal/classify"
	"figaro/internal/domain"
	"figaro/internal/metrics"
	"figaro/internal/models"
	"figaro/internal/store"
)

// KeyCustomerFilter is the signal key advanced when the customer switches
// the appointment filter; the filtered view declares it as an input.
const KeyCustomerFilter = "customer:filter"

// DefaultCustomerName is shown when the session has no usable label.
const DefaultCustomerName = "Cliente"

// Customer drives the customer dashboard: the user's own appointments under
// an upcoming/canceled/past filter, and their waiting-list entries.
type Customer struct {
	api     domain.BookingAPI
	session domain.SessionProvider
	st      *store.Store
	logger  *zerolog.Logger
	now     func() time.Time

	mu     sync.Mutex
	filter classify.FilterMode

	filtered *store.Derived[[]models.Appointment]
}

// NewCustomer wires the dashboard and its filtered derived view.
func NewCustomer(api domain.BookingAPI, session domain.SessionProvider, st *store.Store, logger *zerolog.Logger) *Customer {
	c := &Customer{
		api:     api,
		session: session,
		st:      st,
		logger:  logger,
		now:     time.Now,
		filter:  classify.FilterUpcoming,
	}

	// Appointments × active filter: recomputed when either input advances.
	c.filtered = store.NewDerived(st.Bus(), func() []models.Appointment {
		return classify.Filter(st.UserAppointments.Value(), c.Filter(), c.now())
	}, store.KeyUserAppointments, KeyCustomerFilter)

	return c
}

// Load triggers the initial fetches for the signed-in user.
func (c *Customer) Load(ctx context.Context) {
	c.st.UserAppointments.Invalidate(ctx)
	c.st.WaitingList.Invalidate(ctx)
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	if label := c.session.CurrentUserLabel(); label != "" {
		return label
	}
	return DefaultCustomerName
}

// Filter returns the active appointment filter.
func (c *Customer) Filter() classify.FilterMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter switches the filter and advances its signal so the filtered
// view recomputes.
func (c *Customer) SetFilter(mode classify.FilterMode) {
	c.mu.Lock()
	c.filter = mode
	c.mu.Unlock()
	c.st.Bus().Publish(KeyCustomerFilter)
}

// FilteredAppointments returns the derived view for the active filter.
func (c *Customer) FilteredAppointments() []models.Appointment {
	return c.filtered.Value()
}

// FilterMessage describes the active filter.
func (c *Customer) FilterMessage() string {
	return classify.FilterMessage(c.Filter())
}

// WaitingList returns the cached waiting-list entries.
func (c *Customer) WaitingList() []models.WaitingList {
	return c.st.WaitingList.Value()
}

// CancelAppointment asks the backend to cancel and, on confirmed success,
// refetches the user's appointments. The cache is untouched on failure.
func (c *Customer) CancelAppointment(ctx context.Context, id int64) error {
	if id == 0 {
		return apierr.ErrNoTarget
	}

	if err := c.api.CancelAppointment(ctx, id); err != nil {
		metrics.IncMutation("cancel_appointment", metrics.OutcomeError)
		c.logger.Error().Err(err).Int64("appointment_id", id).Msg("cancel appointment failed")
		return fmt.Errorf("cancel appointment: %w", err)
	}
	metrics.IncMutation("cancel_appointment", metrics.OutcomeOK)
	c.st.UserAppointments.Invalidate(ctx)
	return nil
}

// RemoveFromWaitingList drops a waiting-list entry and refetches the list on
// confirmed success.
func (c *Customer) RemoveFromWaitingList(ctx context.Context, id int64) error {
	if id == 0 {
		return apierr.ErrNoTarget
	}

	if err := c.api.RemoveFromWaitingList(ctx, id); err != nil {
		metrics.IncMutation("remove_waiting", metrics.OutcomeError)
		c.logger.Error().Err(err).Int64("waiting_id", id).Msg("remove from waiting list failed")
		return fmt.Errorf("remove from waiting list: %w", err)
	}
	metrics.IncMutation("remove_waiting", metrics.OutcomeOK)
	c.st.WaitingList.Invalidate(ctx)
	return nil
}

// WaitingStatusMessage maps a waiting-list status to its fixed message.
func (c *Customer) WaitingStatusMessage(status string) string {
	return classify.WaitingListMessage(status)
}

// BadgeClass returns the badge for an appointment's status.
func (c *Customer) BadgeClass(a models.Appointment) string {
	return classify.BadgeClass(a)
}

// ServiceName labels an appointment's service.
func (c *Customer) ServiceName(service *models.Service) string {
	if service == nil || service.Name == "" {
		return "Servizio"
	}
	return service.Name
}

// ServiceDuration renders a service duration, "--" when unknown.
func (c *Customer) ServiceDuration(service *models.Service) string {
	if service == nil {
		return "--"
	}
	return fmt.Sprintf("%d min", service.Duration)
}

// BarberName labels an appointment's barber.
func (c *Customer) BarberName(barber *models.Barber) string {
	return barber.FullName()
}
