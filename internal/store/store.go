// Package store keeps the dashboard's view of backend state. Every resource
// key carries its own invalidation token; Invalidate issues exactly one fetch
// and only the result of the most recently completed fetch for the latest
// trigger is ever observed as current. The cache is mutated solely by the
// fetch-completion handler; edits always go through a mutation call followed
// by an invalidation.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"figaro/internal/apierr"
	"figaro/internal/classify"
	"figaro/internal/domain"
	"figaro/internal/metrics"
	"figaro/internal/models"
	"figaro/internal/signal"
)

// Resource keys published on the bus.
const (
	KeyServices         = "services"
	KeyBarbers          = "barbers"
	KeyAppointments     = "appointments"
	KeyUserAppointments = "user_appointments"
	KeyBusinessHours    = "business_hours"
	KeyWaitingList      = "waiting_list"

	// SignalNavigateLogin asks the presentation layer to route to the login
	// screen after a session-expired failure. The engine never navigates
	// itself.
	SignalNavigateLogin = "navigate:login"
)

// Resource is one independently refreshable unit of backend state.
type Resource[T any] struct {
	key          string
	fetch        func(ctx context.Context) (T, error)
	empty        func() T
	authRequired bool

	bus     *signal.Bus
	session domain.SessionProvider
	logger  *zerolog.Logger

	mu      sync.Mutex
	value   T
	token   uint64
	applied uint64
}

func newResource[T any](
	key string,
	fetch func(ctx context.Context) (T, error),
	empty func() T,
	authRequired bool,
	bus *signal.Bus,
	session domain.SessionProvider,
	logger *zerolog.Logger,
) *Resource[T] {
	return &Resource[T]{
		key:          key,
		fetch:        fetch,
		empty:        empty,
		authRequired: authRequired,
		bus:          bus,
		session:      session,
		logger:       logger,
		value:        empty(),
	}
}

// Value returns the latest cached value.
func (r *Resource[T]) Value() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Invalidate marks the resource stale and issues one asynchronous fetch.
func (r *Resource[T]) Invalidate(ctx context.Context) {
	r.mu.Lock()
	r.token++
	token := r.token
	r.mu.Unlock()

	go r.run(ctx, token)
}

// run completes one fetch. A result is applied only when no later trigger
// has already been satisfied; superseded completions are discarded, which is
// the soft-cancellation rule protecting against a slow stale fetch
// overwriting a fresher value.
func (r *Resource[T]) run(ctx context.Context, token uint64) {
	requestID := uuid.NewString()
	value, err := r.fetch(ctx)

	r.mu.Lock()
	if token < r.applied {
		r.mu.Unlock()
		metrics.IncFetch(r.key, metrics.OutcomeDiscarded)
		r.logger.Debug().
			Str("resource", r.key).
			Str("request_id", requestID).
			Uint64("token", token).
			Msg("superseded fetch discarded")
		return
	}

	unauthorized := false
	if err != nil {
		// Failed reads reset to the explicit empty default, never stale data.
		r.value = r.empty()
		unauthorized = r.authRequired && apierr.IsUnauthorized(err)
	} else {
		r.value = value
	}
	r.applied = token
	r.mu.Unlock()

	switch {
	case err == nil:
		metrics.IncFetch(r.key, metrics.OutcomeOK)
	case unauthorized:
		metrics.IncFetch(r.key, metrics.OutcomeUnauthorized)
		r.logger.Warn().
			Str("resource", r.key).
			Str("request_id", requestID).
			Msg("session expired during fetch")
		r.session.Logout()
		r.bus.Publish(SignalNavigateLogin)
	default:
		metrics.IncFetch(r.key, metrics.OutcomeError)
		r.logger.Error().
			Err(err).
			Str("resource", r.key).
			Str("request_id", requestID).
			Msg("resource fetch failed")
	}

	r.bus.Publish(r.key)
}

// DatedResource is the per-date appointment resource. Changing the date
// re-keys the fetch and is itself a refresh trigger.
type DatedResource struct {
	*Resource[[]models.Appointment]

	dateMu sync.RWMutex
	date   string
}

// SetDate switches the resource to a new date and triggers a fetch.
func (d *DatedResource) SetDate(ctx context.Context, date string) {
	d.dateMu.Lock()
	d.date = date
	d.dateMu.Unlock()
	d.Invalidate(ctx)
}

// Date returns the currently selected date string.
func (d *DatedResource) Date() string {
	d.dateMu.RLock()
	defer d.dateMu.RUnlock()
	return d.date
}

// Key returns the fully qualified resource key, e.g. "appointments:2024-05-10".
func (d *DatedResource) Key() string {
	return KeyAppointments + ":" + d.Date()
}

// Store bundles the tracked resources of both dashboards.
type Store struct {
	api     domain.BookingAPI
	session domain.SessionProvider
	bus     *signal.Bus
	logger  *zerolog.Logger

	Services         *Resource[[]models.Service]
	Barbers          *Resource[[]models.Barber]
	BusinessHours    *Resource[[]models.BusinessHours]
	Appointments     *DatedResource
	UserAppointments *Resource[[]models.Appointment]
	WaitingList      *Resource[[]models.WaitingList]
}

// New wires the resource graph. The session provider is consulted for
// user-scoped fetches and for forced logout on session expiry.
func New(api domain.BookingAPI, session domain.SessionProvider, bus *signal.Bus, logger *zerolog.Logger) *Store {
	s := &Store{
		api:     api,
		session: session,
		bus:     bus,
		logger:  logger,
	}

	s.Services = newResource(KeyServices,
		api.ListServices,
		func() []models.Service { return []models.Service{} },
		false, bus, session, logger)

	s.Barbers = newResource(KeyBarbers,
		api.ListBarbers,
		func() []models.Barber { return []models.Barber{} },
		false, bus, session, logger)

	s.BusinessHours = newResource(KeyBusinessHours,
		api.BusinessHours,
		func() []models.BusinessHours { return []models.BusinessHours{} },
		true, bus, session, logger)

	s.Appointments = &DatedResource{}
	s.Appointments.Resource = newResource(KeyAppointments,
		func(ctx context.Context) ([]models.Appointment, error) {
			appointments, err := api.AppointmentsOn(ctx, s.Appointments.Date())
			if err != nil {
				return nil, err
			}
			return classify.SortByStartTime(appointments), nil
		},
		func() []models.Appointment { return []models.Appointment{} },
		true, bus, session, logger)

	s.UserAppointments = newResource(KeyUserAppointments,
		func(ctx context.Context) ([]models.Appointment, error) {
			userID, ok := session.CurrentUserID()
			if !ok {
				return nil, apierr.Validation("user id missing from session")
			}
			return api.AppointmentsForUser(ctx, userID)
		},
		func() []models.Appointment { return []models.Appointment{} },
		false, bus, session, logger)

	s.WaitingList = newResource(KeyWaitingList,
		func(ctx context.Context) ([]models.WaitingList, error) {
			userID, ok := session.CurrentUserID()
			if !ok {
				return nil, apierr.Validation("user id missing from session")
			}
			return api.WaitingListForCustomer(ctx, userID)
		},
		func() []models.WaitingList { return []models.WaitingList{} },
		false, bus, session, logger)

	return s
}

// Bus exposes the invalidation graph for derived views and navigation
// signals.
func (s *Store) Bus() *signal.Bus { return s.bus }
