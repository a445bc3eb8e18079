// Package hours implements the weekly business-hours draft editor: a local
// mutable copy of the fetched week plus a save transaction that normalizes
// time strings for the wire and recovers from expired sessions.
package hours

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"figaro/internal/apierr"
	"figaro/internal/dateutil"
	"figaro/internal/domain"
	"figaro/internal/metrics"
	"figaro/internal/models"
	"figaro/internal/store"
)

// User-facing outcomes of the save transaction.
const (
	MessageSaved          = "Orari di apertura aggiornati con successo."
	MessageSessionExpired = "Sessione scaduta. Effettua di nuovo l'accesso per modificare gli orari."
	MessageRetryLater     = "Impossibile aggiornare gli orari. Riprova più tardi."
)

// Editor owns the draft week. The draft is rebuilt from the store whenever
// the business-hours resource refreshes; uncommitted edits are discarded,
// never merged.
type Editor struct {
	api     domain.BookingAPI
	session domain.SessionProvider
	st      *store.Store
	logger  *zerolog.Logger

	mu      sync.Mutex
	draft   []models.BusinessHours
	saving  bool
	message string
}

// NewEditor wires the editor to the store's business-hours resource.
func NewEditor(api domain.BookingAPI, session domain.SessionProvider, st *store.Store, logger *zerolog.Logger) *Editor {
	e := &Editor{
		api:     api,
		session: session,
		st:      st,
		logger:  logger,
	}

	st.Bus().Subscribe(store.KeyBusinessHours, func(string) {
		e.mu.Lock()
		e.draft = NormalizeWeek(st.BusinessHours.Value())
		e.mu.Unlock()
	})

	return e
}

// Load triggers a fresh fetch of the week.
func (e *Editor) Load(ctx context.Context) {
	e.st.BusinessHours.Invalidate(ctx)
}

// Week returns a copy of the current draft, ordered by weekday ascending.
func (e *Editor) Week() []models.BusinessHours {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.BusinessHours(nil), e.draft...)
}

// ToggleDay flips a weekday between open and closed. Closing nulls both
// times; opening fills missing times with the defaults without overwriting
// times that are already set.
func (e *Editor) ToggleDay(weekday int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.draft {
		if e.draft[i].Weekday != weekday {
			continue
		}
		entry := &e.draft[i]
		entry.Open = !entry.Open
		if !entry.Open {
			entry.OpenTime = nil
			entry.CloseTime = nil
		} else {
			if entry.OpenTime == nil {
				entry.OpenTime = ptr(models.DefaultOpenTime)
			}
			if entry.CloseTime == nil {
				entry.CloseTime = ptr(models.DefaultCloseTime)
			}
		}
		return
	}
}

// IsSaving reports whether a save transaction is in flight.
func (e *Editor) IsSaving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Message returns the outcome of the last save transaction.
func (e *Editor) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Save submits the draft asynchronously. On success the business-hours
// resource is invalidated so the cache reflects the backend-confirmed state;
// on session expiry the session is closed and a navigate-to-login signal is
// emitted; any other failure leaves the cached week untouched. The saving
// flag drops on every exit path.
func (e *Editor) Save(ctx context.Context) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return
	}
	e.saving = true
	e.message = ""
	payload := wirePayload(e.draft)
	e.mu.Unlock()

	go e.run(ctx, payload)
}

func (e *Editor) run(ctx context.Context, payload []models.BusinessHours) {
	_, err := e.api.UpdateBusinessHours(ctx, payload)

	switch {
	case err == nil:
		metrics.IncMutation("update_business_hours", metrics.OutcomeOK)
		e.finish(MessageSaved)
		e.st.BusinessHours.Invalidate(ctx)
	case apierr.IsUnauthorized(err):
		metrics.IncMutation("update_business_hours", metrics.OutcomeUnauthorized)
		e.logger.Warn().Msg("session expired while saving business hours")
		e.finish(MessageSessionExpired)
		e.session.Logout()
		e.st.Bus().Publish(store.SignalNavigateLogin)
	default:
		metrics.IncMutation("update_business_hours", metrics.OutcomeError)
		e.logger.Error().Err(err).Msg("business hours save failed")
		e.finish(MessageRetryLater)
	}
}

func (e *Editor) finish(message string) {
	e.mu.Lock()
	e.saving = false
	e.message = message
	e.mu.Unlock()
}

// NormalizeWeek orders entries by weekday ascending and truncates times to
// HH:MM for display.
func NormalizeWeek(entries []models.BusinessHours) []models.BusinessHours {
	week := append([]models.BusinessHours(nil), entries...)
	sort.SliceStable(week, func(i, j int) bool { return week[i].Weekday < week[j].Weekday })

	for i := range week {
		if week[i].OpenTime != nil {
			week[i].OpenTime = ptr(dateutil.FormatTime(*week[i].OpenTime))
		}
		if week[i].CloseTime != nil {
			week[i].CloseTime = ptr(dateutil.FormatTime(*week[i].CloseTime))
		}
	}
	return week
}

// wirePayload applies the wire time format to open days and nulls the times
// of closed ones.
func wirePayload(draft []models.BusinessHours) []models.BusinessHours {
	payload := append([]models.BusinessHours(nil), draft...)
	for i := range payload {
		if payload[i].Open {
			payload[i].OpenTime = dateutil.FormatTimeForWire(payload[i].OpenTime)
			payload[i].CloseTime = dateutil.FormatTimeForWire(payload[i].CloseTime)
		} else {
			payload[i].OpenTime = nil
			payload[i].CloseTime = nil
		}
	}
	return payload
}

func ptr(s string) *string { return &s }
