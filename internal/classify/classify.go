// Package classify implements the status and time based predicates shared by
// the customer and admin views: display-class mapping, the upcoming/past/
// canceled split, agenda ordering and waiting-list status messages.
package classify

import (
	"sort"
	"strings"
	"time"

	"figaro/internal/dateutil"
	"figaro/internal/models"
)

// FilterMode selects which slice of a customer's appointments is shown.
type FilterMode string

const (
	FilterUpcoming FilterMode = "UPCOMING"
	FilterCanceled FilterMode = "CANCELED"
	FilterPast     FilterMode = "PAST"
)

// Display classes for free-text statuses.
const (
	ClassConfirmed = "status-confirmed"
	ClassCompleted = "status-completed"
	ClassCancelled = "status-cancelled"
	ClassPending   = "status-pending"
	ClassDefault   = "status-default"
)

// StatusDisplayClass maps a free-text status onto a display class by
// case-insensitive substring match, first match wins. Admin views still
// receive partial or legacy status text, so this deliberately stays looser
// than the closed status set used by the filters.
func StatusDisplayClass(status string) string {
	normalized := strings.ToLower(status)

	switch {
	case strings.Contains(normalized, "confer"):
		return ClassConfirmed
	case strings.Contains(normalized, "complet"):
		return ClassCompleted
	case strings.Contains(normalized, "annull"), strings.Contains(normalized, "cancel"):
		return ClassCancelled
	case strings.Contains(normalized, "pend"), strings.Contains(normalized, "attesa"):
		return ClassPending
	default:
		return ClassDefault
	}
}

// BadgeClass is the customer-view badge for an appointment status.
func BadgeClass(a models.Appointment) string {
	if a.Status == "" {
		return "badge-pending"
	}
	return "badge-" + strings.ToLower(a.Status)
}

// StartInstant resolves an appointment's date and start time into a local
// instant. ok is false when either part is missing or unparseable.
func StartInstant(a models.Appointment) (time.Time, bool) {
	return dateutil.CombineDateAndTime(a.Date, a.StartTime)
}

// IsUpcoming reports whether the appointment is confirmed and not yet
// started. Any status other than exactly CONFERMATO is never upcoming.
func IsUpcoming(a models.Appointment, now time.Time) bool {
	if a.Status != models.StatusConfirmed {
		return false
	}
	start, ok := StartInstant(a)
	return ok && !start.Before(now)
}

// Filter returns the appointments matching mode. The mode set is closed:
// anything outside it yields an empty result.
func Filter(appointments []models.Appointment, mode FilterMode, now time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(appointments))
	for _, a := range appointments {
		switch mode {
		case FilterUpcoming:
			if IsUpcoming(a, now) {
				out = append(out, a)
			}
		case FilterCanceled:
			if a.Status == models.StatusCancelled {
				out = append(out, a)
			}
		case FilterPast:
			start, ok := StartInstant(a)
			if a.Status != models.StatusCancelled && ok && start.Before(now) {
				out = append(out, a)
			}
		}
	}
	return out
}

// SortByStartTime orders a day's agenda ascending by the formatted HH:MM
// start time. Lexicographic compare on the zero-padded form is chronological
// for same-day times.
func SortByStartTime(appointments []models.Appointment) []models.Appointment {
	sorted := append([]models.Appointment(nil), appointments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateutil.FormatTime(sorted[i].StartTime) < dateutil.FormatTime(sorted[j].StartTime)
	})
	return sorted
}

// FilterMessage describes the active filter to the customer.
func FilterMessage(mode FilterMode) string {
	switch mode {
	case FilterUpcoming:
		return "Mostro solo gli appuntamenti confermati da svolgere"
	case FilterCanceled:
		return "Mostro gli appuntamenti annullati"
	case FilterPast:
		return "Mostro gli appuntamenti già passati"
	default:
		return ""
	}
}

// WaitingListMessage maps a waiting-list status onto its fixed message.
func WaitingListMessage(status string) string {
	switch status {
	case models.WaitingStatusWaiting:
		return "In attesa di disponibilità"
	case models.WaitingStatusNotified:
		return "Hai ricevuto una notifica di disponibilità"
	case models.WaitingStatusConfirmed:
		return "Appuntamento confermato"
	case models.WaitingStatusExpired:
		return "La richiesta è scaduta"
	case models.WaitingStatusCancelled:
		return "Richiesta annullata"
	default:
		return "Stato non disponibile"
	}
}
