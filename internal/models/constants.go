package models

// Appointment statuses as the backend emits them.
const (
	StatusConfirmed = "CONFERMATO"
	StatusCompleted = "COMPLETATO"
	StatusCancelled = "ANNULLATO"
	StatusPending   = "IN_ATTESA"
)

// Waiting list statuses.
const (
	WaitingStatusWaiting   = "IN_ATTESA"
	WaitingStatusNotified  = "NOTIFICATO"
	WaitingStatusConfirmed = "CONFERMATO"
	WaitingStatusExpired   = "SCADUTO"
	WaitingStatusCancelled = "ANNULLATO"
)

const (
	// DefaultOpenTime is filled in when a closed day is toggled open.
	DefaultOpenTime = "09:00"

	// DefaultCloseTime is filled in when a closed day is toggled open.
	DefaultCloseTime = "19:00"

	// UnassignedLabel is shown when an appointment has no barber yet.
	UnassignedLabel = "Non assegnato"

	// WeekdaysPerWeek is the grid column count; the calendar always emits
	// whole weeks.
	WeekdaysPerWeek = 7
)
