package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figaro/internal/models"
)

func appointment(status, date, start string) models.Appointment {
	return models.Appointment{Status: status, Date: date, StartTime: start}
}

func TestStatusDisplayClass(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"CONFERMATO", ClassConfirmed},
		{"confermato", ClassConfirmed},
		{"COMPLETATO", ClassCompleted},
		{"ANNULLATO", ClassCancelled},
		{"cancelled", ClassCancelled},
		{"PENDING", ClassPending},
		{"IN_ATTESA", ClassPending},
		{"", ClassDefault},
		{"misterioso", ClassDefault},
		// First match wins on mixed text.
		{"CONFERMATO-ANNULLATO", ClassConfirmed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusDisplayClass(tc.status), tc.status)
	}
}

func TestIsUpcoming(t *testing.T) {
	t.Run("ConfirmedAndFuture", func(t *testing.T) {
		a := appointment(models.StatusConfirmed, "2024-05-10", "09:00:00")
		now := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.Local)
		assert.True(t, IsUpcoming(a, now))
	})

	t.Run("ConfirmedButPast", func(t *testing.T) {
		a := appointment(models.StatusConfirmed, "2024-05-10", "09:00:00")
		now := time.Date(2024, time.May, 11, 0, 0, 0, 0, time.Local)
		assert.False(t, IsUpcoming(a, now))
	})

	t.Run("NonConfirmedNeverUpcoming", func(t *testing.T) {
		now := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
		for _, status := range []string{models.StatusCancelled, models.StatusCompleted, models.StatusPending, "confermato", ""} {
			a := appointment(status, "2999-12-31", "09:00:00")
			assert.False(t, IsUpcoming(a, now), status)
		}
	})

	t.Run("UnresolvableInstant", func(t *testing.T) {
		now := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
		assert.False(t, IsUpcoming(appointment(models.StatusConfirmed, "", "09:00:00"), now))
		assert.False(t, IsUpcoming(appointment(models.StatusConfirmed, "2024-05-10", ""), now))
	})
}

func TestFilter(t *testing.T) {
	appointments := []models.Appointment{
		appointment(models.StatusConfirmed, "2024-05-10", "09:00:00"),
		appointment(models.StatusConfirmed, "2024-05-01", "09:00:00"),
		appointment(models.StatusCancelled, "2024-05-01", "10:00:00"),
		appointment(models.StatusCompleted, "2024-05-02", "11:00:00"),
		appointment(models.StatusConfirmed, "", "09:00:00"),
	}
	now := time.Date(2024, time.May, 9, 0, 0, 0, 0, time.Local)

	t.Run("Upcoming", func(t *testing.T) {
		got := Filter(appointments, FilterUpcoming, now)
		require.Len(t, got, 1)
		assert.Equal(t, "2024-05-10", got[0].Date)
	})

	t.Run("Canceled", func(t *testing.T) {
		got := Filter(appointments, FilterCanceled, now)
		require.Len(t, got, 1)
		assert.Equal(t, models.StatusCancelled, got[0].Status)
	})

	t.Run("PastExcludesCancelled", func(t *testing.T) {
		got := Filter(appointments, FilterPast, now)
		require.Len(t, got, 2)
		for _, a := range got {
			assert.NotEqual(t, models.StatusCancelled, a.Status)
		}
	})

	t.Run("ConfirmedBecomesPastOnceOver", func(t *testing.T) {
		later := time.Date(2024, time.May, 11, 0, 0, 0, 0, time.Local)
		got := Filter(appointments, FilterPast, later)
		dates := make([]string, 0, len(got))
		for _, a := range got {
			dates = append(dates, a.Date)
		}
		assert.Contains(t, dates, "2024-05-10")
	})

	t.Run("UnknownModeIsEmpty", func(t *testing.T) {
		assert.Empty(t, Filter(appointments, FilterMode("ALL"), now))
	})
}

func TestSortByStartTime(t *testing.T) {
	appointments := []models.Appointment{
		appointment(models.StatusConfirmed, "2024-05-10", "15:30:00"),
		appointment(models.StatusConfirmed, "2024-05-10", "09:00:00"),
		appointment(models.StatusConfirmed, "2024-05-10", "10:15:00"),
	}

	sorted := SortByStartTime(appointments)

	require.Len(t, sorted, 3)
	assert.Equal(t, "09:00:00", sorted[0].StartTime)
	assert.Equal(t, "10:15:00", sorted[1].StartTime)
	assert.Equal(t, "15:30:00", sorted[2].StartTime)
	// Input order untouched.
	assert.Equal(t, "15:30:00", appointments[0].StartTime)
}

func TestWaitingListMessage(t *testing.T) {
	assert.Equal(t, "In attesa di disponibilità", WaitingListMessage(models.WaitingStatusWaiting))
	assert.Equal(t, "Hai ricevuto una notifica di disponibilità", WaitingListMessage(models.WaitingStatusNotified))
	assert.Equal(t, "Appuntamento confermato", WaitingListMessage(models.WaitingStatusConfirmed))
	assert.Equal(t, "La richiesta è scaduta", WaitingListMessage(models.WaitingStatusExpired))
	assert.Equal(t, "Richiesta annullata", WaitingListMessage(models.WaitingStatusCancelled))
	assert.Equal(t, "Stato non disponibile", WaitingListMessage("QUALCOSA"))
}

func TestBadgeClass(t *testing.T) {
	assert.Equal(t, "badge-confermato", BadgeClass(appointment(models.StatusConfirmed, "", "")))
	assert.Equal(t, "badge-pending", BadgeClass(appointment("", "", "")))
}
