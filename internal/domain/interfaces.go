package domain

import (
	"context"

	"figaro/internal/models"
)

// BookingAPI is the backend of record. Implementations return apierr
// failures; the engine inspects only the failure class, never the transport.
type BookingAPI interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, service models.Service) error
	UpdateService(ctx context.Context, id int64, service models.Service) error
	DeleteService(ctx context.Context, id int64) error

	ListBarbers(ctx context.Context) ([]models.Barber, error)
	CreateBarber(ctx context.Context, barber models.Barber) error
	UpdateBarber(ctx context.Context, id int64, barber models.Barber) error
	DeleteBarber(ctx context.Context, id int64) error
	ServicesForBarber(ctx context.Context, barberID int64) ([]models.Service, error)
	SetBarberServices(ctx context.Context, barberID int64, serviceIDs []int64) error

	AppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error)
	AppointmentsForUser(ctx context.Context, userID int64) ([]models.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error

	BusinessHours(ctx context.Context) ([]models.BusinessHours, error)
	UpdateBusinessHours(ctx context.Context, entries []models.BusinessHours) ([]models.BusinessHours, error)

	WaitingListForCustomer(ctx context.Context, userID int64) ([]models.WaitingList, error)
	RemoveFromWaitingList(ctx context.Context, id int64) error
}

// SessionProvider owns credential state. Token decoding and issuance stay
// behind this boundary; the engine only reads the cached snapshot.
type SessionProvider interface {
	IsAuthenticated() bool
	IsAdmin() bool
	CurrentUserID() (int64, bool)
	CurrentUserLabel() string
	Logout()
}
