package dashboard

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"figaro/internal/models"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}
func (m *mockAPI) CreateService(ctx context.Context, s models.Service) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockAPI) UpdateService(ctx context.Context, id int64, s models.Service) error {
	return m.Called(ctx, id, s).Error(0)
}
func (m *mockAPI) DeleteService(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAPI) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Barber), args.Error(1)
}
func (m *mockAPI) CreateBarber(ctx context.Context, b models.Barber) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockAPI) UpdateBarber(ctx context.Context, id int64, b models.Barber) error {
	return m.Called(ctx, id, b).Error(0)
}
func (m *mockAPI) DeleteBarber(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAPI) ServicesForBarber(ctx context.Context, barberID int64) ([]models.Service, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}
func (m *mockAPI) SetBarberServices(ctx context.Context, barberID int64, serviceIDs []int64) error {
	return m.Called(ctx, barberID, serviceIDs).Error(0)
}
func (m *mockAPI) AppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}
func (m *mockAPI) AppointmentsForUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}
func (m *mockAPI) CancelAppointment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAPI) BusinessHours(ctx context.Context) ([]models.BusinessHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BusinessHours), args.Error(1)
}
func (m *mockAPI) UpdateBusinessHours(ctx context.Context, entries []models.BusinessHours) ([]models.BusinessHours, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BusinessHours), args.Error(1)
}
func (m *mockAPI) WaitingListForCustomer(ctx context.Context, userID int64) ([]models.WaitingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WaitingList), args.Error(1)
}
func (m *mockAPI) RemoveFromWaitingList(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type stubSession struct {
	mu      sync.Mutex
	userID  int64
	hasUser bool
	admin   bool
	label   string
	logouts int
}

func (s *stubSession) IsAuthenticated() bool { return s.hasUser }
func (s *stubSession) IsAdmin() bool         { return s.admin }
func (s *stubSession) CurrentUserID() (int64, bool) {
	return s.userID, s.hasUser
}
func (s *stubSession) CurrentUserLabel() string { return s.label }
func (s *stubSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logouts++
}
