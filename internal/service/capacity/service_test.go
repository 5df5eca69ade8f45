package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByResource(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeHoldRepo struct {
	holds []*domain.Hold
	err   error
}

func (f *fakeHoldRepo) GetActiveByResource(_ context.Context, _ int64, _, _, _ time.Time) ([]*domain.Hold, error) {
	return f.holds, f.err
}

type fakeConfigRepo struct {
	cfg *domain.ServiceConfig
	err error
}

func (f *fakeConfigRepo) GetByServiceID(_ context.Context, _ int64) (*domain.ServiceConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func newTestService(bookings *fakeBookingRepo, holds *fakeHoldRepo, cfg *fakeConfigRepo) *Service {
	svc := NewService(bookings, holds, cfg, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func validRequest() *Request {
	return &Request{
		ResourceID: 1,
		ServiceID:  2,
		StartAt:    at(10, 0),
		EndAt:      at(11, 0),
		Quantity:   1,
	}
}

func TestCheck_GroupServiceRemainingSeats(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 6, Status: domain.StatusConfirmed},
	}}
	holds := &fakeHoldRepo{holds: []*domain.Hold{
		{StartAt: at(10, 30), EndAt: at(11, 30), Quantity: 2},
	}}
	cfg := &fakeConfigRepo{cfg: &domain.ServiceConfig{ServiceID: 2, CapacityBased: true, TotalCapacity: 10}}
	svc := newTestService(bookings, holds, cfg)

	req := validRequest()
	req.Quantity = 3

	// Остаток 10 - 6 - 2 = 2: трое не помещаются
	result, err := svc.Check(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 2, result.Remaining)
	assert.Equal(t, 10, result.Total)

	req.Quantity = 2
	result, err = svc.Check(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheck_ExclusiveServiceSingleSeat(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeConfigRepo{})

	result, err := svc.Check(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 1, result.Remaining)
	assert.Equal(t, 1, result.Total)
}

func TestCheck_CancelledBookingsDoNotCount(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 1, Status: domain.StatusCancelled},
	}}
	svc := newTestService(bookings, &fakeHoldRepo{}, &fakeConfigRepo{})

	result, err := svc.Check(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheck_NegativeRemainingClampsToZero(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 5, Status: domain.StatusConfirmed},
	}}
	cfg := &fakeConfigRepo{cfg: &domain.ServiceConfig{ServiceID: 2, CapacityBased: true, TotalCapacity: 3}}
	svc := newTestService(bookings, &fakeHoldRepo{}, cfg)

	result, err := svc.Check(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0, result.Remaining)
}

func TestCheck_RepositoryError(t *testing.T) {
	holds := &fakeHoldRepo{err: errors.New("connection reset")}
	svc := newTestService(&fakeBookingRepo{}, holds, &fakeConfigRepo{})

	_, err := svc.Check(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCheck_ValidationErrors(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeConfigRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero resource", func(r *Request) { r.ResourceID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"end before start", func(r *Request) { r.StartAt, r.EndAt = r.EndAt, r.StartAt }},
		{"zero quantity", func(r *Request) { r.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Check(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
