package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/serviceconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeWindowRepo struct {
	windows []*domain.AvailabilityWindow
	err     error
}

func (f *fakeWindowRepo) GetForDay(_ context.Context, _ int64, _ string, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, f.err
}

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

type fakeBlockRepo struct {
	blocks []*domain.CalendarBlock
	err    error
}

func (f *fakeBlockRepo) GetByResource(_ context.Context, _ int64, _, _ time.Time) ([]*domain.CalendarBlock, error) {
	return f.blocks, f.err
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

type fakeDirectory struct {
	resource *directoryservice.Resource
	err      error
}

func (f *fakeDirectory) GetResource(_ context.Context, _ int64) (*directoryservice.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
}

type captureMetrics struct{ slots []int }

func (m *captureMetrics) ObserveSlotsGenerated(count int) { m.slots = append(m.slots, count) }

func newTestUseCase(
	windows *fakeWindowRepo,
	bookings *fakeBookingRepo,
	holds *fakeHoldRepo,
	blocks *fakeBlockRepo,
	cfg *fakeConfigRepo,
	dir *fakeDirectory,
	now time.Time,
) *UseCase {
	uc := NewUseCase(windows, bookings, holds, blocks, cfg, dir, nopLogger{}, NopMetrics{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ResourceID:         1,
		ServiceID:          2,
		Date:               testDate,
		DurationMinutes:    60,
		GranularityMinutes: 30,
		Quantity:           1,
	}
}

func TestExecute_HappyPathWithBuffers(t *testing.T) {
	windows := &fakeWindowRepo{windows: []*domain.AvailabilityWindow{window("09:00", "17:00")}}
	cfg := &fakeConfigRepo{cfg: &domain.ServiceConfig{ServiceID: 2, PreMinutes: 10, PostMinutes: 10}}
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1, Class: "bay"}}

	uc := newTestUseCase(windows, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{}, cfg, dir, at(6, 0))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 60 минут базы + 20 минут буферов = 80 минут на сетке в 30 минут
	require.Len(t, resp.Slots, 14)
	assert.Equal(t, at(9, 0), resp.Slots[0].StartAt)
	assert.Equal(t, at(10, 20), resp.Slots[0].EndAt)
	assert.Equal(t, at(15, 30), resp.Slots[13].StartAt)
}

func TestExecute_UnknownResourceReturnsEmptyList(t *testing.T) {
	dir := &fakeDirectory{err: directoryservice.ErrResourceNotFound}

	uc := newTestUseCase(&fakeWindowRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, dir, at(6, 0))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoWindowsReturnsEmptyList(t *testing.T) {
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1}}

	uc := newTestUseCase(&fakeWindowRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, dir, at(6, 0))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsEmptyList(t *testing.T) {
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1}}
	windows := &fakeWindowRepo{windows: []*domain.AvailabilityWindow{window("09:00", "17:00")}}

	uc := newTestUseCase(windows, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, dir, testDate.AddDate(0, 0, 3))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MissingConfigFallsBackToDefaults(t *testing.T) {
	windows := &fakeWindowRepo{windows: []*domain.AvailabilityWindow{window("09:00", "10:00")}}
	cfg := &fakeConfigRepo{err: configRepo.ErrConfigNotFound}
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1}}

	uc := newTestUseCase(windows, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{}, cfg, dir, at(6, 0))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Без буферов интервал равен базовой длительности
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(10, 0), resp.Slots[0].EndAt)
	assert.Equal(t, 1, resp.Slots[0].TotalSeats)
}

func TestExecute_StoreErrorAbortsWholeRequest(t *testing.T) {
	windows := &fakeWindowRepo{windows: []*domain.AvailabilityWindow{window("09:00", "17:00")}}
	bookings := &fakeBookingRepo{err: errors.New("connection reset")}
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1}}

	uc := newTestUseCase(windows, bookings, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, dir, at(6, 0))

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeWindowRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, &fakeDirectory{}, at(6, 0))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero resource", func(r *Request) { r.ResourceID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"duration too short", func(r *Request) { r.DurationMinutes = 1 }},
		{"duration too long", func(r *Request) { r.DurationMinutes = 10000 }},
		{"granularity too small", func(r *Request) { r.GranularityMinutes = 1 }},
		{"quantity below minimum", func(r *Request) { r.Quantity = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RecordsSlotCountMetric(t *testing.T) {
	windows := &fakeWindowRepo{windows: []*domain.AvailabilityWindow{window("09:00", "11:00")}}
	dir := &fakeDirectory{resource: &directoryservice.Resource{ID: 1}}

	uc := newTestUseCase(windows, &fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{},
		&fakeConfigRepo{}, dir, at(6, 0))
	m := &captureMetrics{}
	uc.metrics = m

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, m.slots, 1)
	assert.Equal(t, 3, m.slots[0])
}
