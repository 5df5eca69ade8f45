package create_hold

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
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

// passthroughTx выполняет функцию без реальной транзакции
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeHoldRepo struct {
	active         []*domain.Hold
	created        *domain.Hold
	createErr      error
	expiredDeleted bool
}

func (f *fakeHoldRepo) Create(_ context.Context, h *domain.Hold) (*domain.Hold, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *h
	created.CreatedAt = testNow
	f.created = &created
	return &created, nil
}

func (f *fakeHoldRepo) GetActiveByResource(_ context.Context, _ int64, _, _, _ time.Time) ([]*domain.Hold, error) {
	return f.active, nil
}

func (f *fakeHoldRepo) DeleteExpiredByResource(_ context.Context, _ int64, _ time.Time) error {
	f.expiredDeleted = true
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByResource(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeBlockRepo struct {
	blocks []*domain.CalendarBlock
}

func (f *fakeBlockRepo) GetByResource(_ context.Context, _ int64, _, _ time.Time) ([]*domain.CalendarBlock, error) {
	return f.blocks, nil
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
	err error
}

func (f *fakeDirectory) GetResource(_ context.Context, id int64) (*directoryservice.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &directoryservice.Resource{ID: id, IsActive: true}, nil
}

type captureMetrics struct {
	created   int
	conflicts int
}

func (m *captureMetrics) IncHoldCreated()  { m.created++ }
func (m *captureMetrics) IncHoldConflict() { m.conflicts++ }

type deps struct {
	holds    *fakeHoldRepo
	bookings *fakeBookingRepo
	blocks   *fakeBlockRepo
	configs  *fakeConfigRepo
	dir      *fakeDirectory
	metrics  *captureMetrics
}

func newTestUseCase(d *deps) *UseCase {
	uc := NewUseCase(
		d.holds, d.bookings, d.blocks, d.configs, d.dir,
		passthroughTx{}, nopLogger{}, d.metrics,
		10*time.Minute,
	)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func defaultDeps() *deps {
	return &deps{
		holds:    &fakeHoldRepo{},
		bookings: &fakeBookingRepo{},
		blocks:   &fakeBlockRepo{},
		configs:  &fakeConfigRepo{},
		dir:      &fakeDirectory{},
		metrics:  &captureMetrics{},
	}
}

func validRequest() *Request {
	return &Request{
		ResourceID: 1,
		ServiceID:  2,
		StartAt:    at(10, 0),
		EndAt:      at(11, 0),
		Quantity:   1,
		OwnerToken: "session-abc",
	}
}

func TestExecute_CreatesExclusiveHoldWithTTL(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err)
	assert.Equal(t, at(10, 0), resp.StartAt)
	assert.Equal(t, at(11, 0), resp.EndAt)
	assert.Equal(t, testNow.Add(10*time.Minute), resp.ExpiresAt)
	assert.Equal(t, "session-abc", resp.OwnerToken)

	require.NotNil(t, d.holds.created)
	assert.True(t, d.holds.created.Exclusive)
	// Протухшие холды вычищаются в той же транзакции до вставки
	assert.True(t, d.holds.expiredDeleted)
	assert.Equal(t, 1, d.metrics.created)
	assert.Equal(t, 0, d.metrics.conflicts)
}

func TestExecute_TravelBufferExtendsReservedEnd(t *testing.T) {
	d := defaultDeps()
	d.configs.cfg = &domain.ServiceConfig{ServiceID: 2, TravelMinutes: 15}
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, at(11, 15), resp.EndAt)
}

func TestExecute_ExistingHoldConflicts(t *testing.T) {
	d := defaultDeps()
	d.holds.active = []*domain.Hold{
		{ID: uuid.NewString(), StartAt: at(10, 30), EndAt: at(11, 30), Quantity: 1},
	}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldConflict)
	assert.Nil(t, d.holds.created)
	assert.Equal(t, 1, d.metrics.conflicts)
}

func TestExecute_ExistingBookingConflicts(t *testing.T) {
	d := defaultDeps()
	d.bookings.bookings = []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 1, Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldConflict)
}

func TestExecute_CalendarBlockConflicts(t *testing.T) {
	d := defaultDeps()
	d.blocks.blocks = []*domain.CalendarBlock{
		{StartAt: at(9, 0), EndAt: at(12, 0)},
	}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldConflict)
}

func TestExecute_CapacityBasedAllowsSharedInterval(t *testing.T) {
	d := defaultDeps()
	d.configs.cfg = &domain.ServiceConfig{ServiceID: 2, CapacityBased: true, TotalCapacity: 10}
	d.bookings.bookings = []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 6, Status: domain.StatusConfirmed},
	}
	d.holds.active = []*domain.Hold{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 2},
	}
	uc := newTestUseCase(d)

	req := validRequest()
	req.Quantity = 2

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Quantity)
	assert.False(t, d.holds.created.Exclusive)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	d := defaultDeps()
	d.configs.cfg = &domain.ServiceConfig{ServiceID: 2, CapacityBased: true, TotalCapacity: 10}
	d.bookings.bookings = []*domain.Booking{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 6, Status: domain.StatusConfirmed},
	}
	d.holds.active = []*domain.Hold{
		{StartAt: at(10, 0), EndAt: at(11, 0), Quantity: 2},
	}
	uc := newTestUseCase(d)

	req := validRequest()
	req.Quantity = 3

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, d.metrics.conflicts)
}

func TestExecute_StartInPast(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := validRequest()
	req.StartAt = testNow.Add(-time.Hour)
	req.EndAt = testNow.Add(time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	d := defaultDeps()
	d.dir.err = directoryservice.ErrResourceNotFound
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_LostInsertRaceMapsToConflict(t *testing.T) {
	d := defaultDeps()
	d.holds.createErr = holdRepo.ErrHoldConflict
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldConflict)
	assert.Equal(t, 1, d.metrics.conflicts)
}

func TestExecute_ValidationErrors(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero resource", func(r *Request) { r.ResourceID = 0 }, ErrInvalidInput},
		{"end before start", func(r *Request) { r.StartAt, r.EndAt = r.EndAt, r.StartAt }, ErrInvalidInput},
		{"empty owner token", func(r *Request) { r.OwnerToken = "" }, ErrInvalidInput},
		{"quantity above maximum", func(r *Request) { r.Quantity = 101 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
