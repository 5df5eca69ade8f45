package confirm_hold

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/holds"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	booking *domain.Booking
	err     error
}

func (f *fakeService) ConfirmHold(_ context.Context, _ string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func newRouter(svc *fakeService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/holds/{holdId}/confirm", h.Handle).Methods(http.MethodPost)
	return r
}

func confirmRequest(holdID string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/holds/"+holdID+"/confirm", nil)
}

func TestHandle_ConfirmedReturnsCreatedBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc := &fakeService{booking: &domain.Booking{
		ID:         77,
		ResourceID: 1,
		ServiceID:  2,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Quantity:   1,
		Status:     domain.StatusPending,
		CreatedAt:  start,
	}}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, confirmRequest(uuid.NewString()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":77`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestHandle_ExpiredHoldReturnsGone(t *testing.T) {
	svc := &fakeService{err: holds.ErrHoldExpired}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, confirmRequest(uuid.NewString()))

	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestHandle_MalformedHoldID(t *testing.T) {
	svc := &fakeService{}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, confirmRequest("not-a-uuid"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	svc := &fakeService{err: errors.New("connection reset")}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, confirmRequest(uuid.NewString()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
