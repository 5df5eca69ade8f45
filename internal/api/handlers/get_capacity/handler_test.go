package get_capacity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/service/capacity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	result *capacity.Result
	err    error
	got    *capacity.Request
}

func (f *fakeService) Check(_ context.Context, req *capacity.Request) (*capacity.Result, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func getCapacity(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

const validTarget = "/api/v1/capacity?resourceId=1&serviceId=2" +
	"&start=2026-03-10T10:00:00Z&end=2026-03-10T11:00:00Z&quantity=3"

func TestHandle_ReturnsCapacity(t *testing.T) {
	svc := &fakeService{result: &capacity.Result{Available: false, Remaining: 2, Total: 10}}

	rec := getCapacity(t, svc, validTarget)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":false`)
	assert.Contains(t, rec.Body.String(), `"remaining":2`)
	assert.Contains(t, rec.Body.String(), `"total":10`)

	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.ResourceID)
	assert.Equal(t, 3, svc.got.Quantity)
}

func TestHandle_QuantityDefaultsToOne(t *testing.T) {
	svc := &fakeService{result: &capacity.Result{Available: true, Remaining: 1, Total: 1}}

	rec := getCapacity(t, svc,
		"/api/v1/capacity?resourceId=1&serviceId=2&start=2026-03-10T10:00:00Z&end=2026-03-10T11:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.got.Quantity)
}

func TestHandle_MissingOrMalformedParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing resourceId", "/api/v1/capacity?serviceId=2&start=2026-03-10T10:00:00Z&end=2026-03-10T11:00:00Z"},
		{"missing interval", "/api/v1/capacity?resourceId=1&serviceId=2"},
		{"bad start", "/api/v1/capacity?resourceId=1&serviceId=2&start=10am&end=2026-03-10T11:00:00Z"},
		{"bad quantity", validTarget + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := getCapacity(t, svc, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.got)
		})
	}
}

func TestHandle_InvalidInputMapsTo400(t *testing.T) {
	svc := &fakeService{err: capacity.ErrInvalidInput}

	rec := getCapacity(t, svc, validTarget)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalErrorMapsTo500(t *testing.T) {
	svc := &fakeService{err: capacity.ErrInternal}

	rec := getCapacity(t, svc, validTarget)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
