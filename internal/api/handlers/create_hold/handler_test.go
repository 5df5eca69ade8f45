package create_hold

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createHold "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_hold"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *createHold.Response
	err  error
	got  *createHold.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createHold.Request) (*createHold.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

const validBody = `{
	"resourceId": 1,
	"serviceId": 2,
	"startAt": "2026-03-10T10:00:00Z",
	"endAt": "2026-03-10T11:00:00Z",
	"quantity": 1
}`

func postHolds(t *testing.T, uc *fakeUseCase, body, ownerToken string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds", strings.NewReader(body))
	if ownerToken != "" {
		req.Header.Set("X-Owner-Token", ownerToken)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CreatedHold(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createHold.Response{
		ID:         uuid.NewString(),
		ResourceID: 1,
		ServiceID:  2,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Quantity:   1,
		OwnerToken: "session-abc",
		ExpiresAt:  start.Add(10 * time.Minute),
		CreatedAt:  start,
	}}

	rec := postHolds(t, uc, validBody, "session-abc")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "session-abc", uc.got.OwnerToken)
	assert.Contains(t, rec.Body.String(), `"expiresAt"`)
}

func TestHandle_ConflictMapsTo409(t *testing.T) {
	uc := &fakeUseCase{err: createHold.ErrHoldConflict}

	rec := postHolds(t, uc, validBody, "session-abc")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_CapacityExceededMapsTo409(t *testing.T) {
	uc := &fakeUseCase{err: createHold.ErrCapacityExceeded}

	rec := postHolds(t, uc, validBody, "session-abc")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_ResourceNotFoundMapsTo404(t *testing.T) {
	uc := &fakeUseCase{err: createHold.ErrResourceNotFound}

	rec := postHolds(t, uc, validBody, "session-abc")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_StartInPastMapsTo400(t *testing.T) {
	uc := &fakeUseCase{err: createHold.ErrStartInPast}

	rec := postHolds(t, uc, validBody, "session-abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingOwnerToken(t *testing.T) {
	uc := &fakeUseCase{}

	rec := postHolds(t, uc, validBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := postHolds(t, uc, `{"resourceId": `, "session-abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	uc := &fakeUseCase{}
	body := strings.Replace(validBody, `"quantity": 1`, `"quantity": 1, "unknown": true`, 1)

	rec := postHolds(t, uc, body, "session-abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadTimestamp(t *testing.T) {
	uc := &fakeUseCase{}
	body := strings.Replace(validBody, "2026-03-10T10:00:00Z", "March 10th", 1)

	rec := postHolds(t, uc, body, "session-abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_DefaultQuantityIsOne(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createHold.Response{ID: uuid.NewString(), StartAt: start, EndAt: start, ExpiresAt: start, CreatedAt: start}}
	body := strings.Replace(validBody, `"quantity": 1`, `"quantity": 0`, 1)

	rec := postHolds(t, uc, body, "session-abc")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, uc.got.Quantity)
}
