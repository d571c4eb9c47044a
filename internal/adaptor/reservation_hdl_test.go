package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/dto/response"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubReservations struct {
	create    func(*utils.Identity, *request.CreateReservationRequest) (*response.CreateReservationResponse, error)
	lastQuery *request.ListReservationsRequest
	lastIDs   [2]string
}

func (s *stubReservations) CreateReservation(_ context.Context, identity *utils.Identity, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	return s.create(identity, req)
}

func (s *stubReservations) GetReservation(_ context.Context, _ *utils.Identity, id string) (*response.ReservationResponse, error) {
	if id != "r1" {
		return nil, usecase.NotFound("reservation not found")
	}
	return &response.ReservationResponse{ID: id}, nil
}

func (s *stubReservations) ListReservations(_ context.Context, _ *utils.Identity, tenantID, calendarID string, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	s.lastQuery = req
	s.lastIDs = [2]string{tenantID, calendarID}
	return &response.PaginatedResponse[response.ReservationResponse]{}, nil
}

func (s *stubReservations) CheckAvailability(context.Context, *utils.Identity, string, string, *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	return &response.AvailabilityResponse{Available: true}, nil
}

func (s *stubReservations) UpdateStatus(context.Context, *utils.Identity, string, *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	return nil, errors.New("db down")
}

func newTestRouter(svc usecase.ReservationService) http.Handler {
	h := NewReservationHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/reservations", h.CreateReservation)
	r.Get("/api/reservations/{reservationId}", h.GetReservation)
	r.Patch("/api/reservations/{reservationId}/status", h.UpdateStatus)
	r.Get("/api/tenants/{tenantId}/calendars/{calendarId}/reservations", h.ListReservations)
	return r
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  struct {
		Code string `json:"code"`
	} `json:"errors"`
}

func withCaller(req *http.Request) *http.Request {
	identity := &utils.Identity{UserID: "u1", TenantID: "t1", Roles: []string{"user"}}
	return req.WithContext(utils.SetIdentity(req.Context(), identity))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestStatusFor(t *testing.T) {
	tests := map[usecase.Kind]int{
		usecase.KindUnauthenticated:    http.StatusUnauthorized,
		usecase.KindPermissionDenied:   http.StatusForbidden,
		usecase.KindInvalidArgument:    http.StatusBadRequest,
		usecase.KindNotFound:           http.StatusNotFound,
		usecase.KindFailedPrecondition: http.StatusConflict,
		usecase.KindInternal:           http.StatusInternalServerError,
		usecase.Kind("SOMETHING_ELSE"): http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := StatusFor(kind); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestCreateReservationHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		anonymous bool
		result    *response.CreateReservationResponse
		err       error
		wantCode  int
		wantKind  string
		wantMsg   string
	}{
		{
			name:     "created",
			body:     `{"tenantId":"t1","calendarId":"c1","start":"2025-01-01T09:00:00Z","end":"2025-01-01T10:00:00Z","details":{}}`,
			result:   &response.CreateReservationResponse{Success: true, ReservationID: "r1", Status: "confirmed"},
			wantCode: http.StatusCreated,
		},
		{
			name:     "replay answers 200",
			body:     `{"tenantId":"t1"}`,
			result:   &response.CreateReservationResponse{Success: true, ReservationID: "r1", Replayed: true},
			wantCode: http.StatusOK,
		},
		{
			name:     "malformed json",
			body:     `{"tenantId":`,
			wantCode: http.StatusBadRequest,
			wantKind: "INVALID_ARGUMENT",
		},
		{
			name:      "anonymous caller is rejected before the body is read",
			body:      `{"tenantId":`,
			anonymous: true,
			wantCode:  http.StatusUnauthorized,
			wantKind:  "UNAUTHENTICATED",
		},
		{
			name:     "slot taken",
			body:     `{}`,
			err:      usecase.FailedPrecondition(usecase.MsgSlotUnavailable),
			wantCode: http.StatusConflict,
			wantKind: "FAILED_PRECONDITION",
			wantMsg:  "time slot not available",
		},
		{
			name:     "internal cause is hidden",
			body:     `{}`,
			err:      usecase.Internal(errors.New("connection refused to 10.0.0.3")),
			wantCode: http.StatusInternalServerError,
			wantKind: "INTERNAL",
			wantMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *request.CreateReservationRequest
			svc := &stubReservations{create: func(_ *utils.Identity, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
				got = req
				return tt.result, tt.err
			}}

			req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(tt.body))
			req.Header.Set("Idempotency-Key", "k-1")
			req.Header.Set("User-Agent", "test-agent")
			req.RemoteAddr = "203.0.113.9:41000"
			if !tt.anonymous {
				req = withCaller(req)
			}
			rec := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			env := decodeEnvelope(t, rec)
			if env.Errors.Code != tt.wantKind {
				t.Errorf("errors.code = %q, want %q", env.Errors.Code, tt.wantKind)
			}
			if tt.wantMsg != "" && env.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMsg)
			}
			if tt.wantKind == "INVALID_ARGUMENT" || tt.wantKind == "UNAUTHENTICATED" {
				if got != nil {
					t.Error("service called for a request rejected at the handler")
				}
				return
			}
			if got.IdempotencyKey != "k-1" || got.IPAddress != "203.0.113.9" || got.UserAgent != "test-agent" || got.Source != "api" {
				t.Errorf("request metadata not populated: %+v", got)
			}
		})
	}
}

func TestGetReservationHandler(t *testing.T) {
	router := newTestRouter(&stubReservations{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/r1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Errors.Code != "NOT_FOUND" {
		t.Errorf("errors.code = %q", env.Errors.Code)
	}
}

func TestUpdateStatusHandlerUntypedError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reservations/r1/status", strings.NewReader(`{"status":"cancelled"}`))
	newTestRouter(&stubReservations{}).ServeHTTP(rec, withCaller(req))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "db down") {
		t.Error("cause leaked into response body")
	}
}

func TestUpdateStatusHandlerAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reservations/r1/status", strings.NewReader(`not json`))
	newTestRouter(&stubReservations{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Errors.Code != "UNAUTHENTICATED" {
		t.Errorf("errors.code = %q", env.Errors.Code)
	}
}

func TestListReservationsHandlerQuery(t *testing.T) {
	svc := &stubReservations{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/tenants/t1/calendars/c1/reservations?page=3&perPage=500&from=2025-01-01T00:00:00Z", nil)
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastIDs != [2]string{"t1", "c1"} {
		t.Errorf("path params = %v", svc.lastIDs)
	}
	q := svc.lastQuery
	if q.Page != 3 || q.PerPage != 100 || q.From != "2025-01-01T00:00:00Z" || q.To != "" {
		t.Errorf("query = %+v", q)
	}
}

func TestWriteErrorLogsOnce(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "rejection", err: usecase.NotFound("reservation not found"), wantLevel: "warn"},
		{name: "internal", err: usecase.Internal(errors.New("db down")), wantLevel: "error"},
		{name: "untyped", err: errors.New("boom"), wantLevel: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			writeError(httptest.NewRecorder(), zap.New(core), tt.err, "get reservation")

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("logged %d entries, want 1", len(entries))
			}
			if got := entries[0].Level.String(); got != tt.wantLevel {
				t.Errorf("level = %s, want %s", got, tt.wantLevel)
			}
		})
	}
}
