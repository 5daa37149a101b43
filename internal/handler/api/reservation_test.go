//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/rule"
	"stayhub/internal/handler/api"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubReservationCommands struct {
	createRes    *reservation.Reservation
	createErr    error
	updateRes    *reservation.Reservation
	updateErr    error
	lastStatus   reservation.Status
	paymentRes   *reservation.Reservation
	paymentErr   error
	createParams commands.CreateReservationParams
}

func (s *stubReservationCommands) Create(_ context.Context, params commands.CreateReservationParams) (*reservation.Reservation, error) {
	s.createParams = params
	return s.createRes, s.createErr
}

func (s *stubReservationCommands) UpdateStatus(_ context.Context, _ uuid.UUID, next reservation.Status) (*reservation.Reservation, error) {
	s.lastStatus = next
	return s.updateRes, s.updateErr
}

func (s *stubReservationCommands) AddPayment(_ context.Context, _ uuid.UUID, _ commands.AddPaymentParams) (*reservation.Reservation, error) {
	return s.paymentRes, s.paymentErr
}

type stubReservationQueries struct {
	view    *queries.ReservationView
	viewErr error
	items   []*queries.ReservationListItem
	listErr error
}

func (s *stubReservationQueries) GetByID(context.Context, uuid.UUID) (*queries.ReservationView, error) {
	return s.view, s.viewErr
}

func (s *stubReservationQueries) ListRecent(context.Context, int) ([]*queries.ReservationListItem, error) {
	return s.items, s.listErr
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubReservationCommands
	queries  *stubReservationQueries
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubReservationCommands{}
	s.queries = &stubReservationQueries{}
	handler := api.NewReservationHandler(s.commands, s.queries)

	s.router.POST("/reservations", handler.CreateReservation)
	s.router.GET("/reservations", handler.ListReservations)
	s.router.GET("/reservations/:id", handler.GetReservation)
	s.router.PATCH("/reservations/:id/status", handler.UpdateStatus)
	s.router.POST("/reservations/:id/payments", handler.AddPayment)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sampleReservation(s *suite.Suite) *reservation.Reservation {
	stay, err := reservation.NewStayRange(
		time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	return reservation.NewReservation(
		"R240615-0001",
		uuid.New(),
		reservation.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		stay,
		reservation.NewMoney(30000),
		reservation.SourceDirect,
		"",
		time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	)
}

func validCreateBody() map[string]any {
	return map[string]any{
		"room_type_id":     uuid.New().String(),
		"guest_first_name": "Ada",
		"guest_last_name":  "Lovelace",
		"guest_email":      "ada@example.com",
		"check_in":         "2024-06-20",
		"check_out":        "2024-06-23",
	}
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	s.Run("success: 201 with the created reservation", func() {
		s.commands.createRes = sampleReservation(&s.Suite)
		s.commands.createErr = nil

		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())

		s.Equal(http.StatusCreated, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("R240615-0001", body["reservation_number"])
		s.Equal("confirmed", body["status"])
	})

	s.Run("error: 400 on malformed dates", func() {
		body := validCreateBody()
		body["check_in"] = "20/06/2024"

		rec := s.perform(http.MethodPost, "/reservations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 on missing required fields", func() {
		body := validCreateBody()
		delete(body, "guest_email")

		rec := s.perform(http.MethodPost, "/reservations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when the room type does not exist", func() {
		s.commands.createRes = nil
		s.commands.createErr = commands.ErrRoomTypeNotFound

		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 422 with the violation list", func() {
		s.commands.createErr = &commands.RuleViolationError{Violations: []rule.Violation{
			{RuleName: "min 3 nights", RuleType: "min_stay", Message: "too short"},
		}}

		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), "min 3 nights")
	})

	s.Run("error: 409 when no rooms are left", func() {
		s.commands.createErr = &commands.NoAvailabilityError{Snapshot: queries.NewAvailabilitySnapshot(5, 5)}

		rec := s.perform(http.MethodPost, "/reservations", validCreateBody())

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "availability")
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateStatus() {
	url := "/reservations/" + uuid.NewString() + "/status"

	s.Run("success: 200 after a valid transition", func() {
		res := sampleReservation(&s.Suite)
		s.Require().NoError(res.TransitionTo(reservation.StatusCheckedIn, time.Now()))
		s.commands.updateRes = res
		s.commands.updateErr = nil

		rec := s.perform(http.MethodPatch, url, map[string]any{"status": "checked-in"})

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(reservation.StatusCheckedIn, s.commands.lastStatus)
	})

	s.Run("error: 400 on an unknown status value", func() {
		rec := s.perform(http.MethodPatch, url, map[string]any{"status": "hovering"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 409 on a forbidden transition", func() {
		s.commands.updateRes = nil
		s.commands.updateErr = commands.ErrInvalidTransition

		rec := s.perform(http.MethodPatch, url, map[string]any{"status": "checked-out"})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 404 for a missing reservation", func() {
		s.commands.updateErr = commands.ErrReservationNotFound

		rec := s.perform(http.MethodPatch, url, map[string]any{"status": "cancelled"})
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: 200 with the view", func() {
		id := uuid.New()
		s.queries.view = &queries.ReservationView{
			ID:       id,
			Number:   "R240615-0001",
			CheckIn:  time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC),
			Status:   "confirmed",
		}

		rec := s.perform(http.MethodGet, "/reservations/"+id.String(), nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "R240615-0001")
	})

	s.Run("error: 400 on a malformed ID", func() {
		rec := s.perform(http.MethodGet, "/reservations/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 when missing", func() {
		s.queries.view = nil
		s.queries.viewErr = queries.ErrReservationNotFound

		rec := s.perform(http.MethodGet, "/reservations/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
