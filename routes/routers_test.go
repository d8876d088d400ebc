package routes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hotelbooking/metrics"
	"hotelbooking/repository"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/utils"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

var registerOnce sync.Once

type envelope struct {
	Code  int             `json:"code"`
	Mess  string          `json:"mess"`
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
	events *notification.Recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() {
		if err := validator.RegisterCustomValidations(); err != nil {
			t.Fatalf("RegisterCustomValidations() error = %v", err)
		}
	})

	store := repository.NewMemoryStore()
	if err := services.SeedDemo(context.Background(), store); err != nil {
		t.Fatalf("SeedDemo() error = %v", err)
	}

	events := &notification.Recorder{}
	m := metrics.New()
	log := logger.Discard{}
	housekeeping := services.NewHousekeeping(services.HousekeepingOptions{Store: store, Notifier: events, Metrics: m, Logger: log})
	facade := services.NewBookingFacade(services.BookingFacadeOptions{
		Store:        store,
		Housekeeping: housekeeping,
		Notifier:     events,
		Metrics:      m,
		Logger:       log,
	})
	tokens := services.NewTokenService("test-secret", time.Hour)

	router := gin.New()
	SetupRoutes(router, Dependencies{
		Tokens:       tokens,
		Auth:         services.NewAuthService(store, tokens, "", log),
		Hotels:       services.NewHotelService(store, nil, log),
		Staff:        services.NewStaffService(store, log),
		Bookings:     facade,
		Housekeeping: housekeeping,
		Metrics:      m,
		Logger:       log,
	})
	return &testApp{t: t, router: router, events: events}
}

func (a *testApp) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func (a *testApp) login(email string) (string, uint) {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": services.DemoPassword})
	if w.Code != http.StatusOK {
		a.t.Fatalf("login %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}
	var data struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user_info"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		a.t.Fatalf("decode login: %v", err)
	}
	return data.AccessToken, data.User.ID
}

// firstRoom trả về hotel, loại phòng đầu tiên của khách sạn đầu tiên
func (a *testApp) firstRoom() (uint, uint) {
	a.t.Helper()
	_, env := a.do(http.MethodGet, "/api/v1/hotels", "", nil)
	var hotels []struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &hotels); err != nil || len(hotels) == 0 {
		a.t.Fatalf("decode hotels: %v (%s)", err, env.Data)
	}
	_, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d/rooms", hotels[0].ID), "", nil)
	var rooms []struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &rooms); err != nil || len(rooms) == 0 {
		a.t.Fatalf("decode rooms: %v (%s)", err, env.Data)
	}
	return hotels[0].ID, rooms[0].ID
}

func bookingBody(hotelID, roomID uint, number int, start utils.Day, nights int) gin.H {
	return gin.H{
		"hotelId":    hotelID,
		"roomId":     roomID,
		"roomNumber": number,
		"dateStart":  start.String(),
		"dateEnd":    start.AddDays(nights).String(),
		"totalPrice": 300,
	}
}

func TestPingAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Errorf("GET /ping = %d %q, want 200 pong", w.Code, w.Body.String())
	}

	w, _ = app.do(http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "hotel_bookings_created_total") {
		t.Errorf("GET /metrics = %d, missing booking counter", w.Code)
	}
	if w.Header().Get("X-Session-ID") == "" {
		t.Errorf("X-Session-ID header is empty")
	}
}

func TestBookingRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(http.MethodPost, "/api/v1/bookings", "", gin.H{})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	w, _ = app.do(http.MethodPost, "/api/v1/bookings", "not-a-token", gin.H{})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status with bad token = %d, want 401", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	guest, guestID := app.login("user@example.com")
	admin, _ := app.login("admin@example.com")
	hotelID, roomID := app.firstRoom()
	start := utils.DayOf(time.Now()).AddDays(30)

	// đặt phòng 101 ba ngày
	w, env := app.do(http.MethodPost, "/api/v1/bookings", guest, bookingBody(hotelID, roomID, 101, start, 2))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}
	var booking struct {
		ID     uint   `json:"id"`
		UserID uint   `json:"userId"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.UserID != guestID || booking.Status != "confirmed" {
		t.Errorf("booking = %+v, want confirmed for user %d", booking, guestID)
	}

	// chồng ngày trên cùng số phòng
	w, env = app.do(http.MethodPost, "/api/v1/bookings", admin, bookingBody(hotelID, roomID, 101, start.AddDays(2), 1))
	if w.Code != http.StatusConflict {
		t.Errorf("overlap: status = %d, want 409 (%s)", w.Code, env.Mess)
	}
	// số phòng khác thì độc lập
	w, _ = app.do(http.MethodPost, "/api/v1/bookings", admin, bookingBody(hotelID, roomID, 102, start, 2))
	if w.Code != http.StatusCreated {
		t.Errorf("other number: status = %d, want 201", w.Code)
	}

	// lịch phòng thấy ba ngày của 101
	w, env = app.do(http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d/calendar?from=%s&to=%s", roomID, start, start.AddDays(5)), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("calendar: status = %d", w.Code)
	}
	var cal struct {
		Taken map[string][]string `json:"taken"`
	}
	if err := json.Unmarshal(env.Data, &cal); err != nil {
		t.Fatalf("decode calendar: %v", err)
	}
	if got := len(cal.Taken["101"]); got != 3 {
		t.Errorf("calendar 101 = %v, want 3 days", cal.Taken["101"])
	}

	w, env = app.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d/receipt", booking.ID), guest, nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"days":3`) {
		t.Errorf("receipt: status = %d, data = %s", w.Code, env.Data)
	}

	w, env = app.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/bookings", guestID), guest, nil)
	if w.Code != http.StatusOK || env.Total != 1 {
		t.Errorf("user bookings: status = %d, total = %d, want 200 1", w.Code, env.Total)
	}

	w, _ = app.do(http.MethodGet, "/api/v1/bookings", guest, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("guest list all: status = %d, want 403", w.Code)
	}
	w, env = app.do(http.MethodGet, "/api/v1/bookings?status=confirmed", admin, nil)
	if w.Code != http.StatusOK || env.Total != 2 {
		t.Errorf("admin list all: status = %d, total = %d, want 200 2", w.Code, env.Total)
	}

	w, _ = app.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/cancel", booking.ID), guest, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d, body = %s", w.Code, w.Body.String())
	}
	w, _ = app.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/cancel", booking.ID), guest, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second cancel: status = %d, want 409", w.Code)
	}

	// ngày đã được nhả
	w, _ = app.do(http.MethodPost, "/api/v1/bookings", admin, bookingBody(hotelID, roomID, 101, start.AddDays(2), 1))
	if w.Code != http.StatusCreated {
		t.Errorf("rebook after cancel: status = %d, want 201", w.Code)
	}

	w, _ = app.do(http.MethodGet, "/api/v1/housekeeping/rooms", admin, nil)
	if w.Code != http.StatusOK {
		t.Errorf("housekeeping: status = %d, want 200", w.Code)
	}
	if len(app.events.Events) == 0 {
		t.Errorf("no events published")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	app := newTestApp(t)
	guest, _ := app.login("user@example.com")
	hotelID, roomID := app.firstRoom()

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"bad date format", gin.H{"hotelId": hotelID, "roomId": roomID, "roomNumber": 101, "dateStart": "01/07/2030", "dateEnd": "2030-07-02"}, http.StatusBadRequest},
		{"end before start", gin.H{"hotelId": hotelID, "roomId": roomID, "roomNumber": 101, "dateStart": "2030-07-05", "dateEnd": "2030-07-02"}, http.StatusBadRequest},
		{"unknown room number", gin.H{"hotelId": hotelID, "roomId": roomID, "roomNumber": 999, "dateStart": "2030-07-01", "dateEnd": "2030-07-02"}, http.StatusNotFound},
		{"unknown room", gin.H{"hotelId": hotelID, "roomId": 99999, "roomNumber": 101, "dateStart": "2030-07-01", "dateEnd": "2030-07-02"}, http.StatusNotFound},
		{"missing fields", gin.H{"hotelId": hotelID}, http.StatusBadRequest},
		{"stay too long", gin.H{"hotelId": hotelID, "roomId": roomID, "roomNumber": 101, "dateStart": "2030-07-01", "dateEnd": "4999-12-31"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := app.do(http.MethodPost, "/api/v1/bookings", guest, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, env.Mess)
			}
		})
	}
}

func TestCancelByOtherGuestIsForbidden(t *testing.T) {
	app := newTestApp(t)
	guest, _ := app.login("user@example.com")
	worker, _ := app.login("worker@example.com")
	hotelID, roomID := app.firstRoom()
	start := utils.DayOf(time.Now()).AddDays(10)

	w, env := app.do(http.MethodPost, "/api/v1/bookings", guest, bookingBody(hotelID, roomID, 103, start, 1))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	var booking struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &booking)

	w, _ = app.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/cancel", booking.ID), worker, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("worker cancel: status = %d, want 403", w.Code)
	}
	w, _ = app.do(http.MethodPut, "/api/v1/bookings/99999/cancel", worker, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cancel missing: status = %d, want 404", w.Code)
	}
	w, _ = app.do(http.MethodPut, "/api/v1/bookings/abc/cancel", worker, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("cancel bad id: status = %d, want 400", w.Code)
	}

	// worker được trả phòng
	w, _ = app.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/complete", booking.ID), worker, nil)
	if w.Code != http.StatusOK {
		t.Errorf("worker complete: status = %d, want 200", w.Code)
	}
}

func TestCapabilityGuards(t *testing.T) {
	app := newTestApp(t)
	guest, _ := app.login("user@example.com")
	admin, _ := app.login("admin@example.com")

	hotel := gin.H{"name": "Harbor Inn", "city": "Hai Phong", "address": "2 Dock St"}
	w, _ := app.do(http.MethodPost, "/api/v1/hotels", guest, hotel)
	if w.Code != http.StatusForbidden {
		t.Errorf("guest create hotel: status = %d, want 403", w.Code)
	}
	w, _ = app.do(http.MethodPost, "/api/v1/hotels", admin, hotel)
	if w.Code != http.StatusCreated {
		t.Errorf("admin create hotel: status = %d, want 201", w.Code)
	}

	w, _ = app.do(http.MethodPost, "/api/v1/checkouts", guest, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("guest checkout sweep: status = %d, want 403", w.Code)
	}
	w, _ = app.do(http.MethodPost, "/api/v1/checkouts", admin, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin checkout sweep: status = %d, want 200", w.Code)
	}

	hotelID, _ := app.firstRoom()
	_, adminID := app.login("admin@example.com")
	w, env := app.do(http.MethodPost, "/api/v1/workers", admin, gin.H{
		"userId": adminID, "hotelId": hotelID, "name": "Night Desk", "role": "Housekeeper", "email": "desk@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create worker: status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode worker: %v", err)
	}
	workerPath := fmt.Sprintf("/api/v1/workers/%d", created.ID)
	w, _ = app.do(http.MethodGet, workerPath, guest, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("guest read worker: status = %d, want 403", w.Code)
	}
	w, _ = app.do(http.MethodGet, workerPath, admin, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin read worker: status = %d, want 200", w.Code)
	}

	w, env = app.do(http.MethodGet, "/api/v1/hotels?q=miami", "", nil)
	if w.Code != http.StatusOK || env.Total == 0 {
		t.Errorf("search: status = %d, total = %d", w.Code, env.Total)
	}
}
