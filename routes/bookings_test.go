package routes

import (
	"fmt"
	"net/http"
	"testing"

	"autogenics-server/database"
	"autogenics-server/models"
)

func TestAvailabilityValidation(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/bookings/availability?date=July+1st", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/availability?date=2024-07-01", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if booked, ok := body["booked_slots"].([]interface{}); !ok || len(booked) != 0 {
		t.Fatalf("expected empty booked_slots, got %v", body["booked_slots"])
	}
}

func TestCreateBookingMissingFieldWritesNothing(t *testing.T) {
	router, _ := setupTestServer(t)
	_, token := createTestUser(t, "alice@example.com", false, false)

	payload := bookingPayload("2024-07-01", "10:00 AM")
	delete(payload, "car_make")

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", token, payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	database.DB.Model(&models.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after rejected submit, got %d", count)
	}
}

func TestCreateBookingRejectsUnknownCatalogValues(t *testing.T) {
	router, _ := setupTestServer(t)
	_, token := createTestUser(t, "alice@example.com", false, false)

	tests := []struct {
		name  string
		patch map[string]string
	}{
		{"unknown slot", map[string]string{"time_slot": "10:30 AM"}},
		{"unknown service", map[string]string{"service_id": "deluxe"}},
		{"malformed date", map[string]string{"date": "01/07/2024"}},
	}

	for _, tt := range tests {
		payload := bookingPayload("2024-07-01", "10:00 AM")
		for k, v := range tt.patch {
			payload[k] = v
		}
		w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", token, payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.name, w.Code)
		}
	}
}

func TestBookingScenario(t *testing.T) {
	router, _ := setupTestServer(t)
	_, aliceToken := createTestUser(t, "alice@example.com", false, false)
	_, bobToken := createTestUser(t, "bob@example.com", false, false)

	// Alice takes 10:00 AM on 2024-07-01
	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", aliceToken, bookingPayload("2024-07-01", "10:00 AM"))
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Availability now reports the slot as booked
	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/availability?date=2024-07-01", "", nil)
	body := decodeBody(t, w)
	booked := body["booked_slots"].([]interface{})
	if len(booked) != 1 || booked[0] != "10:00 AM" {
		t.Fatalf("expected [10:00 AM] booked, got %v", booked)
	}

	// Bob tries the same slot and is turned away
	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings", bobToken, bookingPayload("2024-07-01", "10:00 AM"))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate slot: expected 409, got %d", w.Code)
	}

	var count int64
	database.DB.Model(&models.Booking{}).Where("date = ? AND time_slot = ?", "2024-07-01", "10:00 AM").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row for the contested slot, got %d", count)
	}

	// 11:00 AM is free; Bob books it with the catalog price echoed
	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings", bobToken, bookingPayload("2024-07-01", "11:00 AM"))
	if w.Code != http.StatusCreated {
		t.Fatalf("second slot: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	booking := decodeBody(t, w)["booking"].(map[string]interface{})
	if booking["status"] != "confirmed" {
		t.Fatalf("expected confirmed status, got %v", booking["status"])
	}
	if booking["price"] != "$49.99" || booking["service_name"] != "Basic Wash" {
		t.Fatalf("catalog echo wrong: price=%v service=%v", booking["price"], booking["service_name"])
	}
}

func TestUniqueIndexArbitersDirectInsert(t *testing.T) {
	_, _ = setupTestServer(t)
	user, _ := createTestUser(t, "alice@example.com", false, false)

	first := models.Booking{
		UserID: user.ID, Date: "2024-07-01", TimeSlot: "10:00 AM",
		ServiceID: "basic", ServiceName: "Basic Wash", Price: "$49.99",
		CarMake: "Toyota", CarModel: "Camry", Phone: "555-0100",
		Status: models.BookingStatusConfirmed,
	}
	if err := database.DB.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := first
	second.ID = 0
	second.UserID = user.ID
	err := database.DB.Create(&second).Error
	if err == nil {
		t.Fatal("second insert for the same active slot must fail")
	}
	if !isUniqueViolation(err) {
		t.Fatalf("expected unique violation classification, got %v", err)
	}

	// A cancelled row releases the slot for rebooking
	if err := database.DB.Model(&first).Update("status", models.BookingStatusCancelled).Error; err != nil {
		t.Fatalf("cancel: %v", err)
	}
	second.ID = 0
	if err := database.DB.Create(&second).Error; err != nil {
		t.Fatalf("rebooking a cancelled slot should succeed: %v", err)
	}
}

func TestMyBookingsActiveSelection(t *testing.T) {
	router, _ := setupTestServer(t)
	user, token := createTestUser(t, "alice@example.com", false, false)

	dates := []string{"2024-07-01", "2024-07-02", "2024-07-03"}
	ids := make([]uint, 0, len(dates))
	for i, date := range dates {
		b := models.Booking{
			UserID: user.ID, Date: date, TimeSlot: "10:00 AM",
			ServiceID: "basic", ServiceName: "Basic Wash", Price: "$49.99",
			CarMake: "Toyota", CarModel: fmt.Sprintf("Model %d", i), Phone: "555-0100",
			Status: models.BookingStatusConfirmed,
		}
		if err := database.DB.Create(&b).Error; err != nil {
			t.Fatalf("seed booking: %v", err)
		}
		ids = append(ids, b.ID)
	}

	// Most recent date wins while nothing is in progress
	w := doJSON(t, router, http.MethodGet, "/api/v1/bookings/my", token, nil)
	body := decodeBody(t, w)
	if uint(body["active_booking_id"].(float64)) != ids[2] {
		t.Fatalf("expected most recent booking %d active, got %v", ids[2], body["active_booking_id"])
	}

	// An in_progress booking takes precedence
	database.DB.Model(&models.Booking{}).Where("id = ?", ids[0]).Update("status", models.BookingStatusInProgress)
	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/my", token, nil)
	body = decodeBody(t, w)
	if uint(body["active_booking_id"].(float64)) != ids[0] {
		t.Fatalf("expected in_progress booking %d active, got %v", ids[0], body["active_booking_id"])
	}
}

func TestDeleteOwnBooking(t *testing.T) {
	router, _ := setupTestServer(t)
	user, token := createTestUser(t, "alice@example.com", false, false)
	_, otherToken := createTestUser(t, "bob@example.com", false, false)

	booking := models.Booking{
		UserID: user.ID, Date: "2024-07-01", TimeSlot: "10:00 AM",
		ServiceID: "basic", ServiceName: "Basic Wash", Price: "$49.99",
		CarMake: "Toyota", CarModel: "Camry", Phone: "555-0100",
		Status: models.BookingStatusConfirmed,
	}
	database.DB.Create(&booking)

	// Another customer cannot touch it
	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", booking.ID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", w.Code)
	}

	// Completed bookings are immutable
	database.DB.Model(&booking).Update("status", models.BookingStatusCompleted)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", booking.ID), token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("terminal delete: expected 400, got %d", w.Code)
	}

	// Non-terminal bookings go away and leave the listing
	database.DB.Model(&booking).Update("status", models.BookingStatusConfirmed)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", booking.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/my", token, nil)
	body := decodeBody(t, w)
	if bookings := body["bookings"].([]interface{}); len(bookings) != 0 {
		t.Fatalf("expected empty listing after delete, got %d entries", len(bookings))
	}
}

func TestBookingRequiresAuth(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", "", bookingPayload("2024-07-01", "10:00 AM"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
