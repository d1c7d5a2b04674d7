package router_test

import (
	"net/http"
	"testing"

	"github.com/vaughan-dsouza/rentwheels/internal/events"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/testutil"
)

func bookingBody(vehicleID int64, start, end string) map[string]any {
	return map[string]any{"vehicle_id": vehicleID, "start_date": start, "end_date": end}
}

func TestBookingLifecycle(t *testing.T) {
	a := newAPI(t)
	owner, ownerTok := a.user("Owner", "owner@example.com", models.RoleOwner)
	_, renterTok := a.user("Renter", "renter@example.com", models.RoleRenter)
	_, otherTok := a.user("Other", "other@example.com", models.RoleRenter)
	v := testutil.CreateVehicle(t, a.store, owner.ID)

	expectStatus(t, a.do(http.MethodPost, "/bookings", ownerTok, bookingBody(v.ID, "2031-03-10", "2031-03-13")), http.StatusForbidden)

	w := a.do(http.MethodPost, "/bookings", renterTok, bookingBody(v.ID, "2031-03-10", "2031-03-13"))
	expectStatus(t, w, http.StatusCreated)
	b := decode[models.Booking](t, w)
	if b.Status != models.BookingPending || b.TotalPrice != 3*v.DailyRate {
		t.Fatalf("unexpected booking: %+v", b)
	}
	path := "/bookings/" + itoa(b.ID)

	w = a.do(http.MethodPost, "/bookings", otherTok, bookingBody(v.ID, "2031-03-12", "2031-03-15"))
	expectStatus(t, w, http.StatusUnprocessableEntity)
	if e := decode[errorBody](t, w); e.Fields["start_date"] == "" {
		t.Fatalf("expected overlap error: %+v", e)
	}

	// back-to-back ranges do not overlap
	expectStatus(t, a.do(http.MethodPost, "/bookings", otherTok, bookingBody(v.ID, "2031-03-13", "2031-03-14")), http.StatusCreated)

	expectStatus(t, a.do(http.MethodPut, path, renterTok, map[string]string{"status": "confirmed"}), http.StatusForbidden)
	expectStatus(t, a.do(http.MethodPut, path, ownerTok, map[string]string{"status": "completed"}), http.StatusUnprocessableEntity)
	expectStatus(t, a.do(http.MethodPut, path, ownerTok, map[string]string{"status": "cancelled"}), http.StatusUnprocessableEntity)

	w = a.do(http.MethodPut, path, ownerTok, map[string]string{"status": "confirmed"})
	expectStatus(t, w, http.StatusOK)
	if got := decode[models.Booking](t, w); got.Status != models.BookingConfirmed {
		t.Fatalf("unexpected status %s", got.Status)
	}

	expectStatus(t, a.do(http.MethodDelete, path, otherTok, nil), http.StatusForbidden)
	w = a.do(http.MethodDelete, path, renterTok, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[models.Booking](t, w); got.Status != models.BookingCancelled {
		t.Fatalf("unexpected status %s", got.Status)
	}
	expectStatus(t, a.do(http.MethodDelete, path, renterTok, nil), http.StatusUnprocessableEntity)

	// the cancelled booking is kept
	w = a.do(http.MethodGet, "/bookings?vehicle_id="+itoa(v.ID)+"&status=cancelled", "", nil)
	expectStatus(t, w, http.StatusOK)
	if list := decode[[]models.Booking](t, w); len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected cancelled list: %+v", list)
	}

	keys := a.pub.Keys()
	want := []string{events.BookingCreated, events.BookingCreated, events.BookingConfirmed, events.BookingCancelled}
	if len(keys) != len(want) {
		t.Fatalf("published %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("published %v, want %v", keys, want)
		}
	}
}

func TestCreateBookingValidation(t *testing.T) {
	a := newAPI(t)
	owner, ownerTok := a.user("Owner", "owner@example.com", models.RoleOwner)
	_, renterTok := a.user("Renter", "renter@example.com", models.RoleRenter)
	v := testutil.CreateVehicle(t, a.store, owner.ID)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"bad format", bookingBody(v.ID, "10/03/2031", "2031-03-13"), "start_date"},
		{"end before start", bookingBody(v.ID, "2031-03-13", "2031-03-10"), "end_date"},
		{"same day", bookingBody(v.ID, "2031-03-13", "2031-03-13"), "end_date"},
		{"in the past", bookingBody(v.ID, "2001-01-01", "2001-01-03"), "start_date"},
		{"unknown vehicle", bookingBody(9999, "2031-03-10", "2031-03-13"), "vehicle_id"},
	}
	for _, tc := range cases {
		w := a.do(http.MethodPost, "/bookings", renterTok, tc.body)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		if e := decode[errorBody](t, w); e.Fields[tc.field] == "" {
			t.Fatalf("%s: expected %s error, got %+v", tc.name, tc.field, e)
		}
	}

	expectStatus(t, a.do(http.MethodPut, "/vehicles/"+itoa(v.ID), ownerTok, map[string]any{"available": false}), http.StatusOK)
	w := a.do(http.MethodPost, "/bookings", renterTok, bookingBody(v.ID, "2031-03-10", "2031-03-13"))
	expectStatus(t, w, http.StatusUnprocessableEntity)

	if len(a.pub.Keys()) != 0 {
		t.Fatalf("unexpected events: %v", a.pub.Keys())
	}
}

func TestAdminCanCancelAnyBooking(t *testing.T) {
	a := newAPI(t)
	owner, _ := a.user("Owner", "owner@example.com", models.RoleOwner)
	_, renterTok := a.user("Renter", "renter@example.com", models.RoleRenter)
	_, adminTok := a.user("Admin", "admin@example.com", models.RoleAdmin)
	v := testutil.CreateVehicle(t, a.store, owner.ID)

	w := a.do(http.MethodPost, "/bookings", renterTok, bookingBody(v.ID, "2031-05-01", "2031-05-04"))
	expectStatus(t, w, http.StatusCreated)
	b := decode[models.Booking](t, w)

	expectStatus(t, a.do(http.MethodDelete, "/bookings/"+itoa(b.ID), adminTok, nil), http.StatusOK)
	expectStatus(t, a.do(http.MethodDelete, "/bookings/9999", adminTok, nil), http.StatusNotFound)
}
