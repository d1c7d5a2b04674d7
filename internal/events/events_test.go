package events

import (
	"context"
	"testing"
	"time"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

func TestKeyForStatus(t *testing.T) {
	cases := map[models.BookingStatus]string{
		models.BookingPending:   BookingCreated,
		models.BookingConfirmed: BookingConfirmed,
		models.BookingRejected:  BookingRejected,
		models.BookingCompleted: BookingCompleted,
		models.BookingCancelled: BookingCancelled,
	}
	for status, want := range cases {
		if got := KeyForStatus(status); got != want {
			t.Fatalf("KeyForStatus(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestNewBookingEvent(t *testing.T) {
	b := &models.Booking{
		ID:         7,
		VehicleID:  3,
		RenterID:   9,
		StartDate:  time.Date(2031, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2031, 3, 13, 0, 0, 0, 0, time.UTC),
		Status:     models.BookingConfirmed,
		TotalPrice: 13500,
	}
	ev := NewBookingEvent(b, 2)
	if ev.BookingID != 7 || ev.ActorID != 2 || ev.StartDate != "2031-03-10" || ev.EndDate != "2031-03-13" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestConnectWithoutURLIsNoop(t *testing.T) {
	p, err := Connect("", "rental.exchange")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, ok := p.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", p)
	}
	if err := p.PublishJSON(context.Background(), BookingCreated, map[string]int{"id": 1}); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_ = r.PublishJSON(context.Background(), BookingCreated, 1)
	_ = r.PublishJSON(context.Background(), BookingCancelled, 2)
	keys := r.Keys()
	if len(keys) != 2 || keys[0] != BookingCreated || keys[1] != BookingCancelled {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
