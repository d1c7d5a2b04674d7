// Package events publishes booking lifecycle events to a message broker.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

// Routing keys published on the topic exchange.
const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingRejected  = "booking.rejected"
	BookingCompleted = "booking.completed"
	BookingCancelled = "booking.cancelled"
)

// KeyForStatus returns the routing key announcing a booking entering status.
func KeyForStatus(status models.BookingStatus) string {
	if status == models.BookingPending {
		return BookingCreated
	}
	return "booking." + string(status)
}

// BookingEvent is the JSON body of every booking message.
type BookingEvent struct {
	BookingID  int64                `json:"booking_id"`
	VehicleID  int64                `json:"vehicle_id"`
	RenterID   int64                `json:"renter_id"`
	Status     models.BookingStatus `json:"status"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	TotalPrice int64                `json:"total_price"`
	ActorID    int64                `json:"actor_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// NewBookingEvent snapshots b as changed by actorID.
func NewBookingEvent(b *models.Booking, actorID int64) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		VehicleID:  b.VehicleID,
		RenterID:   b.RenterID,
		Status:     b.Status,
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		TotalPrice: b.TotalPrice,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher sends a JSON message under a routing key.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// Noop discards every message. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishJSON(context.Context, string, any) error { return nil }
func (Noop) Close() error                                   { return nil }

// Message is a publish captured by Recorder.
type Message struct {
	Key  string
	Body any
}

// Recorder keeps published messages in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) PublishJSON(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Key: key, Body: v})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Messages returns a copy of everything published so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Keys returns the routing keys published so far, in order.
func (r *Recorder) Keys() []string {
	msgs := r.Messages()
	keys := make([]string, len(msgs))
	for i, m := range msgs {
		keys[i] = m.Key
	}
	return keys
}
