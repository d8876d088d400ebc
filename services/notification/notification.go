package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	Publish(event Event) error
}

// Event là thông báo gửi qua websocket
type Event struct {
	Type      string `json:"type"`
	BookingID uint   `json:"bookingId,omitempty"`
	RoomID    uint   `json:"roomId,omitempty"`
	HotelID   uint   `json:"hotelId,omitempty"`
	UserID    uint   `json:"userId,omitempty"`
	Message   string `json:"message"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventRoomCleaned      = "room.cleaned"
	EventRoomNeedsClean   = "room.needs_cleaning"
)

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Publish(event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(data)
}

// Noop bỏ qua mọi event
type Noop struct{}

func (Noop) Publish(Event) error { return nil }

// Recorder giữ lại event đã publish, dùng trong test
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string) *MessageBuilder {
	return &MessageBuilder{event: Event{Type: eventType}}
}

func (b *MessageBuilder) Booking(id, hotelID, roomID, userID uint) *MessageBuilder {
	b.event.BookingID = id
	b.event.HotelID = hotelID
	b.event.RoomID = roomID
	b.event.UserID = userID
	return b
}

func (b *MessageBuilder) Room(roomID uint) *MessageBuilder {
	b.event.RoomID = roomID
	return b
}

func (b *MessageBuilder) Build() Event {
	switch b.event.Type {
	case EventBookingCreated:
		b.event.Message = fmt.Sprintf("🔔 Booking %d đã được tạo.", b.event.BookingID)
	case EventBookingCancelled:
		b.event.Message = fmt.Sprintf("🔔 Booking %d đã bị hủy.", b.event.BookingID)
	case EventBookingCompleted:
		b.event.Message = fmt.Sprintf("🔔 Booking %d đã trả phòng.", b.event.BookingID)
	case EventRoomCleaned:
		b.event.Message = fmt.Sprintf("🧹 Phòng %d đã dọn xong.", b.event.RoomID)
	case EventRoomNeedsClean:
		b.event.Message = fmt.Sprintf("🧹 Phòng %d cần dọn.", b.event.RoomID)
	}
	return b.event
}
