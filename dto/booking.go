package dto

import (
	"time"

	"hotelbooking/models"
	"hotelbooking/utils"
)

// CreateBookingRequest là DTO cho request đặt phòng
type CreateBookingRequest struct {
	HotelID    uint    `json:"hotelId" binding:"required"`
	RoomID     uint    `json:"roomId" binding:"required"`
	RoomNumber int     `json:"roomNumber" binding:"required,gt=0"`
	DateStart  string  `json:"dateStart" binding:"required,day"`
	DateEnd    string  `json:"dateEnd" binding:"required,day"`
	TotalPrice float64 `json:"totalPrice" binding:"gte=0"`
}

// CreateBookingInput là dữ liệu đã parse, truyền xuống service
type CreateBookingInput struct {
	GuestID    uint
	HotelID    uint
	RoomID     uint
	RoomNumber int
	DateStart  utils.Day
	DateEnd    utils.Day
	TotalPrice float64
}

// ToInput parse ngày; binding đã kiểm tra định dạng
func (r CreateBookingRequest) ToInput(guestID uint) (CreateBookingInput, error) {
	start, err := utils.ParseDay(r.DateStart)
	if err != nil {
		return CreateBookingInput{}, err
	}
	end, err := utils.ParseDay(r.DateEnd)
	if err != nil {
		return CreateBookingInput{}, err
	}
	return CreateBookingInput{
		GuestID:    guestID,
		HotelID:    r.HotelID,
		RoomID:     r.RoomID,
		RoomNumber: r.RoomNumber,
		DateStart:  start,
		DateEnd:    end,
		TotalPrice: r.TotalPrice,
	}, nil
}

// BookingResponse là DTO cho response của booking
type BookingResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"userId"`
	HotelID     uint       `json:"hotelId"`
	RoomID      uint       `json:"roomId"`
	RoomNumber  int        `json:"roomNumber"`
	DateStart   utils.Day  `json:"dateStart"`
	DateEnd     utils.Day  `json:"dateEnd"`
	TotalPrice  float64    `json:"totalPrice"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ReceiptHotel là phần khách sạn trong hóa đơn
type ReceiptHotel struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// ReceiptRoom là phần phòng trong hóa đơn
type ReceiptRoom struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Price  int    `json:"price"`
	Number int    `json:"number"`
}

// ReceiptGuest là thông tin khách
type ReceiptGuest struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingReceipt gom booking, khách sạn, phòng và khách để hiển thị
type BookingReceipt struct {
	Booking BookingResponse `json:"booking"`
	Hotel   ReceiptHotel    `json:"hotel"`
	Room    ReceiptRoom     `json:"room"`
	Guest   ReceiptGuest    `json:"guest"`
	Days    int             `json:"days"`
}

// CompleteEndedResult là kết quả một lần quét trả phòng
type CompleteEndedResult struct {
	Completed []uint `json:"completed"`
	Failed    []uint `json:"failed"`
}

// NewBookingResponse chuyển model sang DTO
func NewBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		HotelID:     b.HotelID,
		RoomID:      b.RoomID,
		RoomNumber:  b.RoomNumber,
		DateStart:   b.StartDay(),
		DateEnd:     b.EndDay(),
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
		CreatedAt:   b.CreatedAt,
	}
}

// NewBookingResponses chuyển danh sách model sang DTO
func NewBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}
