package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	facade *services.BookingFacade
}

func NewBookingController(facade *services.BookingFacade) *BookingController {
	return &BookingController{facade: facade}
}

// CreateBooking godoc
// @Summary      Đặt phòng
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBookingRequest  true  "Booking"
// @Success      201   {object}  response.Response{data=dto.BookingResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Security     BearerAuth
// @Router       /bookings [post]
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.ToInput(actor.UserID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := ctrl.facade.CreateBooking(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.NewBookingResponse(booking))
}

// CancelBooking godoc
// @Summary      Hủy booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  response.Response{data=dto.BookingResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Security     BearerAuth
// @Router       /bookings/{id}/cancel [put]
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.facade.CancelBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(booking))
}

// CompleteBooking godoc
// @Summary      Trả phòng
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  response.Response{data=dto.BookingResponse}
// @Security     BearerAuth
// @Router       /bookings/{id}/complete [put]
func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.facade.CompleteBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(booking))
}

// GetReceipt godoc
// @Summary      Hóa đơn booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  response.Response{data=dto.BookingReceipt}
// @Security     BearerAuth
// @Router       /bookings/{id}/receipt [get]
func (ctrl *BookingController) GetReceipt(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	receipt, err := ctrl.facade.Receipt(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, receipt)
}

// GetBookings godoc
// @Summary      Danh sách booking
// @Tags         bookings
// @Produce      json
// @Param        status  query     string  false  "confirmed | cancelled | completed"
// @Success      200     {object}  response.ResponseTotal{data=[]dto.BookingResponse}
// @Security     BearerAuth
// @Router       /bookings [get]
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	bookings, err := ctrl.facade.ListAll(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, dto.NewBookingResponses(bookings), len(bookings))
}

func (ctrl *BookingController) GetHotelBookings(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}

	bookings, err := ctrl.facade.ListByHotel(c.Request.Context(), actor, hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, dto.NewBookingResponses(bookings), len(bookings))
}

func (ctrl *BookingController) GetUserBookings(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	bookings, err := ctrl.facade.ListByGuest(c.Request.Context(), actor, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, dto.NewBookingResponses(bookings), len(bookings))
}

// RunCheckout chạy ngay một lần quét trả phòng, giống cron
func (ctrl *BookingController) RunCheckout(c *gin.Context) {
	result, err := ctrl.facade.CompleteEnded(c.Request.Context(), ctrl.facade.Today())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}
