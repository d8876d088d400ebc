package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	hotels       *services.HotelService
	facade       *services.BookingFacade
	housekeeping *services.Housekeeping
}

func NewRoomController(hotels *services.HotelService, facade *services.BookingFacade, housekeeping *services.Housekeeping) *RoomController {
	return &RoomController{
		hotels:       hotels,
		facade:       facade,
		housekeeping: housekeeping,
	}
}

func (ctrl *RoomController) GetRoomDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	room, err := ctrl.hotels.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// GetRoomCalendar godoc
// @Summary      Lịch ngày đã đặt của loại phòng
// @Tags         rooms
// @Produce      json
// @Param        id    path      int     true  "Room ID"
// @Param        from  query     string  true  "YYYY-MM-DD"
// @Param        to    query     string  true  "YYYY-MM-DD"
// @Success      200   {object}  response.Response{data=services.RoomCalendar}
// @Router       /rooms/{id}/calendar [get]
func (ctrl *RoomController) GetRoomCalendar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	from, ok := queryDay(c, "from")
	if !ok {
		return
	}
	to, ok := queryDay(c, "to")
	if !ok {
		return
	}

	cal, err := ctrl.facade.Calendar(c.Request.Context(), id, from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, cal)
}

// MarkCleaned godoc
// @Summary      Đánh dấu phòng đã dọn
// @Tags         housekeeping
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true   "Room ID"
// @Param        body  body      dto.MarkCleanedRequest   true   "Worker"
// @Success      200   {object}  response.Response
// @Security     BearerAuth
// @Router       /rooms/{id}/clean [put]
func (ctrl *RoomController) MarkCleaned(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.MarkCleanedRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := ctrl.housekeeping.MarkCleaned(c.Request.Context(), actor, id, req.WorkerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (ctrl *RoomController) GetCleaningHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	records, err := ctrl.housekeeping.History(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, records, len(records))
}

// GetRoomsNeedingCleaning liệt kê phòng cần dọn, lọc theo ?hotelId=
func (ctrl *RoomController) GetRoomsNeedingCleaning(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	hotelID, ok := queryID(c, "hotelId")
	if !ok {
		return
	}

	rooms, err := ctrl.housekeeping.RoomsNeedingCleaning(c.Request.Context(), actor, hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}
