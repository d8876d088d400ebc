package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{hotels: hotels}
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req dto.CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := ctrl.hotels.CreateHotel(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, hotel)
}

// GetHotels trả về tất cả khách sạn, hoặc kết quả tìm gần đúng khi có ?q=
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		results, err := ctrl.hotels.Search(c.Request.Context(), q)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.SuccessWithTotal(c, results, len(results))
		return
	}

	hotels, err := ctrl.hotels.ListHotels(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, hotels, len(hotels))
}

func (ctrl *HotelController) GetHotelDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	hotel, err := ctrl.hotels.GetHotel(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// UploadPhoto nhận file multipart "file" và đẩy lên cloudinary
func (ctrl *HotelController) UploadPhoto(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Thiếu file ảnh")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Không đọc được file ảnh")
		return
	}
	defer file.Close()

	url, err := ctrl.hotels.AddPhoto(c.Request.Context(), actor, id, file)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"url": url})
}

func (ctrl *HotelController) CreateRoom(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := ctrl.hotels.CreateRoom(c.Request.Context(), actor, hotelID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (ctrl *HotelController) GetHotelRooms(c *gin.Context) {
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}

	rooms, err := ctrl.hotels.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}
