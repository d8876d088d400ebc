package dto

type CreateHotelRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type"`
	City          string  `json:"city" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Distance      string  `json:"distance"`
	Title         string  `json:"title"`
	Desc          string  `json:"desc"`
	Rating        float64 `json:"rating" binding:"gte=0,lte=5"`
	CheapestPrice int     `json:"cheapestPrice" binding:"gte=0"`
	Featured      bool    `json:"featured"`
}

type CreateRoomRequest struct {
	Title       string `json:"title" binding:"required"`
	Price       int    `json:"price" binding:"gte=0"`
	MaxPeople   int    `json:"maxPeople" binding:"gte=1"`
	Desc        string `json:"desc"`
	RoomNumbers []int  `json:"roomNumbers" binding:"required,min=1,dive,gt=0"`
}

type CreateWorkerRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	HotelID uint   `json:"hotelId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
}

type CreateModeratorRequest struct {
	UserID           uint  `json:"userId" binding:"required"`
	HotelID          uint  `json:"hotelId" binding:"required"`
	CanManageWorkers *bool `json:"canManageWorkers"`
	CanManageRooms   *bool `json:"canManageRooms"`
	CanViewBookings  *bool `json:"canViewBookings"`
}

type MarkCleanedRequest struct {
	WorkerID uint `json:"workerId" binding:"required"`
}
