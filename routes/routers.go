package routes

import (
	"net/http"

	"hotelbooking/authz"
	"hotelbooking/controllers"
	_ "hotelbooking/docs"
	"hotelbooking/metrics"
	middlewares "hotelbooking/middleware"
	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies là các service mà routes cần để dựng controller
type Dependencies struct {
	Tokens       *services.TokenService
	Auth         *services.AuthService
	Hotels       *services.HotelService
	Staff        *services.StaffService
	Bookings     *services.BookingFacade
	Housekeeping *services.Housekeeping
	Metrics      *metrics.Metrics
	Logger       logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authController := controllers.NewAuthController(deps.Auth)
	hotelController := controllers.NewHotelController(deps.Hotels)
	roomController := controllers.NewRoomController(deps.Hotels, deps.Bookings, deps.Housekeeping)
	bookingController := controllers.NewBookingController(deps.Bookings)
	staffController := controllers.NewStaffController(deps.Staff)

	auth := middlewares.AuthMiddleware(deps.Tokens)
	can := middlewares.RequireCapability

	router.Use(middlewares.SessionMiddleware(), middlewares.ErrorHandler(deps.Logger))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.RegisterUser)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.AuthGoogle)
	v1.GET("/auth/me", auth, authController.GetProfile)

	v1.GET("/hotels", hotelController.GetHotels)
	v1.POST("/hotels", auth, can(authz.ManageHotels), hotelController.CreateHotel)
	v1.GET("/hotels/:id", hotelController.GetHotelDetail)
	v1.POST("/hotels/:id/photos", auth, hotelController.UploadPhoto)
	v1.GET("/hotels/:id/rooms", hotelController.GetHotelRooms)
	v1.POST("/hotels/:id/rooms", auth, can(authz.ManageRooms), hotelController.CreateRoom)
	v1.GET("/hotels/:id/bookings", auth, bookingController.GetHotelBookings)

	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/calendar", roomController.GetRoomCalendar)
	v1.GET("/rooms/:id/cleanings", roomController.GetCleaningHistory)
	v1.PUT("/rooms/:id/clean", auth, roomController.MarkCleaned)
	v1.GET("/housekeeping/rooms", auth, roomController.GetRoomsNeedingCleaning)

	v1.POST("/bookings", auth, bookingController.CreateBooking)
	v1.GET("/bookings", auth, bookingController.GetBookings)
	v1.GET("/bookings/:id/receipt", auth, bookingController.GetReceipt)
	v1.PUT("/bookings/:id/cancel", auth, bookingController.CancelBooking)
	v1.PUT("/bookings/:id/complete", auth, bookingController.CompleteBooking)
	v1.POST("/checkouts", auth, can(authz.CheckoutBooking, authz.ViewAllBookings), bookingController.RunCheckout)
	v1.GET("/users/:id/bookings", auth, bookingController.GetUserBookings)

	v1.POST("/workers", auth, can(authz.ManageWorkers), staffController.CreateWorker)
	v1.GET("/workers/:id", auth, can(authz.ManageWorkers), staffController.GetWorker)
	v1.POST("/moderators", auth, can(authz.ManageModerators), staffController.CreateModerator)
}
