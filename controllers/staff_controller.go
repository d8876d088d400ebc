package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	staff *services.StaffService
}

func NewStaffController(staff *services.StaffService) *StaffController {
	return &StaffController{staff: staff}
}

func (ctrl *StaffController) CreateWorker(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if !bindJSON(c, &req) {
		return
	}

	worker, err := ctrl.staff.CreateWorker(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, worker)
}

func (ctrl *StaffController) GetWorker(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	worker, err := ctrl.staff.GetWorker(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, worker)
}

func (ctrl *StaffController) CreateModerator(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req dto.CreateModeratorRequest
	if !bindJSON(c, &req) {
		return
	}

	moderator, err := ctrl.staff.CreateModerator(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, moderator)
}
