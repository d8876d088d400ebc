package controllers

import (
	"strconv"

	"hotelbooking/authz"
	middlewares "hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/utils"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

// paramID đọc id kiểu uint từ path, trả false và ghi 400 nếu sai
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// queryID đọc id tùy chọn từ query, rỗng thì trả 0
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.BadRequest(c, name+" không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

func queryDay(c *gin.Context, name string) (utils.Day, bool) {
	d, err := utils.ParseDay(c.Query(name))
	if err != nil {
		response.BadRequest(c, name+" phải có định dạng YYYY-MM-DD")
		return utils.Day{}, false
	}
	return d, true
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return false
	}
	return true
}

func actorOf(c *gin.Context) (authz.Actor, bool) {
	actor, ok := middlewares.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
	}
	return actor, ok
}
