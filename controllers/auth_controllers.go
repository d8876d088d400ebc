package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// RegisterUser godoc
// @Summary      Đăng ký tài khoản khách
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterInput  true  "Register"
// @Success      201   {object}  response.Response{data=dto.UserResponse}
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (ctrl *AuthController) RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := ctrl.auth.Register(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.NewUserResponse(user, "guest"))
}

// Login godoc
// @Summary      Đăng nhập
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginInput  true  "Login"
// @Success      200   {object}  response.Response{data=dto.UserLoginResponse}
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := ctrl.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (ctrl *AuthController) AuthGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := ctrl.auth.LoginWithGoogle(c.Request.Context(), input.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (ctrl *AuthController) GetProfile(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	user, err := ctrl.auth.Me(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user, actor.Role.String()))
}
