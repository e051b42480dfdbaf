package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-compare/cmd/api/dto"
	"product-compare/cmd/api/services"
)

// RegisterHandler godoc
// @Summary      Register
// @Description  이메일/비밀번호로 가입하고 접근 토큰을 발급합니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequestDTO  true  "가입 정보"
// @Success      200   {object}  dto.AuthResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /auth/register [post]
func RegisterHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequestDTO
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err, services.MsgServerError)
			return
		}
		c.JSON(http.StatusOK, dto.AuthResponseDTO{User: dto.FromUser(user), Token: token})
	}
}

// LoginHandler godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequestDTO  true  "로그인 정보"
// @Success      200   {object}  dto.AuthResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /auth/login [post]
func LoginHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequestDTO
		if !bindJSON(c, &req) {
			return
		}
		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, services.MsgServerError)
			return
		}
		c.JSON(http.StatusOK, dto.AuthResponseDTO{User: dto.FromUser(user), Token: token})
	}
}

// GetUserHandler godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/getUser [get]
func GetUserHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := svc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, services.MsgServerError)
			return
		}
		c.JSON(http.StatusOK, dto.ProfileResponseDTO{User: dto.FromUser(user)})
	}
}

// DeleteUserHandler godoc
// @Summary      Delete account
// @Description  계정과 해당 사용자의 모든 요약을 삭제합니다.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DeleteUserResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/delete [delete]
func DeleteUserHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		deleted, err := svc.DeleteUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, services.MsgServerError)
			return
		}
		c.JSON(http.StatusOK, dto.DeleteUserResponseDTO{Message: services.MsgUserDeleted, DeletedSummaries: deleted})
	}
}
