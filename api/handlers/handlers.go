package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindful-chat/dto"
	"mindful-chat/services"
)

type StatusService interface {
	Create(ctx context.Context, in dto.StatusCheckCreateDTO) (dto.StatusCheckDTO, *services.ServiceError)
	List(ctx context.Context) ([]dto.StatusCheckDTO, *services.ServiceError)
}

// RootHandler godoc
// @Summary      Greeting
// @Tags         status
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       / [get]
func RootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "Hello World"})
	}
}

// CreateStatusCheckHandler godoc
// @Summary      Record a status check
// @Tags         status
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StatusCheckCreateDTO  true  "status check"
// @Success      200   {object}  dto.StatusCheckDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      422   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /status [post]
func CreateStatusCheckHandler(svc StatusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.StatusCheckCreateDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}
		out, svcErr := svc.Create(c.Request.Context(), req)
		if svcErr != nil {
			abortWithServiceError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListStatusChecksHandler godoc
// @Summary      List status checks
// @Tags         status
// @Produce      json
// @Success      200  {array}   dto.StatusCheckDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /status [get]
func ListStatusChecksHandler(svc StatusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, svcErr := svc.List(c.Request.Context())
		if svcErr != nil {
			abortWithServiceError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// HealthHandler 는 저장소 ping 결과로 ok/degraded 를 돌려준다.
func HealthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
