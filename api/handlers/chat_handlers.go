package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindful-chat/config"
	"mindful-chat/dto"
	"mindful-chat/services"
	"mindful-chat/trace"
)

// ChatService 는 *services.ChatService 가 구현한다.
type ChatService interface {
	HandleMessage(ctx context.Context, in dto.ChatRequestDTO) (dto.ChatResponseDTO, *services.ServiceError)
	History(ctx context.Context, sessionID string) ([]dto.MessageDTO, *services.ServiceError)
	ListSessions(ctx context.Context) ([]dto.SessionDTO, *services.ServiceError)
}

// ChatHandler godoc
// @Summary      Send a chat message
// @Description  사용자 메시지를 저장하고 답변을 돌려준다. session_id 가 없거나 모르는 값이면 새 세션이 만들어진다.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      422   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /chat [post]
func ChatHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		resp, svcErr := svc.HandleMessage(c.Request.Context(), req)
		if svcErr != nil {
			abortWithServiceError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ChatHistoryHandler godoc
// @Summary      Session history
// @Description  세션의 모든 메시지를 시간순으로 돌려준다. 모르는 세션이면 빈 배열이다.
// @Tags         chat
// @Produce      json
// @Param        session_id  path      string  true  "session id"
// @Success      200         {array}   dto.MessageDTO
// @Failure      500         {object}  dto.ErrorResponseDTO
// @Router       /chat/history/{session_id} [get]
func ChatHistoryHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, svcErr := svc.History(c.Request.Context(), c.Param("session_id"))
		if svcErr != nil {
			abortWithServiceError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// ListSessionsHandler godoc
// @Summary      Recent sessions
// @Description  최근 갱신된 순으로 최대 20개의 세션을 돌려준다.
// @Tags         chat
// @Produce      json
// @Success      200  {array}   dto.SessionDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /chat/sessions [get]
func ListSessionsHandler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, svcErr := svc.ListSessions(c.Request.Context())
		if svcErr != nil {
			abortWithServiceError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

// abortWithServiceError 는 원인은 로그에만 남기고 응답에는 코드(검증 오류면 메시지)만 싣는다.
func abortWithServiceError(c *gin.Context, svcErr *services.ServiceError) {
	fields := config.Fields{
		"request_id": trace.RequestIDFromContext(c.Request.Context()),
		"status":     svcErr.StatusCode,
		"error_code": svcErr.ErrorCode,
	}
	if svcErr.Cause != nil {
		fields["cause"] = svcErr.Cause.Error()
		_ = c.Error(svcErr.Cause)
	}
	if svcErr.StatusCode >= http.StatusInternalServerError {
		config.ErrorWithFields("request failed", fields)
	} else {
		config.DebugWithFields("request rejected", fields)
	}
	c.AbortWithStatusJSON(svcErr.StatusCode, dto.ErrorResponseDTO{Error: svcErr.ErrorCode, Detail: svcErr.Detail})
}
