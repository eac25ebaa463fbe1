package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type AssistantHandler struct {
	service ports.AssistantService
}

func NewAssistantHandler(service ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type chatRequest struct {
	Message        string              `json:"message" validate:"required"`
	ConversationID string              `json:"conversation_id"`
	History        []ports.ChatMessage `json:"history"`
}

// Chat forwards a question to the care assistant. Falls back to canned
// answers when the model backend is unreachable.
//
// @Summary      Ask the care assistant
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Question and optional conversation history"
// @Success      200   {object}  ports.ChatReply
// @Failure      400   {object}  errorResponse
// @Router       /assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.service.Chat(c.Request().Context(), user, ports.ChatInput{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		History:        req.History,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reply)
}
