package controller

import (
	"errors"

	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// Send godoc
// @Summary Ask the Japanese tutor
// @Description Creates a new session when session_id is omitted
// @Tags chatbot
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ChatRequest true "message and optional session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/chatbot [post]
func (c *ChatController) Send(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ChatService.SendMessage(claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrChatServiceDisabled):
			util.Error(ctx, 503, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ListSessions godoc
// @Summary The caller's chat sessions
// @Tags chatbot
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chatbot/sessions [get]
func (c *ChatController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sessions, err := c.ChatService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// GetSession godoc
// @Summary A session with its full message history
// @Tags chatbot
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chatbot/sessions/{id} [get]
func (c *ChatController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	session, messages, err := c.ChatService.GetSession(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"session": session, "messages": messages})
}
