package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ListeningController struct {
	ListeningService *service.ListeningService
}

func NewListeningController(listeningService *service.ListeningService) *ListeningController {
	return &ListeningController{ListeningService: listeningService}
}

// ListLessons godoc
// @Summary Listening lessons with progress
// @Tags listening
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/listening/lessons [get]
func (c *ListeningController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessons, err := c.ListeningService.ListLessons(claims.UserID, model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Listening lesson with audio, script and questions
// @Tags listening
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/listening/lessons/{id} [get]
func (c *ListeningController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ListeningService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// Submit godoc
// @Summary Grade a listening lesson
// @Description Records an attempt; progress mirrors the latest attempt
// @Tags listening
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   body body service.ListeningSubmitRequest true "answer list, null choice_id for blanks"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/listening/lessons/{id}/submit [post]
func (c *ListeningController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ListeningSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ListeningService.SubmitLesson(claims.UserID, util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
