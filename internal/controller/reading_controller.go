package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReadingController struct {
	ReadingService *service.ReadingService
}

func NewReadingController(readingService *service.ReadingService) *ReadingController {
	return &ReadingController{ReadingService: readingService}
}

// ListLessons godoc
// @Summary Reading lessons with overall progress
// @Tags reading
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/reading/lessons [get]
func (c *ReadingController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	overview, err := c.ReadingService.ListLessons(claims.UserID, model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetLesson godoc
// @Summary Reading lesson texts and exercises
// @Tags reading
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/reading/lessons/{id} [get]
func (c *ReadingController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ReadingService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// Answer godoc
// @Summary Grade a single reading question
// @Description Folds the result into the lesson progress
// @Tags reading
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ReadingAnswerRequest true "question and chosen option"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/reading/answer [post]
func (c *ReadingController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ReadingAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ReadingService.SubmitAnswer(claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrChoiceNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Submit godoc
// @Summary Grade a whole reading lesson in one call
// @Description Progress reflects this submission
// @Tags reading
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   body body service.ReadingSubmitRequest true "answer list, null choice_id for blanks"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/reading/lessons/{id}/submit [post]
func (c *ReadingController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ReadingSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ReadingService.SubmitLesson(claims.UserID, util.MustParseUint(ctx.Param("id")), &req)
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
