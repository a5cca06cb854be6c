package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GrammarController struct {
	GrammarService *service.GrammarService
}

func NewGrammarController(grammarService *service.GrammarService) *GrammarController {
	return &GrammarController{GrammarService: grammarService}
}

// ListLessons godoc
// @Summary List grammar lessons
// @Tags grammar
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/grammar/lessons [get]
func (c *GrammarController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessons, err := c.GrammarService.ListLessons(claims.UserID, model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Grammar lesson content and progress
// @Tags grammar
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/grammar/lessons/{id} [get]
func (c *GrammarController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.GrammarService.GetLesson(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Submit godoc
// @Summary Grade one pass over a lesson's exercises
// @Description Stored progress keeps the best result across attempts
// @Tags grammar
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GrammarSubmitRequest true "answers keyed by question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/grammar/submit [post]
func (c *GrammarController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.GrammarSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GrammarService.SubmitAnswers(claims.UserID, &req)
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

// UpdateProgress godoc
// @Summary Push a correct count directly
// @Tags grammar
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GrammarProgressRequest true "progress"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/grammar/progress [post]
func (c *GrammarController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.GrammarProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	blob, err := c.GrammarService.UpdateProgress(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, blob)
}
