package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VocabController struct {
	VocabService *service.VocabService
}

func NewVocabController(vocabService *service.VocabService) *VocabController {
	return &VocabController{VocabService: vocabService}
}

type vocabProgressRequest struct {
	CompletedWords int `json:"completed_words" binding:"min=0"`
}

type wordLearnedRequest struct {
	IsLearned bool `json:"is_learned"`
}

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// ListLessons godoc
// @Summary List vocabulary lessons
// @Description Lessons for a JLPT level with the caller's progress
// @Tags vocabulary
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/vocabulary/lessons [get]
func (c *VocabController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessons, err := c.VocabService.ListLessons(claims.UserID, model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Vocabulary lesson detail
// @Tags vocabulary
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/vocabulary/lessons/{id} [get]
func (c *VocabController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lesson, err := c.VocabService.GetLesson(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// UpdateProgress godoc
// @Summary Record lesson progress
// @Description Stores how many words of the lesson were studied
// @Tags vocabulary
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Param   body body vocabProgressRequest true "progress"
// @Success 200 {object} util.Response
// @Router /api/vocabulary/lessons/{id}/progress [post]
func (c *VocabController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req vocabProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.VocabService.UpdateLessonProgress(claims.UserID, util.MustParseUint(ctx.Param("id")), req.CompletedWords)
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

// MarkWord godoc
// @Summary Mark a word as learned
// @Tags vocabulary
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "word id"
// @Param   body body wordLearnedRequest true "learned flag"
// @Success 200 {object} util.Response
// @Router /api/vocabulary/words/{id}/progress [post]
func (c *VocabController) MarkWord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req wordLearnedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.VocabService.MarkWord(claims.UserID, util.MustParseUint(ctx.Param("id")), req.IsLearned)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// ToggleFavorite godoc
// @Summary Favorite or unfavorite a word
// @Tags vocabulary
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "word id"
// @Param   body body favoriteRequest true "favorite flag"
// @Success 200 {object} util.Response
// @Router /api/vocabulary/words/{id}/favorite [post]
func (c *VocabController) ToggleFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req favoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	favorite, err := c.VocabService.ToggleFavorite(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Favorite)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"favorite": favorite})
}
