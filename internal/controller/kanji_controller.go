package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KanjiController struct {
	KanjiService *service.KanjiService
}

func NewKanjiController(kanjiService *service.KanjiService) *KanjiController {
	return &KanjiController{KanjiService: kanjiService}
}

type kanjiFavoriteRequest struct {
	KanjiID uint `json:"kanji_id" binding:"required"`
}

// ListUnits godoc
// @Summary List kanji units with their lessons
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/kanji/units [get]
func (c *KanjiController) ListUnits(ctx *gin.Context) {
	units, err := c.KanjiService.ListUnits(model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, units)
}

// GetUnit godoc
// @Summary Kanji unit detail
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "unit id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kanji/units/{id} [get]
func (c *KanjiController) GetUnit(ctx *gin.Context) {
	unit, err := c.KanjiService.GetUnit(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, unit)
}

// GetLesson godoc
// @Summary Kanji lesson with characters and progress
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kanji/lessons/{id} [get]
func (c *KanjiController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lesson, err := c.KanjiService.GetLesson(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// GetKanji godoc
// @Summary Single kanji detail
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "kanji id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kanji/{id} [get]
func (c *KanjiController) GetKanji(ctx *gin.Context) {
	k, err := c.KanjiService.GetKanji(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, k)
}

// Search godoc
// @Summary Search kanji by character or meaning
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   q query string true "search text"
// @Param   level query string false "JLPT level filter"
// @Success 200 {object} util.Response
// @Router /api/kanji/search [get]
func (c *KanjiController) Search(ctx *gin.Context) {
	results, err := c.KanjiService.Search(ctx.Query("q"), model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// ListProgress godoc
// @Summary The caller's kanji study records
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/kanji/progress [get]
func (c *KanjiController) ListProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	records, err := c.KanjiService.ListProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// UpsertProgress godoc
// @Summary Create or update a kanji study record
// @Tags kanji
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.KanjiProgressRequest true "progress"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kanji/progress [post]
func (c *KanjiController) UpsertProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.KanjiProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.KanjiService.UpsertProgress(claims.UserID, &req)
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

// DeleteProgress godoc
// @Summary Delete a kanji study record
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "progress id"
// @Success 200 {object} util.Response
// @Router /api/kanji/progress/{id} [delete]
func (c *KanjiController) DeleteProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.KanjiService.DeleteProgress(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ListFavorites godoc
// @Summary The caller's favorite kanji
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/kanji/favorites [get]
func (c *KanjiController) ListFavorites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	favs, err := c.KanjiService.ListFavorites(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, favs)
}

// AddFavorite godoc
// @Summary Favorite a kanji
// @Tags kanji
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body kanjiFavoriteRequest true "kanji id"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kanji/favorites [post]
func (c *KanjiController) AddFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req kanjiFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fav, err := c.KanjiService.AddFavorite(claims.UserID, req.KanjiID)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, fav)
}

// RemoveFavorite godoc
// @Summary Remove a kanji favorite
// @Tags kanji
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "favorite id"
// @Success 200 {object} util.Response
// @Router /api/kanji/favorites/{id} [delete]
func (c *KanjiController) RemoveFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.KanjiService.RemoveFavorite(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
