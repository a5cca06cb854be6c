package controller

import (
	"errors"

	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotebookController struct {
	NotebookService *service.NotebookService
}

func NewNotebookController(notebookService *service.NotebookService) *NotebookController {
	return &NotebookController{NotebookService: notebookService}
}

// Summary godoc
// @Summary Per-category study status across all JLPT levels
// @Tags notebook
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notebook/categories [get]
func (c *NotebookController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.NotebookService.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// CategoryDetail godoc
// @Summary Level breakdown for one category
// @Description Levels without content are reported locked
// @Tags notebook
// @Produce  json
// @Security BearerAuth
// @Param   category path string true "category slug (vocabulary, kanji, grammar, reading, listening, jlpt)"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notebook/categories/{category} [get]
func (c *NotebookController) CategoryDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.NotebookService.CategoryDetail(claims.UserID, ctx.Param("category"))
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}
