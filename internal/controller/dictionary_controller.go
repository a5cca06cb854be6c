package controller

import (
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	DictionaryService *service.DictionaryService
}

func NewDictionaryController(dictionaryService *service.DictionaryService) *DictionaryController {
	return &DictionaryController{DictionaryService: dictionaryService}
}

// Search godoc
// @Summary Search dictionary entries
// @Description Matches keyword, reading or meaning; results are cached briefly
// @Tags dictionary
// @Produce  json
// @Security BearerAuth
// @Param   q query string true "search text"
// @Param   type query string false "entry type (vocab, kanji, grammar, sentence)"
// @Success 200 {object} util.Response
// @Router /api/dictionary/search [get]
func (c *DictionaryController) Search(ctx *gin.Context) {
	entries, err := c.DictionaryService.Search(ctx.Request.Context(), ctx.Query("q"), ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
