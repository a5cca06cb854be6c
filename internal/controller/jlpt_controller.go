package controller

import (
	"errors"

	"jlpt_backend/internal/model"
	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JlptController struct {
	JlptService *service.JlptService
}

func NewJlptController(jlptService *service.JlptService) *JlptController {
	return &JlptController{JlptService: jlptService}
}

// ListTests godoc
// @Summary Mock tests for a level with the caller's best scores
// @Tags jlpt-practice
// @Produce  json
// @Security BearerAuth
// @Param   level query string false "JLPT level (N5..N1)"
// @Success 200 {object} util.Response
// @Router /api/jlpt-practice/tests [get]
func (c *JlptController) ListTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	tests, err := c.JlptService.ListTests(claims.UserID, model.JlptLevel(ctx.Query("level")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// GetTest godoc
// @Summary Full test paper without answer keys
// @Tags jlpt-practice
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "test id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jlpt-practice/tests/{id} [get]
func (c *JlptController) GetTest(ctx *gin.Context) {
	test, err := c.JlptService.GetTest(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, test)
}

// Submit godoc
// @Summary Grade a full mock test
// @Description Unanswered questions count as wrong; the attempt is stored with frozen correctness
// @Tags jlpt-practice
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "test id"
// @Param   body body service.JlptSubmitRequest true "answer list, null choice_id for blanks"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jlpt-practice/tests/{id}/submit [post]
func (c *JlptController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.JlptSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.JlptService.SubmitTest(claims.UserID, util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) || errors.Is(err, util.ErrTestNotPublished) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetAttempt godoc
// @Summary Review a submitted attempt with answer keys
// @Tags jlpt-practice
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attempt id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jlpt-practice/attempts/{id} [get]
func (c *JlptController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.JlptService.GetAttempt(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}
