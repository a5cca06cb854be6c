package controller

import (
	"errors"
	"fmt"
	"io"

	"jlpt_backend/internal/service"
	"jlpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ShadowingController struct {
	ShadowingService *service.ShadowingService
}

func NewShadowingController(shadowingService *service.ShadowingService) *ShadowingController {
	return &ShadowingController{ShadowingService: shadowingService}
}

// ListVoices godoc
// @Summary Available TTS voices
// @Tags shadowing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/shadowing/voices [get]
func (c *ShadowingController) ListVoices(ctx *gin.Context) {
	voices, err := c.ShadowingService.ListVoices()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, voices)
}

// Create godoc
// @Summary Create a shadowing session
// @Description Synthesizes practice audio for the given text
// @Tags shadowing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ShadowingCreateRequest true "text, voice and playback settings"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/shadowing/create [post]
func (c *ShadowingController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ShadowingCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.ShadowingService.CreateSession(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyShadowingInput), errors.Is(err, util.ErrVoiceUnavailable):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrVoiceNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// UploadImage godoc
// @Summary Upload a picture for shadowing input
// @Tags shadowing
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   image formData file true "image file"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/shadowing/upload [post]
func (c *ShadowingController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	filename, err := c.ShadowingService.UploadImage(ctx.Request.Context(), file)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedFileType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"image": filename})
}

// ListSessions godoc
// @Summary The caller's shadowing sessions
// @Tags shadowing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/shadowing/sessions [get]
func (c *ShadowingController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sessions, err := c.ShadowingService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// GetSession godoc
// @Summary Shadowing session detail
// @Tags shadowing
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/shadowing/sessions/{id} [get]
func (c *ShadowingController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	session, err := c.ShadowingService.GetSession(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

// Download godoc
// @Summary Download synthesized audio
// @Tags shadowing
// @Produce  audio/mpeg
// @Security BearerAuth
// @Param   id path int true "session id"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/shadowing/sessions/{id}/download [get]
func (c *ShadowingController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	reader, filename, err := c.ShadowingService.OpenAudio(ctx.Request.Context(), claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	defer reader.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Content-Type", util.MimeMPEG)
	io.Copy(ctx.Writer, reader)
}
