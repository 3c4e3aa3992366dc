package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"general-transcriber/internal/api/errors"
	"general-transcriber/internal/api/middleware"
	"general-transcriber/internal/api/v1/dto"
	"general-transcriber/internal/api/v1/services"
	"general-transcriber/internal/app/model"
)

// TranscriptHandler handles transcript API endpoints
type TranscriptHandler struct {
	service services.TranscriptService
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(service services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/transcripts
//
// @Summary Upload a file for transcription
// @Description Stores an audio or video file and queues it for speaker labelled transcription
// @Tags transcripts
// @Accept multipart/form-data
// @Produce json
// @Param X-User-Email header string true "Authenticated user email"
// @Param file formData file true "Audio or video file (mp3, wav, m4a, mp4, webm, ogg, aac, mov)"
// @Success 200 {object} dto.UploadResponse "File stored and queued"
// @Failure 400 {object} errors.APIError "Missing file or unsupported type"
// @Failure 401 {object} errors.APIError "Not logged in"
// @Failure 413 {object} errors.APIError "File too large"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts [post]
func (h *TranscriptHandler) Upload(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		middleware.HandleError(c, errors.NewUnauthorizedError("Not logged in"))
		return
	}

	var upload *services.UploadedFile
	if header, err := c.FormFile("file"); err == nil {
		file, err := header.Open()
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("No file uploaded or upload error"))
			return
		}
		defer file.Close()

		upload = &services.UploadedFile{
			Name:    header.Filename,
			Size:    header.Size,
			Content: file,
		}
	}

	response, err := h.service.Upload(c.Request.Context(), viewer, upload)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcripts
//
// @Summary List transcripts
// @Description Lists the caller's transcripts newest first. Admins see every transcript.
// @Tags transcripts
// @Produce json
// @Param X-User-Email header string true "Authenticated user email"
// @Param limit query int false "Maximum number of transcripts" minimum(1) maximum(50)
// @Success 200 {object} dto.TranscriptListResponse "Transcript list"
// @Failure 401 {object} errors.APIError "Not logged in"
// @Failure 422 {object} errors.APIError "Invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcripts [get]
func (h *TranscriptHandler) List(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		middleware.HandleError(c, errors.NewUnauthorizedError("Not logged in"))
		return
	}

	var query dto.ListTranscriptsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.List(c.Request.Context(), viewer, query.EffectiveLimit())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Status handles GET /api/v1/transcripts/:id/status
//
// @Summary Get transcription progress
// @Description Returns the status, progress text and error message of a transcript
// @Tags transcripts
// @Produce json
// @Param X-User-Email header string true "Authenticated user email"
// @Param id path int true "Transcript ID" minimum(1)
// @Success 200 {object} dto.StatusResponse "Current status"
// @Failure 401 {object} errors.APIError "Not logged in"
// @Failure 403 {object} errors.APIError "Not the owner"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 422 {object} errors.APIError "Invalid ID"
// @Router /transcripts/{id}/status [get]
func (h *TranscriptHandler) Status(c *gin.Context) {
	viewer, id, ok := h.target(c)
	if !ok {
		return
	}

	response, err := h.service.Status(c.Request.Context(), viewer, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/transcripts/:id
//
// @Summary Get a completed transcript
// @Description Returns the speaker labelled transcript text and its segments
// @Tags transcripts
// @Produce json
// @Param X-User-Email header string true "Authenticated user email"
// @Param id path int true "Transcript ID" minimum(1)
// @Success 200 {object} dto.TranscriptResponse "Transcript"
// @Failure 400 {object} errors.APIError "Transcript not completed"
// @Failure 401 {object} errors.APIError "Not logged in"
// @Failure 403 {object} errors.APIError "Not the owner"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Router /transcripts/{id} [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	viewer, id, ok := h.target(c)
	if !ok {
		return
	}

	response, err := h.service.Get(c.Request.Context(), viewer, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Download handles GET /api/v1/transcripts/:id/download
//
// @Summary Download a transcript
// @Description Returns the transcript as a plain text attachment
// @Tags transcripts
// @Produce plain
// @Param X-User-Email header string true "Authenticated user email"
// @Param id path int true "Transcript ID" minimum(1)
// @Success 200 {string} string "Transcript text"
// @Failure 400 {object} errors.APIError "Transcript not completed"
// @Failure 403 {object} errors.APIError "Not the owner"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Router /transcripts/{id}/download [get]
func (h *TranscriptHandler) Download(c *gin.Context) {
	viewer, id, ok := h.target(c)
	if !ok {
		return
	}

	file, err := h.service.Download(c.Request.Context(), viewer, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(file.Content))
}

// Start handles POST /api/v1/transcripts/:id/start
//
// @Summary Run the transcription pipeline
// @Description Runs a pending job synchronously: extraction, Whisper transcription, speaker detection and merge
// @Tags transcripts
// @Produce json
// @Param X-User-Email header string true "Authenticated user email"
// @Param id path int true "Transcript ID" minimum(1)
// @Success 200 {object} dto.StartResponse "Transcription completed"
// @Failure 400 {object} dto.StartResponse "Transcription failed"
// @Failure 403 {object} errors.APIError "Not the owner"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 409 {object} errors.APIError "Already running or finished"
// @Router /transcripts/{id}/start [post]
func (h *TranscriptHandler) Start(c *gin.Context) {
	viewer, id, ok := h.target(c)
	if !ok {
		return
	}

	response, err := h.service.Start(c.Request.Context(), viewer, id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if !response.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, response)
}

// target resolves the viewer and the :id parameter, writing the error
// response itself when either is missing
func (h *TranscriptHandler) target(c *gin.Context) (viewer model.Viewer, id int64, ok bool) {
	v, found := middleware.CurrentViewer(c)
	if !found {
		middleware.HandleError(c, errors.NewUnauthorizedError("Not logged in"))
		return viewer, 0, false
	}

	var req dto.TranscriptIDRequest
	if err := middleware.ValidateURI(c, &req); err != nil {
		middleware.HandleError(c, err)
		return viewer, 0, false
	}

	return v, req.ID, true
}
