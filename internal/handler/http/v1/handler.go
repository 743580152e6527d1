package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/rescue_dashboard/internal/config"
	"github.com/shenikar/rescue_dashboard/internal/gateway"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	analysisService service.AnalysisService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	now             func() time.Time
}

func NewHandler(incidentService service.IncidentService, analysisService service.AnalysisService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		analysisService: analysisService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		now:             time.Now,
	}
}

// writeError переводит ошибку сервиса в HTTP-ответ
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	var statusErr *gateway.StatusError
	switch {
	case errors.Is(err, gateway.ErrUnsupportedInput):
		log.WithError(err).Warn("Request rejected as unsupported input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIncidentNotFound),
		errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		log.WithError(err).Warn("Incident not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	default:
		log.WithError(err).Error("Backend request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend request failed"})
	}
}

// bindAndValidate разбирает JSON тело и проверяет его валидатором
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Get a list of incidents
// @Description Get the filtered projection of the synchronized incident collection
// @Tags Incidents
// @Produce json
// @Param q query string false "Free-text search over description and location"
// @Param type query string false "Incident type" Enums(fire, flood, people_trapped, building_collapse, medical, earthquake, landslide, other)
// @Param urgency query string false "Urgency" Enums(high, medium, low)
// @Param verified query string false "Verification state" Enums(true, false)
// @Param sort query string false "Sort order" Enums(urgency)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	var params ListIncidentsQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(params); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents := h.incidentService.Filtered(params.Query, QueryToFilter(params))
	if params.Sort == "urgency" {
		service.SortByUrgency(incidents)
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents, h.now()))
}

// @Summary Get dashboard statistics
// @Description Get aggregated statistics and connectivity state
// @Tags Incidents
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsToResponse(
		h.incidentService.Stats(),
		h.incidentService.Offline(),
		h.incidentService.PushConnected(),
	))
}

// @Summary Get incident by ID
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.Incident(id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(*incident, h.now()))
}

// @Summary Resolve an incident
// @Description Mark the incident resolved and verified on the backend. Requires API key.
// @Tags Incidents
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /incidents/{id}/resolve [post]
func (h *Handler) resolveIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "resolveIncident").WithField("id", id)

	if err := h.incidentService.Resolve(c.Request.Context(), id); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Verify an incident
// @Tags Incidents
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /incidents/{id}/verify [post]
func (h *Handler) verifyIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "verifyIncident").WithField("id", id)

	if err := h.incidentService.Verify(c.Request.Context(), id); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update incident status
// @Tags Incidents
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /incidents/{id}/status [put]
func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.incidentService.UpdateStatus(c.Request.Context(), id, models.IncidentStatus(input.Status)); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Reload the dashboard snapshot
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /dashboard/refresh [post]
func (h *Handler) refreshDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "refreshDashboard")

	if err := h.incidentService.Reload(c.Request.Context()); err != nil {
		h.writeError(c, log, err)
		return
	}
	h.getStats(c)
}

// @Summary Upload files for analysis
// @Description Images and documents are analyzed by the backend. Several images go as one batch. Requires API key.
// @Tags Analysis
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param files formData file true "Files to analyze"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} map[string]string "No files or unsupported file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /upload [post]
func (h *Handler) uploadFiles(c *gin.Context) {
	log := h.logger.WithField("method", "uploadFiles")

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		log.WithError(err).Warn("No files in upload request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required in field 'files'"})
		return
	}

	uploads := make([]models.Upload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		upload, err := readUpload(fh)
		if err != nil {
			log.WithError(err).Warn("Failed to read uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}
		uploads = append(uploads, upload)
	}

	report, err := h.incidentService.Upload(c.Request.Context(), uploads)
	if err != nil {
		h.writeError(c, log.WithField("files", len(uploads)), err)
		return
	}
	c.JSON(http.StatusOK, ReportToUploadResponse(report, h.now()))
}

func readUpload(fh *multipart.FileHeader) (models.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return models.Upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return models.Upload{Filename: fh.Filename, Data: data}, nil
}

// @Summary Analyze a text report
// @Tags Analysis
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body AnalyzeTextRequest true "Text report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /analyze/text [post]
func (h *Handler) analyzeText(c *gin.Context) {
	log := h.logger.WithField("method", "analyzeText")

	var input AnalyzeTextRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	incident, err := h.incidentService.AnalyzeText(c.Request.Context(), input.Text)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(*incident, h.now()))
}

// @Summary Ask the assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param message body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /chat [post]
func (h *Handler) chat(c *gin.Context) {
	log := h.logger.WithField("method", "chat")

	var input ChatRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	answer, err := h.analysisService.Chat(c.Request.Context(), input.Message)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: answer})
}

// @Summary Semantic search over incidents
// @Tags Assistant
// @Accept json
// @Produce json
// @Param query body QueryRequest true "Query"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /query [post]
func (h *Handler) query(c *gin.Context) {
	log := h.logger.WithField("method", "query")

	var input QueryRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	results, err := h.analysisService.Query(c.Request.Context(), input.Query)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(results, h.now()))
}

// @Summary Analyze a social media post
// @Tags Analysis
// @Accept json
// @Produce json
// @Param post body SocialPostRequest true "Post text"
// @Success 200 {object} SocialAnalysisResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /social/analyze [post]
func (h *Handler) analyzeSocialPost(c *gin.Context) {
	log := h.logger.WithField("method", "analyzeSocialPost")

	var input SocialPostRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	analysis, err := h.analysisService.AnalyzeSocialPost(c.Request.Context(), input.Text)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// @Summary Analyze satellite imagery of an area
// @Tags Analysis
// @Accept json
// @Produce json
// @Param area body SatelliteRequest true "Area and analysis type"
// @Success 200 {object} SatelliteAnalysisResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 502 {object} map[string]string "Backend request failed"
// @Router /satellite/analyze [post]
func (h *Handler) analyzeSatellite(c *gin.Context) {
	log := h.logger.WithField("method", "analyzeSatellite")

	var input SatelliteRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	analysis, err := h.analysisService.AnalyzeSatellite(c.Request.Context(), models.SatelliteRequest{
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		RadiusKM:     input.RadiusKM,
		AnalysisType: models.AnalysisType(input.AnalysisType),
	})
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// @Summary Get application health status
// @Description Local status is always ok. Backend reachability is reported separately.
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	backend := "down"
	if h.analysisService.BackendHealthy(c.Request.Context()) {
		backend = "up"
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Backend: backend})
}
