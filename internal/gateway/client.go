package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shenikar/rescue_dashboard/internal/config"
	"github.com/shenikar/rescue_dashboard/internal/metrics"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	healthCacheKey  = "health"
	maxErrorBody    = 4 << 10
	socialSource    = "twitter"
	socialUser      = "anonymous"
	unknownLocation = "Unknown"
)

// Client - шлюз к REST API бэкенда. Каждая операция выполняет ровно один запрос без повторов.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
	validate   *validator.Validate
	health     *gocache.Cache
	healthTTL  time.Duration
	metrics    *metrics.Metrics
}

// NewClient создает новый Client
func NewClient(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger:    logger,
		validate:  validator.New(),
		health:    gocache.New(cfg.HealthCacheTTL, time.Minute),
		healthTTL: cfg.HealthCacheTTL,
		metrics:   m,
	}
}

// FetchSnapshot загружает полный срез инцидентов как есть.
// Stats остается nil, если бэкенд ее не прислал: резервную статистику считает ядро по очищенной коллекции.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := c.doJSON(ctx, "fetch_snapshot", http.MethodGet, "/dashboard", nil, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.Incidents == nil {
		snapshot.Incidents = []models.Incident{}
	}
	return &snapshot, nil
}

// AnalyzeImage отправляет изображение на анализ. Дубликат возвращается как успешный результат.
func (c *Client) AnalyzeImage(ctx context.Context, file models.Upload) (*models.AnalysisResult, error) {
	if kind := classify(file.Data); kind != kindImage {
		return nil, unsupported("analyze_image", "%s is not an image", file.Filename)
	}
	var raw json.RawMessage
	if err := c.doMultipart(ctx, "analyze_image", "/analyze/image", "file", []models.Upload{file}, &raw); err != nil {
		return nil, err
	}
	return decodeAnalysis("analyze_image", raw)
}

// AnalyzeText создает инцидент из свободного текста
func (c *Client) AnalyzeText(ctx context.Context, text string) (*models.Incident, error) {
	if strings.TrimSpace(text) == "" {
		return nil, unsupported("analyze_text", "text is empty")
	}
	var incident models.Incident
	if err := c.doJSON(ctx, "analyze_text", http.MethodPost, "/analyze/text", map[string]string{"text": text}, &incident); err != nil {
		return nil, err
	}
	if incident.ID == "" {
		return nil, malformed("analyze_text", "incident id is missing")
	}
	return &incident, nil
}

// AnalyzeDocument отправляет PDF или DOC/DOCX на анализ
func (c *Client) AnalyzeDocument(ctx context.Context, file models.Upload) (*models.Incident, error) {
	if kind := classify(file.Data); kind != kindDocument {
		return nil, unsupported("analyze_document", "%s is not a PDF or Word document", file.Filename)
	}
	var raw json.RawMessage
	if err := c.doMultipart(ctx, "analyze_document", "/analyze/document", "file", []models.Upload{file}, &raw); err != nil {
		return nil, err
	}
	result, err := decodeAnalysis("analyze_document", raw)
	if err != nil {
		return nil, err
	}
	if result.Duplicate {
		return result.ExistingIncident, nil
	}
	return result.Incident, nil
}

// AnalyzeFile выбирает эндпоинт по типу содержимого файла
func (c *Client) AnalyzeFile(ctx context.Context, file models.Upload) (*models.AnalysisResult, error) {
	switch classify(file.Data) {
	case kindImage:
		return c.AnalyzeImage(ctx, file)
	case kindDocument:
		incident, err := c.AnalyzeDocument(ctx, file)
		if err != nil {
			return nil, err
		}
		return &models.AnalysisResult{Incident: incident}, nil
	}
	return nil, unsupported("analyze_file", "unsupported file type for %s", file.Filename)
}

// BatchAnalyze отправляет набор изображений одним запросом
func (c *Client) BatchAnalyze(ctx context.Context, files []models.Upload) (*models.BatchResult, error) {
	if len(files) == 0 {
		return nil, unsupported("batch_analyze", "no files")
	}
	if len(files) > MaxBatchFiles {
		return nil, unsupported("batch_analyze", "at most %d files per batch, got %d", MaxBatchFiles, len(files))
	}
	for _, f := range files {
		if classify(f.Data) != kindImage {
			return nil, unsupported("batch_analyze", "%s is not an image", f.Filename)
		}
	}

	var payload struct {
		Failed  int               `json:"failed"`
		Results []json.RawMessage `json:"results"`
	}
	if err := c.doMultipart(ctx, "batch_analyze", "/batch/upload", "files", files, &payload); err != nil {
		return nil, err
	}

	result := &models.BatchResult{Results: make([]models.Incident, 0, len(payload.Results)), Failed: payload.Failed}
	for _, item := range payload.Results {
		var entry struct {
			Success  *bool            `json:"success"`
			Incident *models.Incident `json:"incident"`
			ID       string           `json:"id"`
		}
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, malformed("batch_analyze", err.Error())
		}
		switch {
		case entry.Incident != nil:
			result.Results = append(result.Results, *entry.Incident)
		case entry.ID != "":
			var incident models.Incident
			if err := json.Unmarshal(item, &incident); err != nil {
				return nil, malformed("batch_analyze", err.Error())
			}
			result.Results = append(result.Results, incident)
		}
	}
	return result, nil
}

// Verify помечает инцидент как подтвержденный на стороне бэкенда
func (c *Client) Verify(ctx context.Context, id string) (*models.Ack, error) {
	if id == "" {
		return nil, unsupported("verify", "incident id is empty")
	}
	var ack models.Ack
	if err := c.doJSON(ctx, "verify", http.MethodPost, "/verify/"+url.PathEscape(id), nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// UpdateStatus меняет статус инцидента на стороне бэкенда
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) (*models.Ack, error) {
	if id == "" {
		return nil, unsupported("update_status", "incident id is empty")
	}
	if !status.Valid() {
		return nil, unsupported("update_status", "unknown status %q", status)
	}
	var ack models.Ack
	body := map[string]models.IncidentStatus{"status": status}
	if err := c.doJSON(ctx, "update_status", http.MethodPut, "/status/"+url.PathEscape(id), body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Chat отправляет одно сообщение ассистенту. Историю диалога бэкенд не хранит.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", unsupported("chat", "message is empty")
	}
	var payload struct {
		Response *string `json:"response"`
	}
	if err := c.doJSON(ctx, "chat", http.MethodPost, "/chat", map[string]string{"message": message}, &payload); err != nil {
		return "", err
	}
	if payload.Response == nil {
		return "", malformed("chat", "response field is missing")
	}
	return *payload.Response, nil
}

// Query выполняет семантический поиск по инцидентам
func (c *Client) Query(ctx context.Context, text string) ([]models.Incident, error) {
	var payload struct {
		Results []models.Incident `json:"results"`
	}
	if err := c.doJSON(ctx, "query", http.MethodPost, "/query", map[string]string{"query": text}, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		payload.Results = []models.Incident{}
	}
	return payload.Results, nil
}

// AnalyzeSocialPost анализирует текст поста из соцсети
func (c *Client) AnalyzeSocialPost(ctx context.Context, text string) (*models.SocialMediaAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, unsupported("analyze_social", "post text is empty")
	}
	body := map[string]string{"text": text, "source": socialSource, "user": socialUser}
	var payload struct {
		Type       models.IncidentType `json:"type"`
		Urgency    models.Urgency      `json:"urgency"`
		Location   string              `json:"location"`
		Confidence float64             `json:"confidence"`
	}
	if err := c.doJSON(ctx, "analyze_social", http.MethodPost, "/social/analyze", body, &payload); err != nil {
		return nil, err
	}
	if payload.Location == "" {
		payload.Location = unknownLocation
	}
	return &models.SocialMediaAnalysis{
		IncidentType: payload.Type,
		Urgency:      payload.Urgency,
		Location:     payload.Location,
		Confidence:   payload.Confidence,
		Created:      true,
	}, nil
}

// AnalyzeSatellite запрашивает анализ спутниковых снимков области
func (c *Client) AnalyzeSatellite(ctx context.Context, req models.SatelliteRequest) (*models.SatelliteAnalysis, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, unsupported("analyze_satellite", "%v", err)
	}
	var analysis models.SatelliteAnalysis
	if err := c.doJSON(ctx, "analyze_satellite", http.MethodPost, "/satellite/analyze", req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Health проверяет доступность бэкенда. Ошибки не пробрасываются, результат кешируется на короткое время.
func (c *Client) Health(ctx context.Context) bool {
	if c.healthTTL > 0 {
		if v, found := c.health.Get(healthCacheKey); found {
			return v.(bool)
		}
	}

	ok := true
	if err := c.doJSON(ctx, "health", http.MethodGet, "/health", nil, nil); err != nil {
		c.logger.WithField("component", "gateway").WithError(err).Warn("Backend health check failed")
		ok = false
	}
	if c.healthTTL > 0 {
		c.health.Set(healthCacheKey, ok, c.healthTTL)
	}
	return ok
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return unsupported(op, "cannot encode request: %v", err)
		}
		body = bytes.NewReader(payload)
	}
	return c.do(ctx, op, method, path, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) (err error) {
	started := time.Now()
	requestID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"component":  "gateway",
		"operation":  op,
		"request_id": requestID,
	})
	defer func() {
		c.metrics.ObserveGatewayRequest(op, started, err)
		if err != nil {
			log.WithError(err).Debug("Backend request failed")
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return unsupported(op, "cannot build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s: %w: %w", op, ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Detail: parseDetail(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: %s: %w: %w", op, ErrMalformedResponse, err)
	}
	log.WithField("duration", time.Since(started)).Debug("Backend request completed")
	return nil
}

func malformed(op, reason string) error {
	return fmt.Errorf("gateway: %s: %w: %s", op, ErrMalformedResponse, reason)
}

// decodeAnalysis различает созданный инцидент и ответ о дубликате
func decodeAnalysis(op string, raw json.RawMessage) (*models.AnalysisResult, error) {
	var probe struct {
		Duplicate        bool             `json:"duplicate"`
		ExistingIncident *models.Incident `json:"existing_incident"`
		DistanceMeters   float64          `json:"distance_meters"`
		Message          string           `json:"message"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, malformed(op, err.Error())
	}
	if probe.Duplicate {
		if probe.ExistingIncident == nil {
			return nil, malformed(op, "duplicate without existing_incident")
		}
		return &models.AnalysisResult{
			Duplicate:        true,
			ExistingIncident: probe.ExistingIncident,
			DistanceMeters:   probe.DistanceMeters,
			Message:          probe.Message,
		}, nil
	}

	var incident models.Incident
	if err := json.Unmarshal(raw, &incident); err != nil {
		return nil, malformed(op, err.Error())
	}
	if incident.ID == "" {
		return nil, malformed(op, "incident id is missing")
	}
	return &models.AnalysisResult{Incident: &incident}, nil
}
