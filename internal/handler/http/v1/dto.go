package v1

import "github.com/shenikar/rescue_dashboard/internal/models"

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Urgency        string  `json:"urgency"`
	Confidence     float64 `json:"confidence"`
	Timestamp      string  `json:"timestamp"`
	Age            string  `json:"age,omitempty"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	PeopleAffected *int    `json:"people_affected,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	ImageLocal     bool    `json:"image_local,omitempty"`
	Verified       bool    `json:"verified"`
	VerifiedBy     string  `json:"verified_by,omitempty"`
	Status         string  `json:"status,omitempty"`
}

// ListIncidentsQuery - параметры фильтрации списка
type ListIncidentsQuery struct {
	Query    string `form:"q"`
	Type     string `form:"type" validate:"omitempty,oneof=fire flood people_trapped building_collapse medical earthquake landslide other"`
	Urgency  string `form:"urgency" validate:"omitempty,oneof=high medium low"`
	Verified string `form:"verified" validate:"omitempty,oneof=true false"`
	Sort     string `form:"sort" validate:"omitempty,oneof=urgency"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	TotalIncidents   int     `json:"total_incidents"`
	HighUrgency      int     `json:"high_urgency"`
	ActiveResponders int     `json:"active_responders"`
	AvgResponseTime  float64 `json:"avg_response_time"`
	Offline          bool    `json:"offline"`
	PushConnected    bool    `json:"push_connected"`
}

// UpdateStatusRequest DTO для смены статуса
// @Description DTO для смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved false_alarm"`
}

// AnalyzeTextRequest DTO для анализа текстового сообщения
type AnalyzeTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type SocialPostRequest struct {
	Text string `json:"text" validate:"required"`
}

// SatelliteRequest DTO для спутникового анализа
// @Description DTO для спутникового анализа
type SatelliteRequest struct {
	Latitude     float64 `json:"latitude" validate:"latitude"`
	Longitude    float64 `json:"longitude" validate:"longitude"`
	RadiusKM     float64 `json:"radius_km" validate:"gte=1,lte=50"`
	AnalysisType string  `json:"analysis_type" validate:"required,oneof=all fire flood damage"`
}

// UploadResponse DTO с итогом загрузки файлов
type UploadResponse struct {
	Created    []IncidentResponse  `json:"created"`
	Duplicates []DuplicateResponse `json:"duplicates"`
	Failed     int                 `json:"failed"`
}

// DuplicateResponse описывает отклоненный дубликат
type DuplicateResponse struct {
	ExistingIncidentID string  `json:"existing_incident_id,omitempty"`
	DistanceMeters     float64 `json:"distance_meters"`
	Message            string  `json:"message,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// SocialAnalysisResponse и SatelliteAnalysisResponse повторяют ответы бэкенда
type SocialAnalysisResponse = models.SocialMediaAnalysis

type SatelliteAnalysisResponse = models.SatelliteAnalysis
