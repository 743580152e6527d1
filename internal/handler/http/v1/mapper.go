package v1

import (
	"time"

	"github.com/shenikar/rescue_dashboard/internal/models"
)

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа.
// Age пуст, если метку времени не удалось разобрать.
func ModelToIncidentResponse(model models.Incident, now time.Time) IncidentResponse {
	resp := IncidentResponse{
		ID:             model.ID,
		Type:           string(model.Type),
		Latitude:       model.Latitude,
		Longitude:      model.Longitude,
		Urgency:        string(model.Urgency),
		Confidence:     model.Confidence,
		Timestamp:      model.Timestamp,
		Description:    model.Description,
		Location:       model.Location,
		PeopleAffected: model.PeopleAffected,
		ImageLocal:     model.ImageURL != "" && !model.HasRemoteImage(),
		Verified:       model.IsVerified(),
		VerifiedBy:     model.VerifiedBy,
		Status:         string(model.Status),
	}
	// локальные изображения не запрашиваются по сети
	if model.HasRemoteImage() {
		resp.ImageURL = model.ImageURL
	}
	if ts, ok := model.ParsedTimestamp(); ok {
		resp.Age = models.RelativeAge(ts, now)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []models.Incident, now time.Time) []IncidentResponse {
	responses := make([]IncidentResponse, len(incidents))
	for i := range incidents {
		responses[i] = ModelToIncidentResponse(incidents[i], now)
	}
	return responses
}

func StatsToResponse(stats models.DashboardStats, offline, pushConnected bool) StatsResponse {
	return StatsResponse{
		TotalIncidents:   stats.TotalIncidents,
		HighUrgency:      stats.HighUrgency,
		ActiveResponders: stats.ActiveResponders,
		AvgResponseTime:  stats.AvgResponseTime,
		Offline:          offline,
		PushConnected:    pushConnected,
	}
}

func ReportToUploadResponse(report *models.UploadReport, now time.Time) UploadResponse {
	resp := UploadResponse{
		Created:    ModelsToIncidentResponses(report.Created, now),
		Duplicates: make([]DuplicateResponse, 0, len(report.Duplicates)),
		Failed:     report.Failed,
	}
	for _, d := range report.Duplicates {
		dup := DuplicateResponse{DistanceMeters: d.DistanceMeters, Message: d.Message}
		if d.ExistingIncident != nil {
			dup.ExistingIncidentID = d.ExistingIncident.ID
		}
		resp.Duplicates = append(resp.Duplicates, dup)
	}
	return resp
}

// QueryToFilter переводит провалидированные параметры запроса в FilterState
func QueryToFilter(q ListIncidentsQuery) models.FilterState {
	var f models.FilterState
	if q.Type != "" {
		t := models.IncidentType(q.Type)
		f.Type = &t
	}
	if q.Urgency != "" {
		u := models.Urgency(q.Urgency)
		f.Urgency = &u
	}
	if q.Verified != "" {
		v := q.Verified == "true"
		f.Verified = &v
	}
	return f
}
