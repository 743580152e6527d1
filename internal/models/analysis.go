package models

import (
	"fmt"
	"time"
)

// AnalysisType - категория спутникового анализа
type AnalysisType string

const (
	AnalysisAll    AnalysisType = "all"
	AnalysisFire   AnalysisType = "fire"
	AnalysisFlood  AnalysisType = "flood"
	AnalysisDamage AnalysisType = "damage"
)

// Upload - файл, передаваемый на анализ
type Upload struct {
	Filename string
	Data     []byte
}

// AnalysisResult - результат анализа изображения или документа.
// Дубликат - успешный исход: Incident пуст, заполнены ExistingIncident и DistanceMeters.
type AnalysisResult struct {
	Incident         *Incident `json:"incident,omitempty"`
	Duplicate        bool      `json:"duplicate"`
	ExistingIncident *Incident `json:"existing_incident,omitempty"`
	DistanceMeters   float64   `json:"distance_meters,omitempty"`
	Message          string    `json:"message,omitempty"`
}

// BatchResult - результат пакетной загрузки изображений
type BatchResult struct {
	Results []Incident `json:"results"`
	Failed  int        `json:"failed"`
}

// UploadReport - итог загрузки набора файлов
type UploadReport struct {
	Created    []Incident       `json:"created"`
	Duplicates []AnalysisResult `json:"duplicates"`
	Failed     int              `json:"failed"`
}

// SocialMediaAnalysis - результат анализа поста из соцсети
type SocialMediaAnalysis struct {
	IncidentType IncidentType `json:"incident_type"`
	Urgency      Urgency      `json:"urgency"`
	Location     string       `json:"location"`
	Confidence   float64      `json:"confidence"`
	Created      bool         `json:"created"`
}

// SatelliteRequest - параметры спутникового анализа области
type SatelliteRequest struct {
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	RadiusKM     float64      `json:"radius_km" validate:"gte=1,lte=50"`
	AnalysisType AnalysisType `json:"analysis_type" validate:"required,oneof=all fire flood damage"`
}

// SatelliteAnalysis - результат спутникового анализа
type SatelliteAnalysis struct {
	AnalysisDate    string   `json:"analysis_date"`
	DetectedChanges []string `json:"detected_changes"`
	RiskAssessment  string   `json:"risk_assessment"`
	Sources         []string `json:"sources"`
}

// RelativeAge форматирует возраст записи относительно now
func RelativeAge(ts, now time.Time) string {
	mins := int(now.Sub(ts) / time.Minute)
	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return plural(mins, "min")
	}
	hours := mins / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	return plural(hours/24, "day")
}

func plural(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
