package models

const (
	// Эвристики резервной статистики. Это заглушки, а не учет реальных спасателей.
	fallbackResponderRatio  = 0.3
	FallbackAvgResponseTime = 12
)

// ComputeStats вычисляет статистику по коллекции. Результат зависит только от коллекции.
func ComputeStats(incidents []Incident) DashboardStats {
	stats := DashboardStats{
		TotalIncidents:   len(incidents),
		HighUrgency:      CountHighUrgency(incidents),
		ActiveResponders: int(float64(len(incidents)) * fallbackResponderRatio),
		AvgResponseTime:  FallbackAvgResponseTime,
	}
	return stats
}

func CountHighUrgency(incidents []Incident) int {
	n := 0
	for i := range incidents {
		if incidents[i].Urgency == UrgencyHigh {
			n++
		}
	}
	return n
}

// Ack - подтверждение мутирующего запроса
type Ack struct {
	Success    bool   `json:"success"`
	IncidentID string `json:"incident_id,omitempty"`
	Archived   bool   `json:"archived,omitempty"`
}
