package service

import (
	"slices"
	"strings"

	"github.com/shenikar/rescue_dashboard/internal/models"
)

// Filter возвращает записи, удовлетворяющие запросу и всем заданным фильтрам.
// Порядок исходной коллекции сохраняется, входной срез не изменяется.
func Filter(incidents []models.Incident, query string, f models.FilterState) []models.Incident {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && f.Empty() {
		return slices.Clone(incidents)
	}
	out := make([]models.Incident, 0, len(incidents))
	for i := range incidents {
		if matches(&incidents[i], q, f) {
			out = append(out, incidents[i])
		}
	}
	return out
}

func matches(inc *models.Incident, q string, f models.FilterState) bool {
	if q != "" &&
		!strings.Contains(strings.ToLower(inc.Description), q) &&
		!strings.Contains(strings.ToLower(inc.Location), q) {
		return false
	}
	if f.Type != nil && inc.Type != *f.Type {
		return false
	}
	if f.Urgency != nil && inc.Urgency != *f.Urgency {
		return false
	}
	// незаданный verified считается false
	if f.Verified != nil && inc.IsVerified() != *f.Verified {
		return false
	}
	return true
}

// SortByUrgency упорядочивает high -> medium -> low, при равенстве сохраняя порядок коллекции
func SortByUrgency(incidents []models.Incident) {
	slices.SortStableFunc(incidents, func(a, b models.Incident) int {
		return a.Urgency.Rank() - b.Urgency.Rank()
	})
}
