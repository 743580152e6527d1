package service

import (
	"sync"

	"github.com/shenikar/rescue_dashboard/internal/models"
)

// Projection - отфильтрованное представление коллекции.
// Пересчитывается целиком при смене запроса, фильтров или самой коллекции.
type Projection struct {
	source   IncidentService
	onUpdate func([]models.Incident)
	cancel   func()

	mu     sync.Mutex
	query  string
	filter models.FilterState
	sorted bool
	view   []models.Incident
	gen    uint64

	// deliverMu упорядочивает вызовы onUpdate: устаревшее представление не доставляется
	deliverMu sync.Mutex
	delivered uint64
}

// NewProjection подписывается на изменения коллекции. onUpdate может быть nil.
// onUpdate вызывается последовательно и никогда не получает представление старее уже доставленного.
func NewProjection(source IncidentService, onUpdate func([]models.Incident)) *Projection {
	p := &Projection{source: source, onUpdate: onUpdate}
	p.recompute()
	p.cancel = source.OnChange(p.recompute)
	return p
}

func (p *Projection) SetQuery(query string) {
	p.mu.Lock()
	p.query = query
	p.mu.Unlock()
	p.recompute()
}

func (p *Projection) SetFilter(f models.FilterState) {
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
	p.recompute()
}

// SetSortByUrgency включает сортировку high -> medium -> low
func (p *Projection) SetSortByUrgency(enabled bool) {
	p.mu.Lock()
	p.sorted = enabled
	p.mu.Unlock()
	p.recompute()
}

// View возвращает текущее представление
func (p *Projection) View() []models.Incident {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Incident(nil), p.view...)
}

// Close отписывает проекцию от коллекции
func (p *Projection) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Projection) recompute() {
	p.mu.Lock()
	view := Filter(p.source.Incidents(), p.query, p.filter)
	if p.sorted {
		SortByUrgency(view)
	}
	p.gen++
	gen := p.gen
	p.view = view
	p.mu.Unlock()

	if p.onUpdate == nil {
		return
	}
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()
	if gen <= p.delivered {
		return
	}
	p.delivered = gen
	p.onUpdate(append([]models.Incident(nil), view...))
}
