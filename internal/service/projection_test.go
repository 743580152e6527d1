package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProjection_RecomputesOnEveryChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIncidentService(ctrl)

	collection := filterFixture()
	var onChange func()
	cancelled := false
	source.EXPECT().Incidents().DoAndReturn(func() []models.Incident { return collection }).AnyTimes()
	source.EXPECT().OnChange(gomock.Any()).DoAndReturn(func(fn func()) func() {
		onChange = fn
		return func() { cancelled = true }
	})

	var updates [][]string
	p := NewProjection(source, func(view []models.Incident) {
		updates = append(updates, ids(view))
	})
	require.NotNil(t, onChange)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(p.View()))

	p.SetQuery("mall")
	assert.Equal(t, []string{"1", "3"}, ids(p.View()))

	p.SetFilter(models.FilterState{Urgency: urgencyPtr(models.UrgencyMedium)})
	assert.Equal(t, []string{"3"}, ids(p.View()))

	// коллекция изменилась: новая запись попадает в представление
	collection = append([]models.Incident{{ID: "5", Urgency: models.UrgencyMedium, Location: "Mall parking"}}, collection...)
	onChange()
	assert.Equal(t, []string{"5", "3"}, ids(p.View()))

	p.SetFilter(models.FilterState{})
	p.SetSortByUrgency(true)
	assert.Equal(t, []string{"1", "5", "3"}, ids(p.View()))

	assert.Len(t, updates, 6)

	p.Close()
	assert.True(t, cancelled)
}

func TestProjection_ConcurrentUpdatesNeverDeliverStaleView(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIncidentService(ctrl)

	incidents := make([]models.Incident, 0, 50)
	for i := 0; i < 50; i++ {
		incidents = append(incidents, models.Incident{ID: fmt.Sprint(i), Description: fmt.Sprintf("item-%d", i)})
	}
	source.EXPECT().Incidents().Return(incidents).AnyTimes()
	source.EXPECT().OnChange(gomock.Any()).Return(func() {})

	var (
		mu        sync.Mutex
		delivered int
		last      []string
	)
	p := NewProjection(source, func(view []models.Incident) {
		mu.Lock()
		defer mu.Unlock()
		delivered++
		last = ids(view)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.SetQuery(fmt.Sprintf("item-%d", i))
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, delivered, 51)
	// последнее доставленное представление совпадает с текущим
	assert.Equal(t, ids(p.View()), last)
}
