package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/shenikar/rescue_dashboard/internal/config"
	"github.com/shenikar/rescue_dashboard/internal/gateway"
	"github.com/shenikar/rescue_dashboard/internal/metrics"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/push"
	"github.com/shenikar/rescue_dashboard/internal/service/mocks"
	"github.com/shenikar/rescue_dashboard/internal/webhook"
	webhook_mocks "github.com/shenikar/rescue_dashboard/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

type testDeps struct {
	gateway   *mocks.MockGateway
	bridge    *mocks.MockEventBridge
	cache     *mocks.MockSnapshotCache
	publisher *webhook_mocks.MockAlertPublisher
	handlers  map[string]push.Handler
}

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *testDeps) {
	ctrl := gomock.NewController(t)
	deps := &testDeps{
		gateway:   mocks.NewMockGateway(ctrl),
		bridge:    mocks.NewMockEventBridge(ctrl),
		cache:     mocks.NewMockSnapshotCache(ctrl),
		publisher: webhook_mocks.NewMockAlertPublisher(ctrl),
		handlers:  make(map[string]push.Handler),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewIncidentService(deps.gateway, deps.bridge, deps.cache, deps.publisher, logger, metrics.New())
	return svc.(*incidentService), deps
}

// expectSubscriptions запоминает обработчики, которые сервис регистрирует в мосте
func (d *testDeps) expectSubscriptions() {
	d.bridge.EXPECT().
		Subscribe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(event string, h push.Handler) push.Subscription {
			d.handlers[event] = h
			return push.Subscription{Event: event, ID: uuid.New()}
		}).
		Times(4)
}

func seed(s *incidentService, incidents ...models.Incident) {
	s.applySnapshot(&models.Snapshot{Incidents: incidents}, s.nextGen.Add(1), false)
}

func boolPtr(v bool) *bool { return &v }

func twoIncidents() []models.Incident {
	return []models.Incident{
		{ID: "1", Type: models.TypeFire, Urgency: models.UrgencyHigh, Verified: boolPtr(false), Description: "fire at the mall", Location: "Downtown"},
		{ID: "2", Type: models.TypeFlood, Urgency: models.UrgencyLow, Verified: boolPtr(true), Description: "flood downtown", Location: "Riverside"},
	}
}

func ids(incidents []models.Incident) []string {
	out := make([]string, len(incidents))
	for i := range incidents {
		out[i] = incidents[i].ID
	}
	return out
}

func TestStart_LoadsSnapshotAndConnects(t *testing.T) {
	// Подготовка
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	snapshot := &models.Snapshot{
		Incidents: twoIncidents(),
		Stats:     &models.DashboardStats{TotalIncidents: 2, HighUrgency: 1, ActiveResponders: 4, AvgResponseTime: 9},
	}

	// Ожидания
	deps.expectSubscriptions()
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(snapshot, nil).Times(1)
	deps.cache.EXPECT().SaveSnapshot(ctx, snapshot).Return(nil).Times(1)
	deps.gateway.EXPECT().Health(ctx).Return(true).Times(1)
	deps.bridge.EXPECT().Connect().Times(1)

	// Действие
	err := service.Start(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(service.Incidents()))
	assert.Equal(t, *snapshot.Stats, service.Stats())
	assert.False(t, service.Offline())
	assert.Len(t, deps.handlers, 4)

	deps.handlers[push.EventIncidentDeleted](push.IncidentDeleted{ID: "2"})
	assert.Equal(t, []string{"1"}, ids(service.Incidents()))
}

func TestStart_UnhealthyBackendSkipsPush(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.expectSubscriptions()
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{Incidents: []models.Incident{}}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(nil)
	deps.gateway.EXPECT().Health(ctx).Return(false)
	deps.bridge.EXPECT().Connect().Times(0)

	require.NoError(t, service.Start(ctx))
	assert.Empty(t, service.Incidents())
}

func TestStart_OfflineFallbackAndRecovery(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	unreachable := fmt.Errorf("gateway: fetch_snapshot: %w", gateway.ErrNetworkUnreachable)
	cached := &models.Snapshot{Incidents: twoIncidents()}
	fresh := &models.Snapshot{Incidents: []models.Incident{{ID: "7", Urgency: models.UrgencyHigh}}}

	deps.expectSubscriptions()
	gomock.InOrder(
		deps.gateway.EXPECT().FetchSnapshot(ctx).Return(nil, unreachable),
		deps.gateway.EXPECT().FetchSnapshot(ctx).Return(fresh, nil),
	)
	deps.cache.EXPECT().LoadSnapshot(ctx).Return(cached, nil)
	deps.gateway.EXPECT().Health(ctx).Return(false)

	require.NoError(t, service.Start(ctx))
	assert.True(t, service.Offline())
	assert.Equal(t, []string{"1", "2"}, ids(service.Incidents()))
	assert.Equal(t, models.ComputeStats(cached.Incidents), service.Stats())

	// бэкенд снова доступен
	deps.cache.EXPECT().SaveSnapshot(ctx, fresh).Return(nil)
	deps.bridge.EXPECT().Connect().Times(1)

	require.NoError(t, service.Reload(ctx))
	assert.False(t, service.Offline())
	assert.Equal(t, []string{"7"}, ids(service.Incidents()))
}

func TestStart_NoBackendNoCache(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.expectSubscriptions()
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(nil, fmt.Errorf("gateway: %w", gateway.ErrNetworkUnreachable))
	deps.cache.EXPECT().LoadSnapshot(ctx).Return(nil, nil)
	deps.gateway.EXPECT().Health(ctx).Return(false)

	err := service.Start(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrNetworkUnreachable)
	assert.Empty(t, service.Incidents())
	assert.False(t, service.Offline())
}

func TestStop_UnsubscribesAndDisconnects(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.expectSubscriptions()
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(nil)
	deps.gateway.EXPECT().Health(ctx).Return(true)
	deps.bridge.EXPECT().Connect()
	require.NoError(t, service.Start(ctx))

	deps.bridge.EXPECT().Unsubscribe(gomock.Any()).Times(4)
	deps.bridge.EXPECT().Disconnect().Times(1)

	service.Stop()
}

func TestReload_ReplacesWholesale(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)

	snapshot := &models.Snapshot{Incidents: []models.Incident{
		{ID: "a", Urgency: models.UrgencyHigh},
		{ID: "b", Urgency: models.UrgencyLow, Archived: true},
		{ID: "a", Urgency: models.UrgencyLow},
		{ID: "c", Urgency: models.UrgencyMedium},
	}}
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(snapshot, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, snapshot).Return(nil)

	require.NoError(t, service.Reload(ctx))

	incidents := service.Incidents()
	assert.Equal(t, []string{"a", "c"}, ids(incidents))
	assert.Equal(t, models.UrgencyHigh, incidents[0].Urgency)
	assert.Equal(t, 2, service.Stats().TotalIncidents)
}

func TestReload_ErrorKeepsState(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)
	before := service.Incidents()

	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(nil, &gateway.StatusError{Op: "fetch_snapshot", StatusCode: 500})

	err := service.Reload(ctx)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, before, service.Incidents())
}

func TestReload_CacheFailureIsNotFatal(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{Incidents: twoIncidents()}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(fmt.Errorf("redis down"))

	require.NoError(t, service.Reload(ctx))
	assert.Len(t, service.Incidents(), 2)
}

func TestReload_DiscardsStaleResponse(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	older := &models.Snapshot{Incidents: []models.Incident{{ID: "old"}}}
	newer := &models.Snapshot{Incidents: []models.Incident{{ID: "new"}}}

	entered := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		deps.gateway.EXPECT().FetchSnapshot(ctx).DoAndReturn(func(context.Context) (*models.Snapshot, error) {
			close(entered)
			<-release
			return older, nil
		}),
		deps.gateway.EXPECT().FetchSnapshot(ctx).Return(newer, nil),
	)
	deps.cache.EXPECT().SaveSnapshot(ctx, newer).Return(nil).Times(1)

	firstDone := make(chan error, 1)
	go func() { firstDone <- service.Reload(ctx) }()
	<-entered

	require.NoError(t, service.Reload(ctx))
	close(release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, []string{"new"}, ids(service.Incidents()))
}

func TestReload_FallbackStatsFollowCleanedCollection(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodGet, "http://backend.test/dashboard",
		httpmock.NewStringResponder(http.StatusOK, `{"incidents": [
			{"id": "1", "urgency": "high"},
			{"id": "2", "urgency": "high", "archived": true},
			{"id": "1", "urgency": "high"}
		]}`))

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	m := metrics.New()
	gw := gateway.NewClient(&config.Config{APIURL: "http://backend.test", RequestTimeout: 5 * time.Second}, logger, m)
	bridge := mocks.NewMockEventBridge(gomock.NewController(t))
	service := NewIncidentService(gw, bridge, nil, nil, logger, m)

	require.NoError(t, service.Reload(context.Background()))

	incidents := service.Incidents()
	assert.Equal(t, []string{"1"}, ids(incidents))
	assert.Equal(t, models.ComputeStats(incidents), service.Stats())
	assert.Equal(t, 1, service.Stats().TotalIncidents)
	assert.Equal(t, 1, service.Stats().HighUrgency)
}

func TestNewIncident_PrependsAndRecomputesStats(t *testing.T) {
	service, deps := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	incoming := models.Incident{ID: "3", Type: models.TypeBuildingCollapse, Urgency: models.UrgencyHigh}

	deps.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.AlertEvent) error {
			assert.Equal(t, "3", event.IncidentID)
			assert.Equal(t, models.UrgencyHigh, event.Urgency)
			return nil
		}).
		Times(1)

	service.handleEvent(push.NewIncident{Incident: incoming})

	incidents := service.Incidents()
	require.Len(t, incidents, 3)
	assert.Equal(t, []string{"3", "1", "2"}, ids(incidents))
	assert.Equal(t, models.DashboardStats{
		TotalIncidents:   3,
		HighUrgency:      2,
		ActiveResponders: 0,
		AvgResponseTime:  models.FallbackAvgResponseTime,
	}, service.Stats())
}

func TestNewIncident_ExistingIDUpdatesInPlace(t *testing.T) {
	service, deps := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	update := models.Incident{ID: "2", Type: models.TypeFlood, Urgency: models.UrgencyHigh, Description: "flood rising"}
	service.handleEvent(push.NewIncident{Incident: update})
	service.handleEvent(push.NewIncident{Incident: update})

	incidents := service.Incidents()
	assert.Equal(t, []string{"1", "2"}, ids(incidents))
	assert.Equal(t, "flood rising", incidents[1].Description)
	assert.Equal(t, 2, service.Stats().HighUrgency)
}

func TestNewIncident_AlertFailureIsNotFatal(t *testing.T) {
	service, deps := newTestIncidentService(t)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("redis down"))

	service.handleEvent(push.NewIncident{Incident: models.Incident{ID: "9", Urgency: models.UrgencyHigh}})

	assert.Equal(t, []string{"9"}, ids(service.Incidents()))
}

func TestNewIncident_LowUrgencyNoAlert(t *testing.T) {
	service, deps := newTestIncidentService(t)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	service.handleEvent(push.NewIncident{Incident: models.Incident{ID: "9", Urgency: models.UrgencyLow}})

	assert.Len(t, service.Incidents(), 1)
}

func TestIncidentUpdated_ArchivedRemovesOnlyTarget(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	before := service.Incidents()

	service.handleEvent(push.IncidentUpdated{
		IncidentID: "1",
		Incident:   &models.Incident{ID: "1", Archived: true},
		Archived:   true,
	})

	incidents := service.Incidents()
	require.Len(t, incidents, 1)
	assert.Equal(t, before[1], incidents[0])
	assert.Equal(t, 1, service.Stats().TotalIncidents)
	assert.Equal(t, 0, service.Stats().HighUrgency)
}

func TestIncidentUpdated_ReplacesInPlace(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	replacement := models.Incident{ID: "2", Type: models.TypeFlood, Urgency: models.UrgencyHigh, Description: "levee breach"}

	service.handleEvent(push.IncidentUpdated{IncidentID: "2", Incident: &replacement})

	incidents := service.Incidents()
	assert.Equal(t, []string{"1", "2"}, ids(incidents))
	assert.Equal(t, replacement, incidents[1])
	assert.Equal(t, 2, service.Stats().HighUrgency)
}

func TestIncidentUpdated_UnknownIDIgnored(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	before := service.Incidents()
	notified := 0
	service.OnChange(func() { notified++ })

	service.handleEvent(push.IncidentUpdated{IncidentID: "404", Incident: &models.Incident{ID: "404"}})

	assert.Equal(t, before, service.Incidents())
	assert.Zero(t, notified)
}

func TestIncidentUpdated_PartialUpdateMerges(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)

	service.handleEvent(push.IncidentUpdated{
		IncidentID: "1",
		Update: map[string]json.RawMessage{
			"status":      json.RawMessage(`"resolved"`),
			"verified":    json.RawMessage(`true`),
			"verified_by": json.RawMessage(`"admin"`),
		},
	})

	got, err := service.Incident("1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got.Status)
	assert.True(t, got.IsVerified())
	assert.Equal(t, "admin", got.VerifiedBy)
	assert.Equal(t, "fire at the mall", got.Description)
	assert.Equal(t, models.UrgencyHigh, got.Urgency)
}

func TestIncidentUpdated_PartialArchivedRemoves(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)

	service.handleEvent(push.IncidentUpdated{
		IncidentID: "2",
		Update:     map[string]json.RawMessage{"archived": json.RawMessage(`true`)},
		Archived:   true,
	})

	assert.Equal(t, []string{"1"}, ids(service.Incidents()))
}

func TestIncidentVerified_OnlySetsVerified(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)
	before := service.Incidents()

	service.handleEvent(push.IncidentVerified{ID: "1"})
	service.handleEvent(push.IncidentVerified{ID: "1"})
	service.handleEvent(push.IncidentVerified{ID: "missing"})

	after := service.Incidents()
	require.Len(t, after, 2)
	expected := before[0].Clone()
	expected.Verified = boolPtr(true)
	assert.Equal(t, expected, after[0])
	assert.Equal(t, before[1], after[1])
}

func TestIncidentDeleted_Removes(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)

	service.handleEvent(push.IncidentDeleted{ID: "2"})
	service.handleEvent(push.IncidentDeleted{ID: "2"})

	assert.Equal(t, []string{"1"}, ids(service.Incidents()))
}

func TestEvents_KeepFallbackHeuristicsOnFieldUpdates(t *testing.T) {
	service, _ := newTestIncidentService(t)
	backendStats := models.DashboardStats{TotalIncidents: 2, HighUrgency: 1, ActiveResponders: 5, AvgResponseTime: 7.5}
	service.applySnapshot(&models.Snapshot{Incidents: twoIncidents(), Stats: &backendStats}, service.nextGen.Add(1), false)

	service.handleEvent(push.IncidentVerified{ID: "2"})
	assert.Equal(t, backendStats, service.Stats())

	service.handleEvent(push.IncidentDeleted{ID: "1"})
	assert.Equal(t, models.DashboardStats{TotalIncidents: 1, HighUrgency: 0, ActiveResponders: 5, AvgResponseTime: 7.5}, service.Stats())
}

func TestEvents_NeverProduceDuplicateIDs(t *testing.T) {
	service, deps := newTestIncidentService(t)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	rng := rand.New(rand.NewSource(42))
	urgencies := []models.Urgency{models.UrgencyHigh, models.UrgencyMedium, models.UrgencyLow}

	for i := 0; i < 500; i++ {
		inc := models.Incident{
			ID:      fmt.Sprintf("id-%d", rng.Intn(8)),
			Urgency: urgencies[rng.Intn(len(urgencies))],
		}
		switch rng.Intn(4) {
		case 0, 1:
			service.handleEvent(push.NewIncident{Incident: inc})
		case 2:
			service.handleEvent(push.IncidentUpdated{IncidentID: inc.ID, Incident: &inc})
		case 3:
			service.handleEvent(push.IncidentDeleted{ID: inc.ID})
		}

		incidents := service.Incidents()
		seen := make(map[string]bool)
		for _, it := range incidents {
			require.False(t, seen[it.ID], "duplicate id %s after step %d", it.ID, i)
			seen[it.ID] = true
		}
		stats := service.Stats()
		require.Equal(t, len(incidents), stats.TotalIncidents)
		require.Equal(t, models.CountHighUrgency(incidents), stats.HighUrgency)
	}
}

func TestResolve_Success(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)

	gomock.InOrder(
		deps.gateway.EXPECT().UpdateStatus(ctx, "1", models.StatusResolved).Return(&models.Ack{Success: true}, nil),
		deps.gateway.EXPECT().Verify(ctx, "1").Return(&models.Ack{Success: true}, nil),
	)
	deps.bridge.EXPECT().Connected().Return(true)

	require.NoError(t, service.Resolve(ctx, "1"))
	// локальное состояние меняют только push-события
	assert.Len(t, service.Incidents(), 2)
}

func TestResolve_PushDownTriggersReload(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)
	reloaded := &models.Snapshot{Incidents: []models.Incident{twoIncidents()[1]}}

	deps.gateway.EXPECT().UpdateStatus(ctx, "1", models.StatusResolved).Return(&models.Ack{Success: true}, nil)
	deps.gateway.EXPECT().Verify(ctx, "1").Return(&models.Ack{Success: true, Archived: true}, nil)
	deps.bridge.EXPECT().Connected().Return(false)
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(reloaded, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, reloaded).Return(nil)

	require.NoError(t, service.Resolve(ctx, "1"))
	assert.Equal(t, []string{"2"}, ids(service.Incidents()))
}

func TestResolve_VerifyFailureLeavesCollectionUnchanged(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)
	before := service.Incidents()
	statsBefore := service.Stats()

	deps.gateway.EXPECT().UpdateStatus(ctx, "1", models.StatusResolved).Return(&models.Ack{Success: true}, nil)
	deps.gateway.EXPECT().Verify(ctx, "1").Return(nil, &gateway.StatusError{Op: "verify", StatusCode: 500, Detail: "boom"})

	err := service.Resolve(ctx, "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrNonSuccessStatus)
	assert.Equal(t, before, service.Incidents())
	assert.Equal(t, statsBefore, service.Stats())
}

func TestResolve_UpdateStatusFailureSkipsVerify(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	seed(service, twoIncidents()...)

	deps.gateway.EXPECT().UpdateStatus(ctx, "1", models.StatusResolved).Return(nil, fmt.Errorf("gateway: %w", gateway.ErrNetworkUnreachable))
	deps.gateway.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

	err := service.Resolve(ctx, "1")

	assert.ErrorIs(t, err, gateway.ErrNetworkUnreachable)
	assert.Len(t, service.Incidents(), 2)
}

func TestVerifyAndUpdateStatus(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.gateway.EXPECT().Verify(ctx, "1").Return(&models.Ack{Success: true}, nil)
	deps.gateway.EXPECT().UpdateStatus(ctx, "1", models.StatusInProgress).Return(&models.Ack{Success: true}, nil)
	deps.bridge.EXPECT().Connected().Return(true).Times(2)

	require.NoError(t, service.Verify(ctx, "1"))
	require.NoError(t, service.UpdateStatus(ctx, "1", models.StatusInProgress))

	deps.gateway.EXPECT().Verify(ctx, "2").Return(nil, fmt.Errorf("gateway: %w", gateway.ErrMalformedResponse))
	assert.ErrorIs(t, service.Verify(ctx, "2"), gateway.ErrMalformedResponse)
}

func TestUpload_SingleDuplicateIsSuccess(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	file := models.Upload{Filename: "photo.png", Data: pngBytes}
	duplicate := &models.AnalysisResult{Duplicate: true, ExistingIncident: &models.Incident{ID: "1"}, DistanceMeters: 40}

	deps.gateway.EXPECT().AnalyzeFile(ctx, file).Return(duplicate, nil)
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{Incidents: twoIncidents()}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(nil)

	report, err := service.Upload(ctx, []models.Upload{file})

	require.NoError(t, err)
	assert.Empty(t, report.Created)
	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "1", report.Duplicates[0].ExistingIncident.ID)
}

func TestUpload_MultipleImagesUseBatch(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	files := []models.Upload{{Filename: "a.png", Data: pngBytes}, {Filename: "b.png", Data: pngBytes}}

	deps.gateway.EXPECT().BatchAnalyze(ctx, files).Return(&models.BatchResult{Results: []models.Incident{{ID: "b-1"}}, Failed: 1}, nil)
	deps.gateway.EXPECT().AnalyzeFile(gomock.Any(), gomock.Any()).Times(0)
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(nil)

	report, err := service.Upload(ctx, files)

	require.NoError(t, err)
	assert.Equal(t, []string{"b-1"}, ids(report.Created))
	assert.Equal(t, 1, report.Failed)
}

func TestUpload_MixedFilesUploadedOneByOne(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	image := models.Upload{Filename: "a.png", Data: pngBytes}
	doc := models.Upload{Filename: "report.pdf", Data: pdfBytes}
	notes := models.Upload{Filename: "notes.txt", Data: []byte("plain text")}

	deps.gateway.EXPECT().AnalyzeFile(ctx, image).Return(&models.AnalysisResult{Incident: &models.Incident{ID: "img"}}, nil)
	deps.gateway.EXPECT().AnalyzeFile(ctx, doc).Return(&models.AnalysisResult{Incident: &models.Incident{ID: "doc"}}, nil)
	deps.gateway.EXPECT().AnalyzeFile(ctx, notes).Return(nil, fmt.Errorf("gateway: %w", gateway.ErrUnsupportedInput))
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(&models.Snapshot{}, nil)
	deps.cache.EXPECT().SaveSnapshot(ctx, gomock.Any()).Return(nil)

	report, err := service.Upload(ctx, []models.Upload{image, doc, notes})

	require.NoError(t, err)
	assert.Equal(t, []string{"img", "doc"}, ids(report.Created))
	assert.Equal(t, 1, report.Failed)
}

func TestUpload_SingleFailureSurfacesError(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()
	notes := models.Upload{Filename: "notes.txt", Data: []byte("plain text")}

	deps.gateway.EXPECT().AnalyzeFile(ctx, notes).Return(nil, fmt.Errorf("gateway: %w", gateway.ErrUnsupportedInput))
	deps.gateway.EXPECT().FetchSnapshot(gomock.Any()).Times(0)

	report, err := service.Upload(ctx, []models.Upload{notes})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, gateway.ErrUnsupportedInput)

	_, err = service.Upload(ctx, nil)
	assert.Error(t, err)
}

func TestAnalyzeText_ReloadsAfterSuccess(t *testing.T) {
	service, deps := newTestIncidentService(t)
	ctx := context.Background()

	deps.gateway.EXPECT().AnalyzeText(ctx, "smoke").Return(&models.Incident{ID: "t-1"}, nil)
	deps.gateway.EXPECT().FetchSnapshot(ctx).Return(nil, fmt.Errorf("gateway: %w", gateway.ErrNetworkUnreachable))

	incident, err := service.AnalyzeText(ctx, "smoke")

	require.NoError(t, err)
	assert.Equal(t, "t-1", incident.ID)
}

func TestIncident_Lookup(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)

	got, err := service.Incident("2")
	require.NoError(t, err)
	assert.Equal(t, models.TypeFlood, got.Type)

	// копия не связана с коллекцией
	*got.Verified = false
	again, _ := service.Incident("2")
	assert.True(t, again.IsVerified())

	_, err = service.Incident("404")
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestFiltered_UsesCanonicalCollection(t *testing.T) {
	service, _ := newTestIncidentService(t)
	seed(service, twoIncidents()...)

	got := service.Filtered("", models.FilterState{Verified: boolPtr(true)})

	assert.Equal(t, []string{"2"}, ids(got))
}

func TestOnChange_NotifiesUntilCancelled(t *testing.T) {
	service, _ := newTestIncidentService(t)
	calls := 0
	cancel := service.OnChange(func() { calls++ })

	service.handleEvent(push.NewIncident{Incident: models.Incident{ID: "1", Urgency: models.UrgencyLow}})
	assert.Equal(t, 1, calls)

	cancel()
	service.handleEvent(push.IncidentDeleted{ID: "1"})
	assert.Equal(t, 1, calls)
}

func TestPushConnected(t *testing.T) {
	service, deps := newTestIncidentService(t)
	deps.bridge.EXPECT().Connected().Return(true)

	assert.True(t, service.PushConnected())
}
