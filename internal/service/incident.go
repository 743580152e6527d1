package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/rescue_dashboard/internal/gateway"
	"github.com/shenikar/rescue_dashboard/internal/metrics"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/push"
	"github.com/shenikar/rescue_dashboard/internal/webhook"
	"github.com/sirupsen/logrus"
)

const alertPublishTimeout = 3 * time.Second

var ErrIncidentNotFound = errors.New("incident not found")

// Gateway определяет контракт доступа к REST API бэкенда
type Gateway interface {
	FetchSnapshot(ctx context.Context) (*models.Snapshot, error)
	AnalyzeFile(ctx context.Context, file models.Upload) (*models.AnalysisResult, error)
	AnalyzeText(ctx context.Context, text string) (*models.Incident, error)
	BatchAnalyze(ctx context.Context, files []models.Upload) (*models.BatchResult, error)
	Verify(ctx context.Context, id string) (*models.Ack, error)
	UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) (*models.Ack, error)
	Chat(ctx context.Context, message string) (string, error)
	Query(ctx context.Context, text string) ([]models.Incident, error)
	AnalyzeSocialPost(ctx context.Context, text string) (*models.SocialMediaAnalysis, error)
	AnalyzeSatellite(ctx context.Context, req models.SatelliteRequest) (*models.SatelliteAnalysis, error)
	Health(ctx context.Context) bool
}

// EventBridge определяет контракт push-канала
type EventBridge interface {
	Connect()
	Disconnect()
	Connected() bool
	Subscribe(event string, h push.Handler) push.Subscription
	Unsubscribe(sub push.Subscription)
}

// SnapshotCache хранит последний успешный срез для офлайн-режима
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
}

// IncidentService определяет контракт ядра синхронизации инцидентов
type IncidentService interface {
	Start(ctx context.Context) error
	Stop()
	Reload(ctx context.Context) error
	Resolve(ctx context.Context, id string) error
	Verify(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) error
	Upload(ctx context.Context, files []models.Upload) (*models.UploadReport, error)
	AnalyzeText(ctx context.Context, text string) (*models.Incident, error)
	Incidents() []models.Incident
	Incident(id string) (*models.Incident, error)
	Stats() models.DashboardStats
	Filtered(query string, f models.FilterState) []models.Incident
	Offline() bool
	PushConnected() bool
	OnChange(fn func()) (cancel func())
}

type incidentService struct {
	gateway   Gateway
	bridge    EventBridge
	cache     SnapshotCache
	publisher webhook.AlertPublisher
	logger    *logrus.Logger
	metrics   *metrics.Metrics

	mu         sync.RWMutex
	incidents  []models.Incident
	stats      models.DashboardStats
	offline    bool
	appliedGen uint64
	nextGen    atomic.Uint64

	subsMu    sync.Mutex
	subs      []push.Subscription
	listeners map[int]func()
	listenerN int
}

// NewIncidentService создает ядро синхронизации. cache и publisher могут быть nil.
func NewIncidentService(gw Gateway, bridge EventBridge, cache SnapshotCache, publisher webhook.AlertPublisher, logger *logrus.Logger, m *metrics.Metrics) IncidentService {
	return &incidentService{
		gateway:   gw,
		bridge:    bridge,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		incidents: []models.Incident{},
		stats:     models.ComputeStats(nil),
		listeners: make(map[int]func()),
	}
}

// Start подписывается на push-события, загружает срез и подключает push-канал, если бэкенд доступен
func (s *incidentService) Start(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Start",
	})

	s.subsMu.Lock()
	s.subs = append(s.subs,
		s.bridge.Subscribe(push.EventNewIncident, s.handleEvent),
		s.bridge.Subscribe(push.EventIncidentUpdated, s.handleEvent),
		s.bridge.Subscribe(push.EventIncidentVerified, s.handleEvent),
		s.bridge.Subscribe(push.EventIncidentDeleted, s.handleEvent),
	)
	s.subsMu.Unlock()

	var loadErr error
	if err := s.Reload(ctx); err != nil {
		log.WithError(err).Warn("Initial snapshot load failed, trying offline cache")
		if !s.loadOffline(ctx) {
			loadErr = err
		}
	}

	if s.gateway.Health(ctx) {
		s.bridge.Connect()
	} else {
		log.Warn("Backend is unreachable, push channel is not connected")
	}
	return loadErr
}

// Stop снимает подписки и закрывает push-канал
func (s *incidentService) Stop() {
	s.subsMu.Lock()
	subs := s.subs
	s.subs = nil
	s.subsMu.Unlock()

	for _, sub := range subs {
		s.bridge.Unsubscribe(sub)
	}
	s.bridge.Disconnect()
	s.logger.WithField("service", "incident").Info("Incident synchronization stopped")
}

// Reload заново загружает полный срез и заменяет коллекцию.
// Ответ, полученный позже более нового ответа, отбрасывается.
func (s *incidentService) Reload(ctx context.Context) error {
	gen := s.nextGen.Add(1)
	log := s.logger.WithFields(logrus.Fields{
		"service":    "incident",
		"method":     "Reload",
		"generation": gen,
	})
	log.Debug("Reloading dashboard snapshot")

	snapshot, err := s.gateway.FetchSnapshot(ctx)
	if err != nil {
		s.metrics.IncReload("error")
		log.WithError(err).Error("Failed to fetch dashboard snapshot")
		return fmt.Errorf("service: could not reload dashboard: %w", err)
	}

	wasOffline := s.Offline()
	if !s.applySnapshot(snapshot, gen, false) {
		s.metrics.IncReload("stale")
		log.Info("Discarding stale snapshot response")
		return nil
	}
	s.metrics.IncReload("success")

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(ctx, snapshot); err != nil {
			log.WithError(err).Warn("Failed to save snapshot to cache")
		}
	}
	if wasOffline {
		log.Info("Backend is reachable again, connecting push channel")
		s.bridge.Connect()
	}

	log.WithField("count", len(snapshot.Incidents)).Info("Dashboard snapshot applied")
	s.notify()
	return nil
}

func (s *incidentService) loadOffline(ctx context.Context) bool {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "loadOffline",
	})
	if s.cache == nil {
		return false
	}
	snapshot, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load snapshot from cache")
		return false
	}
	if snapshot == nil {
		log.Info("No cached snapshot available")
		return false
	}
	if !s.applySnapshot(snapshot, 0, true) {
		return false
	}
	s.metrics.IncReload("offline")
	log.WithField("count", len(snapshot.Incidents)).Warn("Serving cached snapshot in offline mode")
	s.notify()
	return true
}

// applySnapshot заменяет коллекцию целиком. Архивные записи и повторные id отбрасываются.
func (s *incidentService) applySnapshot(snapshot *models.Snapshot, gen uint64, offline bool) bool {
	incidents := make([]models.Incident, 0, len(snapshot.Incidents))
	seen := make(map[string]struct{}, len(snapshot.Incidents))
	for _, inc := range snapshot.Incidents {
		if inc.Archived || inc.ID == "" {
			continue
		}
		if _, dup := seen[inc.ID]; dup {
			continue
		}
		seen[inc.ID] = struct{}{}
		incidents = append(incidents, inc.Clone())
	}

	stats := models.ComputeStats(incidents)
	if snapshot.Stats != nil {
		stats = *snapshot.Stats
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if offline {
		// кеш не должен затирать данные, уже полученные от бэкенда
		if s.appliedGen > 0 {
			return false
		}
	} else {
		if gen < s.appliedGen {
			return false
		}
		s.appliedGen = gen
	}
	s.incidents = incidents
	s.stats = stats
	s.offline = offline
	s.metrics.SetIncidents(len(incidents))
	return true
}

func (s *incidentService) handleEvent(ev push.Event) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "handleEvent",
		"event":   ev.EventName(),
	})

	var changed bool
	switch e := ev.(type) {
	case push.NewIncident:
		var created bool
		changed, created = s.applyNewIncident(e.Incident)
		if created && e.Incident.Urgency == models.UrgencyHigh {
			s.publishAlert(e.Incident)
		}
	case push.IncidentUpdated:
		changed = s.applyUpdate(e)
	case push.IncidentVerified:
		changed = s.mutate(e.ID, func(inc *models.Incident) {
			verified := true
			inc.Verified = &verified
		})
	case push.IncidentDeleted:
		changed = s.remove(e.ID)
	default:
		log.Debug("Ignoring unsupported event type")
		return
	}

	if changed {
		log.Debug("Push event applied")
		s.notify()
	}
}

// applyNewIncident добавляет запись в начало коллекции либо заменяет существующую с тем же id
func (s *incidentService) applyNewIncident(inc models.Incident) (changed, created bool) {
	if inc.Archived {
		return s.remove(inc.ID), false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(inc.ID); i >= 0 {
		s.incidents[i] = inc.Clone()
	} else {
		s.incidents = append([]models.Incident{inc.Clone()}, s.incidents...)
		created = true
	}
	s.stats = models.ComputeStats(s.incidents)
	s.metrics.SetIncidents(len(s.incidents))
	return true, created
}

func (s *incidentService) applyUpdate(e push.IncidentUpdated) bool {
	if e.Archived {
		return s.remove(e.IncidentID)
	}
	if e.Incident != nil {
		replacement := e.Incident.Clone()
		return s.mutate(e.IncidentID, func(inc *models.Incident) {
			*inc = replacement
		})
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "applyUpdate",
		"incident_id": e.IncidentID,
	})
	var mergeErr error
	changed := s.mutate(e.IncidentID, func(inc *models.Incident) {
		merged, err := mergeIncident(*inc, e.Update)
		if err != nil {
			mergeErr = err
			return
		}
		*inc = merged
	})
	if mergeErr != nil {
		log.WithError(mergeErr).Warn("Failed to merge incident update")
		return false
	}
	return changed
}

// mergeIncident накладывает частичное обновление на запись. Поля вне update сохраняются.
func mergeIncident(inc models.Incident, update map[string]json.RawMessage) (models.Incident, error) {
	raw, err := json.Marshal(inc)
	if err != nil {
		return inc, fmt.Errorf("service: could not encode incident: %w", err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return inc, fmt.Errorf("service: could not decode incident: %w", err)
	}
	for k, v := range update {
		fields[k] = v
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return inc, fmt.Errorf("service: could not encode merged incident: %w", err)
	}
	var merged models.Incident
	if err := json.Unmarshal(raw, &merged); err != nil {
		return inc, fmt.Errorf("service: could not apply update: %w", err)
	}
	merged.ID = inc.ID
	return merged, nil
}

// mutate изменяет запись на месте. Отсутствующий id игнорируется.
func (s *incidentService) mutate(id string, fn func(inc *models.Incident)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	updated := s.incidents[i].Clone()
	fn(&updated)
	s.incidents[i] = updated
	s.refreshCounts()
	return true
}

func (s *incidentService) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.incidents = append(s.incidents[:i:i], s.incidents[i+1:]...)
	s.refreshCounts()
	s.metrics.SetIncidents(len(s.incidents))
	return true
}

// refreshCounts пересчитывает total и high_urgency, не трогая резервные эвристики
func (s *incidentService) refreshCounts() {
	s.stats.TotalIncidents = len(s.incidents)
	s.stats.HighUrgency = models.CountHighUrgency(s.incidents)
}

func (s *incidentService) indexOf(id string) int {
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *incidentService) publishAlert(inc models.Incident) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), alertPublishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, webhook.NewAlertEvent(inc, time.Now())); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":     "incident",
			"method":      "publishAlert",
			"incident_id": inc.ID,
		}).WithError(err).Warn("Failed to publish high urgency alert")
	}
}

// Resolve выполняет update-status(resolved), затем verify.
// При ошибке любого шага локальная коллекция не меняется, отката первого шага нет.
func (s *incidentService) Resolve(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "Resolve",
		"incident_id": id,
	})
	log.Info("Resolving incident")

	if _, err := s.gateway.UpdateStatus(ctx, id, models.StatusResolved); err != nil {
		log.WithError(err).Error("Failed to mark incident as resolved")
		return fmt.Errorf("service: could not resolve incident %s: %w", id, err)
	}
	if _, err := s.gateway.Verify(ctx, id); err != nil {
		log.WithError(err).Error("Failed to verify resolved incident")
		return fmt.Errorf("service: could not verify resolved incident %s: %w", id, err)
	}

	log.Info("Incident resolved successfully")
	s.reloadIfPushDown(ctx)
	return nil
}

// Verify подтверждает инцидент на бэкенде. Локальное состояние обновит push-событие.
func (s *incidentService) Verify(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "Verify",
		"incident_id": id,
	})
	if _, err := s.gateway.Verify(ctx, id); err != nil {
		log.WithError(err).Error("Failed to verify incident")
		return fmt.Errorf("service: could not verify incident %s: %w", id, err)
	}
	log.Info("Incident verified successfully")
	s.reloadIfPushDown(ctx)
	return nil
}

// UpdateStatus меняет статус инцидента на бэкенде
func (s *incidentService) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateStatus",
		"incident_id": id,
		"status":      status,
	})
	if _, err := s.gateway.UpdateStatus(ctx, id, status); err != nil {
		log.WithError(err).Error("Failed to update incident status")
		return fmt.Errorf("service: could not update status of incident %s: %w", id, err)
	}
	log.Info("Incident status updated successfully")
	s.reloadIfPushDown(ctx)
	return nil
}

// reloadIfPushDown подменяет недоступный push-канал ручной перезагрузкой
func (s *incidentService) reloadIfPushDown(ctx context.Context) {
	if s.bridge.Connected() {
		return
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.WithField("service", "incident").WithError(err).Warn("Reload after mutation failed")
	}
}

// Upload отправляет файлы на анализ. Несколько изображений уходят одним пакетом,
// смешанный набор загружается по одному. После любой успешной загрузки срез перезагружается.
func (s *incidentService) Upload(ctx context.Context, files []models.Upload) (*models.UploadReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Upload",
		"files":   len(files),
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("service: nothing to upload: %w", gateway.ErrUnsupportedInput)
	}

	report := &models.UploadReport{Created: []models.Incident{}, Duplicates: []models.AnalysisResult{}}
	if len(files) > 1 && allImages(files) {
		batch, err := s.gateway.BatchAnalyze(ctx, files)
		if err != nil {
			log.WithError(err).Error("Batch upload failed")
			return nil, fmt.Errorf("service: could not upload batch: %w", err)
		}
		report.Created = append(report.Created, batch.Results...)
		report.Failed = batch.Failed
	} else {
		for _, f := range files {
			result, err := s.gateway.AnalyzeFile(ctx, f)
			if err != nil {
				if len(files) == 1 {
					log.WithError(err).Error("Upload failed")
					return nil, fmt.Errorf("service: could not upload %s: %w", f.Filename, err)
				}
				log.WithError(err).WithField("filename", f.Filename).Warn("Skipping file that failed to upload")
				report.Failed++
				continue
			}
			if result.Duplicate {
				report.Duplicates = append(report.Duplicates, *result)
			} else if result.Incident != nil {
				report.Created = append(report.Created, *result.Incident)
			}
		}
	}

	if len(report.Created)+len(report.Duplicates) > 0 {
		if err := s.Reload(ctx); err != nil {
			log.WithError(err).Warn("Reload after upload failed")
		}
	}
	log.WithFields(logrus.Fields{
		"created":    len(report.Created),
		"duplicates": len(report.Duplicates),
		"failed":     report.Failed,
	}).Info("Upload completed")
	return report, nil
}

// AnalyzeText создает инцидент из текста и перезагружает срез
func (s *incidentService) AnalyzeText(ctx context.Context, text string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "AnalyzeText",
	})
	incident, err := s.gateway.AnalyzeText(ctx, text)
	if err != nil {
		log.WithError(err).Error("Text analysis failed")
		return nil, fmt.Errorf("service: could not analyze text: %w", err)
	}
	if err := s.Reload(ctx); err != nil {
		log.WithError(err).Warn("Reload after text analysis failed")
	}
	return incident, nil
}

// Incidents возвращает копию канонической коллекции
func (s *incidentService) Incidents() []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Incident, len(s.incidents))
	for i := range s.incidents {
		out[i] = s.incidents[i].Clone()
	}
	return out
}

// Incident возвращает запись по id
func (s *incidentService) Incident(id string) (*models.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("service: incident %s: %w", id, ErrIncidentNotFound)
	}
	inc := s.incidents[i].Clone()
	return &inc, nil
}

func (s *incidentService) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Filtered строит проекцию коллекции по запросу и фильтрам
func (s *incidentService) Filtered(query string, f models.FilterState) []models.Incident {
	return Filter(s.Incidents(), query, f)
}

// Offline сообщает, что коллекция восстановлена из кеша и бэкенд еще не ответил
func (s *incidentService) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

func (s *incidentService) PushConnected() bool {
	return s.bridge.Connected()
}

// OnChange регистрирует слушателя изменений коллекции. Возвращает функцию отписки.
func (s *incidentService) OnChange(fn func()) func() {
	s.subsMu.Lock()
	id := s.listenerN
	s.listenerN++
	s.listeners[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.listeners, id)
		s.subsMu.Unlock()
	}
}

func (s *incidentService) notify() {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func allImages(files []models.Upload) bool {
	for _, f := range files {
		if !gateway.IsImage(f) {
			return false
		}
	}
	return true
}
