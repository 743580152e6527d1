package service

import (
	"context"
	"fmt"

	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// AnalysisService определяет контракт запросов к ассистенту и аналитике бэкенда.
// Эти операции не меняют каноническую коллекцию.
type AnalysisService interface {
	Chat(ctx context.Context, message string) (string, error)
	Query(ctx context.Context, text string) ([]models.Incident, error)
	AnalyzeSocialPost(ctx context.Context, text string) (*models.SocialMediaAnalysis, error)
	AnalyzeSatellite(ctx context.Context, req models.SatelliteRequest) (*models.SatelliteAnalysis, error)
	BackendHealthy(ctx context.Context) bool
}

type analysisService struct {
	gateway Gateway
	logger  *logrus.Logger
}

func NewAnalysisService(gw Gateway, logger *logrus.Logger) AnalysisService {
	return &analysisService{
		gateway: gw,
		logger:  logger,
	}
}

// Chat отправляет сообщение ассистенту
func (s *analysisService) Chat(ctx context.Context, message string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analysis",
		"method":  "Chat",
	})
	answer, err := s.gateway.Chat(ctx, message)
	if err != nil {
		log.WithError(err).Error("Chat request failed")
		return "", fmt.Errorf("service: chat failed: %w", err)
	}
	return answer, nil
}

// Query выполняет семантический поиск
func (s *analysisService) Query(ctx context.Context, text string) ([]models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analysis",
		"method":  "Query",
	})
	results, err := s.gateway.Query(ctx, text)
	if err != nil {
		log.WithError(err).Error("Semantic query failed")
		return nil, fmt.Errorf("service: query failed: %w", err)
	}
	log.WithField("count", len(results)).Info("Semantic query completed")
	return results, nil
}

func (s *analysisService) AnalyzeSocialPost(ctx context.Context, text string) (*models.SocialMediaAnalysis, error) {
	analysis, err := s.gateway.AnalyzeSocialPost(ctx, text)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "analysis",
			"method":  "AnalyzeSocialPost",
		}).WithError(err).Error("Social post analysis failed")
		return nil, fmt.Errorf("service: social analysis failed: %w", err)
	}
	return analysis, nil
}

func (s *analysisService) AnalyzeSatellite(ctx context.Context, req models.SatelliteRequest) (*models.SatelliteAnalysis, error) {
	analysis, err := s.gateway.AnalyzeSatellite(ctx, req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "analysis",
			"method":    "AnalyzeSatellite",
			"radius_km": req.RadiusKM,
		}).WithError(err).Error("Satellite analysis failed")
		return nil, fmt.Errorf("service: satellite analysis failed: %w", err)
	}
	return analysis, nil
}

// BackendHealthy не возвращает ошибок, недоступность бэкенда - это просто false
func (s *analysisService) BackendHealthy(ctx context.Context) bool {
	return s.gateway.Health(ctx)
}
