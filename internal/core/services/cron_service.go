package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"syndiceasy/internal/adapters/persistence/repositories"
)

// Read notifications older than this are purged from the store. The
// live 5 second removal only covers open channels; this sweep catches
// rows marked read while the user was offline.
const readNotificationRetention = 24 * time.Hour

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	resetRepo        repositories.PasswordResetRepository
	notificationRepo repositories.NotificationRepository
	events           *EventService
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	resetRepo repositories.PasswordResetRepository,
	notificationRepo repositories.NotificationRepository,
	events *EventService,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		resetRepo:        resetRepo,
		notificationRepo: notificationRepo,
		events:           events,
	}
}

// Start registers and launches all jobs
func (s *CronService) Start() {
	// Expired refresh tokens and reset tokens: hourly
	s.cron.AddFunc("0 * * * *", s.cleanupTokens)

	// Read notifications past retention: daily at 03:00
	s.cron.AddFunc("0 3 * * *", s.purgeReadNotifications)

	// Event reminders: daily at 08:30
	s.cron.AddFunc("30 8 * * *", s.sendEventReminders)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop halts the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) cleanupTokens() {
	ctx := context.Background()
	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup error: %v", err)
	}
	if err := s.resetRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Password reset cleanup error: %v", err)
	}
}

func (s *CronService) purgeReadNotifications() {
	cutoff := time.Now().Add(-readNotificationRetention)
	if err := s.notificationRepo.DeleteReadOlderThan(context.Background(), cutoff); err != nil {
		log.Printf("❌ Notification purge error: %v", err)
	}
}

func (s *CronService) sendEventReminders() {
	if err := s.events.SendReminders(context.Background()); err != nil {
		log.Printf("❌ Event reminder error: %v", err)
	}
}
