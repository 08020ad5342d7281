package services

import (
	"context"
	"log"
	"time"

	"assettrack/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReminderService scans for overdue assignments every morning and logs
// them for follow-up. It also prunes expired refresh tokens nightly.
type ReminderService struct {
	assignmentRepo repositories.AssignmentRepository
	tokenRepo      repositories.RefreshTokenRepository
	cron           *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(assignmentRepo repositories.AssignmentRepository, tokenRepo repositories.RefreshTokenRepository) *ReminderService {
	return &ReminderService{
		assignmentRepo: assignmentRepo,
		tokenRepo:      tokenRepo,
		cron:           cron.New(),
	}
}

// Start schedules the background jobs
func (s *ReminderService) Start() {
	// Overdue scan at 08:30 daily
	s.cron.AddFunc("30 8 * * *", s.scanOverdue)
	// Token cleanup at 03:00 daily
	s.cron.AddFunc("0 3 * * *", s.cleanupTokens)
	s.cron.Start()
	log.Println("Reminder service started")
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Reminder service stopped")
}

func (s *ReminderService) scanOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	overdue, err := s.assignmentRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue scan error: %v", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	log.Printf("Overdue scan: %d assignment(s) past expected return", len(overdue))
	for _, a := range overdue {
		product := "?"
		employee := "?"
		if a.Product != nil {
			product = a.Product.Name
		}
		if a.Employee != nil {
			employee = a.Employee.Name
		}
		log.Printf("   Overdue: %s held by %s since %s (expected %s)",
			product, employee,
			a.AssignedAt.Format("2006-01-02"),
			a.ExpectedReturnAt.Format("2006-01-02"))
	}
}

func (s *ReminderService) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Token cleanup error: %v", err)
	}
}
