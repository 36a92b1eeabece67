package services

import (
	"context"
	"time"

	"salonpro-dashboard/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DraftMaxAge is how long an untouched booking draft is kept.
const DraftMaxAge = 24 * time.Hour

// Scheduler runs the reminder and housekeeping jobs.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	reminders *ReminderService
}

func NewScheduler(db *gorm.DB, reminders *ReminderService, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		db:        db,
		reminders: reminders,
	}
}

// Start registers the jobs and starts the cron loop. A nil reminder service
// only schedules cleanup.
func (s *Scheduler) Start(reminderSpec, cleanupSpec string) error {
	if s.reminders != nil {
		if _, err := s.cron.AddFunc(reminderSpec, func() {
			s.reminders.SendDailyReminders(context.Background())
		}); err != nil {
			return err
		}
	}
	if _, err := s.cron.AddFunc(cleanupSpec, func() {
		sessions, drafts, err := Cleanup(s.db, time.Now())
		if err != nil {
			zap.S().Errorf("cleanup failed: %v", err)
			return
		}
		zap.S().Infof("cleanup removed %d sessions and %d drafts", sessions, drafts)
	}); err != nil {
		return err
	}
	s.cron.Start()
	zap.S().Info("Scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Cleanup deletes expired sessions and stale drafts.
func Cleanup(db *gorm.DB, now time.Time) (int64, int64, error) {
	sessions := db.Where("expires_at <= ?", now).Delete(&models.Session{})
	if sessions.Error != nil {
		return 0, 0, sessions.Error
	}
	drafts := db.Where("updated_at < ?", now.Add(-DraftMaxAge)).Delete(&models.BookingDraft{})
	if drafts.Error != nil {
		return sessions.RowsAffected, 0, drafts.Error
	}
	return sessions.RowsAffected, drafts.RowsAffected, nil
}
