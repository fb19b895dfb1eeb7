package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/narrvoca/internal/database"
)

// Default window for review reminders (local hours, inclusive)
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Notifier interface for sending review reminders
type Notifier interface {
	SendReminder(userID string, dueCount int) error
}

// Scheduler periodically checks for vocabulary reviews coming due and
// notifies the affected users
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	mastery   *database.MasteryRepository
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		mastery:   database.NewMasteryRepository(),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders notifies every user with due reviews, skipping
// night hours
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()
	startHour := envHour("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := envHour("REMINDER_END_HOUR", DefaultReminderEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	due, err := s.mastery.GetUsersWithDueReviews()
	if err != nil {
		log.Printf("Error getting users with due reviews: %v", err)
		return
	}

	for _, entry := range due {
		if err := s.notifier.SendReminder(entry.UserID, entry.Count); err != nil {
			log.Printf("Error sending reminder to user %s: %v", entry.UserID, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(userID string) error {
	due, err := s.mastery.GetDueReviews(userID)
	if err != nil {
		return err
	}
	if len(due) > 0 {
		return s.notifier.SendReminder(userID, len(due))
	}
	return nil
}

func envHour(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
