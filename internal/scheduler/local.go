package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
)

// LocalScheduler delivers scheduled emails from an in-process timer. It is
// the fallback when EventBridge is not configured; schedules do not survive
// a restart.
type LocalScheduler struct {
	mail mailer.Mailer

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewLocalScheduler(mail mailer.Mailer) *LocalScheduler {
	return &LocalScheduler{
		mail:   mail,
		timers: make(map[string]*time.Timer),
	}
}

func (s *LocalScheduler) CreateEmailSchedule(ctx context.Context, at time.Time, payload EmailPayload) (string, error) {
	name := scheduleName()

	s.mu.Lock()
	s.timers[name] = time.AfterFunc(time.Until(at), func() {
		s.mu.Lock()
		delete(s.timers, name)
		s.mu.Unlock()
		s.deliver(name, payload)
	})
	s.mu.Unlock()

	logger.Info("Release schedule registered locally", "schedule", name, "at", at.UTC().Format(time.RFC3339))
	return name, nil
}

func (s *LocalScheduler) DeleteEmailSchedule(ctx context.Context, name string) error {
	s.mu.Lock()
	timer, ok := s.timers[name]
	if ok {
		timer.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()

	if ok {
		logger.Info("Release schedule removed", "schedule", name)
	}
	return nil
}

// deliver renders and sends the email the schedule carries.
func (s *LocalScheduler) deliver(name string, payload EmailPayload) {
	email, err := s.buildEmail(payload)
	if err != nil {
		logger.Warn("Failed to render scheduled email", "schedule", name, "error", err.Error())
		return
	}
	if err := s.mail.Send(email); err != nil {
		logger.Warn("Failed to send scheduled email", "schedule", name, "error", err.Error())
		return
	}
	logger.Info("Scheduled email delivered", "schedule", name, "to", payload.To)
}

func (s *LocalScheduler) buildEmail(payload EmailPayload) (*mailer.Email, error) {
	if payload.Movie != nil {
		return mailer.ReleaseEmail(payload.To, mailer.ReleaseEmailData{
			Title:       payload.Movie.Title,
			Tagline:     payload.Movie.Tagline,
			Description: payload.Movie.Description,
			ImagePoster: payload.Movie.ImagePoster,
			LinkPreview: payload.Movie.LinkPreview,
		})
	}
	return &mailer.Email{
		To:      []string{payload.To},
		Subject: payload.Subject,
		Body:    payload.Message,
	}, nil
}
