package scheduler

import (
	"context"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
)

// MoviePayload is the movie snapshot delivered to the notification target
// when the schedule fires.
type MoviePayload struct {
	Title       string `json:"title"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	LinkPreview string `json:"linkPreview,omitempty"`
	ImagePoster string `json:"imagePoster,omitempty"`
}

// EmailPayload is the input handed to the scheduled target.
type EmailPayload struct {
	To      string        `json:"to"`
	Subject string        `json:"subject,omitempty"`
	Message string        `json:"message,omitempty"`
	Movie   *MoviePayload `json:"movie,omitempty"`
}

// Scheduler registers one-shot, time-triggered email notifications with an
// external scheduling service and returns an opaque handle for later
// cancellation.
type Scheduler interface {
	// CreateEmailSchedule registers a notification firing at the given time
	// and returns the schedule handle.
	CreateEmailSchedule(ctx context.Context, at time.Time, payload EmailPayload) (string, error)

	// DeleteEmailSchedule cancels a previously registered schedule.
	// Deleting a handle that no longer exists is not an error.
	DeleteEmailSchedule(ctx context.Context, name string) error
}

// Config holds scheduler configuration.
type Config struct {
	Enabled   bool
	Region    string
	TargetArn string // ARN of the Lambda that sends the release email
	RoleArn   string // role the scheduler assumes to invoke the target
}

// NewScheduler returns the EventBridge implementation, or the in-process
// one sending through the given mailer when EventBridge is not configured.
func NewScheduler(cfg Config, mail mailer.Mailer) (Scheduler, error) {
	if !cfg.Enabled {
		return NewLocalScheduler(mail), nil
	}
	return NewEventBridgeScheduler(cfg)
}
