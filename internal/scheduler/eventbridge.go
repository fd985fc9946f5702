package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	awsscheduler "github.com/aws/aws-sdk-go/service/scheduler"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
)

// EventBridgeScheduler implements Scheduler on Amazon EventBridge Scheduler.
type EventBridgeScheduler struct {
	client    *awsscheduler.Scheduler
	targetArn string
	roleArn   string
}

func NewEventBridgeScheduler(cfg Config) (*EventBridgeScheduler, error) {
	if cfg.TargetArn == "" || cfg.RoleArn == "" {
		return nil, fmt.Errorf("target_arn and role_arn are required for the EventBridge scheduler")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler session: %w", err)
	}

	return &EventBridgeScheduler{
		client:    awsscheduler.New(sess),
		targetArn: cfg.TargetArn,
		roleArn:   cfg.RoleArn,
	}, nil
}

func (s *EventBridgeScheduler) CreateEmailSchedule(ctx context.Context, at time.Time, payload EmailPayload) (string, error) {
	name := scheduleName()

	input, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schedule payload: %w", err)
	}

	// EventBridge "at()" expressions take UTC without fractional seconds.
	isoDate := at.UTC().Format("2006-01-02T15:04:05")

	_, err = s.client.CreateScheduleWithContext(ctx, &awsscheduler.CreateScheduleInput{
		Name:               aws.String(name),
		Description:        aws.String("Movie release notification"),
		ScheduleExpression: aws.String(fmt.Sprintf("at(%s)", isoDate)),
		FlexibleTimeWindow: &awsscheduler.FlexibleTimeWindow{
			Mode: aws.String(awsscheduler.FlexibleTimeWindowModeOff),
		},
		Target: &awsscheduler.Target{
			Arn:     aws.String(s.targetArn),
			RoleArn: aws.String(s.roleArn),
			Input:   aws.String(string(input)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create schedule: %w", err)
	}

	logger.Info("Release schedule created", "schedule", name, "at", isoDate)
	return name, nil
}

func (s *EventBridgeScheduler) DeleteEmailSchedule(ctx context.Context, name string) error {
	_, err := s.client.DeleteScheduleWithContext(ctx, &awsscheduler.DeleteScheduleInput{
		Name: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == awsscheduler.ErrCodeResourceNotFoundException {
			logger.Debug("Release schedule already gone", "schedule", name)
			return nil
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	logger.Info("Release schedule removed", "schedule", name)
	return nil
}

// scheduleName issues handles of the form movie-<unix millis>.
func scheduleName() string {
	return fmt.Sprintf("movie-%d", time.Now().UnixMilli())
}
