// Package notify alerts the sales team when a visitor asks for a
// consultation. Delivery is best effort and never blocks the conversation.
package notify

import (
	"context"
	"fmt"
	"strings"

	"estate-assistant/internal/common/config"
	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/engine/respond"
	"estate-assistant/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Service sends consultation alerts over the enabled channels.
type Service struct {
	cfg       config.IntegrationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// NewService creates a notification service. Either client may be nil when
// its channel is disabled in config.
func NewService(cfg config.IntegrationConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *Service {
	return &Service{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// ConsultationRequested notifies the team that a visitor scheduled a
// consultation, including whatever the conversation has gathered so far.
// Channel failures are logged, never returned.
func (s *Service) ConsultationRequested(ctx context.Context, sessionID string, cc models.ConversationContext) {
	subject := fmt.Sprintf("New consultation request (session %s)", sessionID)
	body := buildSummary(sessionID, cc)

	if s.cfg.AWS.SES.Enabled && s.sesClient != nil {
		if err := s.sendEmail(ctx, subject, body); err != nil {
			s.logger.WithError(errors.NewNotificationSendFailedError("email", err)).Error(
				"email send failed", map[string]interface{}{"sessionId": sessionID})
		}
	}

	if s.cfg.AWS.SNS.Enabled && s.snsClient != nil {
		if err := s.sendSMS(ctx, body); err != nil {
			s.logger.WithError(errors.NewNotificationSendFailedError("sms", err)).Error(
				"SMS send failed", map[string]interface{}{"sessionId": sessionID})
		}
	}
}

func buildSummary(sessionID string, cc models.ConversationContext) string {
	lines := []string{fmt.Sprintf("Consultation requested in session %s.", sessionID)}
	if cc.Budget != nil {
		lines = append(lines, "Budget: "+respond.FormatAmount(cc.Budget.ValueInBaseUnits))
	}
	if cc.Timeline != nil {
		lines = append(lines, "Timeline: "+respond.FormatDays(cc.Timeline.ValueInDays))
	}
	if cc.Location != "" {
		lines = append(lines, "Location: "+cc.Location)
	}
	return strings.Join(lines, "\n")
}

func (s *Service) sendEmail(ctx context.Context, subject, body string) error {
	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{s.cfg.AWS.SES.TeamEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.cfg.AWS.SES.FromEmail),
	})
	return err
}

func (s *Service) sendSMS(ctx context.Context, message string) error {
	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(s.cfg.AWS.SNS.TeamPhone),
		Message:     aws.String(message),
	})
	return err
}
