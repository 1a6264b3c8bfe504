package notify

import (
	"context"
	stderrors "errors"
	"testing"

	commonaws "estate-assistant/internal/common/aws"
	"estate-assistant/internal/common/config"
	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/common/logger"
	"estate-assistant/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The server wires the common AWS wrappers into these interfaces; keep the
// signatures in lockstep.
var (
	_ SESService = (*commonaws.SESClient)(nil)
	_ SNSService = (*commonaws.SNSClient)(nil)
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func testConfig(emailEnabled, smsEnabled bool) config.IntegrationConfig {
	var cfg config.IntegrationConfig
	cfg.AWS.Region = "ap-south-1"
	cfg.AWS.SES.Enabled = emailEnabled
	cfg.AWS.SES.FromEmail = "assistant@example.com"
	cfg.AWS.SES.TeamEmail = "sales@example.com"
	cfg.AWS.SNS.Enabled = smsEnabled
	cfg.AWS.SNS.TeamPhone = "+911234567890"
	return cfg
}

func TestConsultationRequested_EmailIncludesGatheredContext(t *testing.T) {
	sesMock := &mockSES{}
	svc := NewService(testConfig(true, false), logger.NewNoOpLogger(), sesMock, nil)

	cc := models.ConversationContext{
		Budget:   &models.MonetaryAmount{ValueInBaseUnits: 4_000_000},
		Timeline: &models.Duration{ValueInDays: 180},
		Location: "Whitefield",
	}
	svc.ConsultationRequested(context.Background(), "session-001", cc)

	require.Len(t, sesMock.inputs, 1)
	input := sesMock.inputs[0]
	assert.Equal(t, "assistant@example.com", *input.Source)
	assert.Equal(t, []string{"sales@example.com"}, input.Destination.ToAddresses)

	body := *input.Message.Body.Text.Data
	assert.Contains(t, body, "session-001")
	assert.Contains(t, body, "₹40.0L")
	assert.Contains(t, body, "180 day(s)")
	assert.Contains(t, body, "Whitefield")
}

func TestConsultationRequested_EmptyContextStillNotifies(t *testing.T) {
	sesMock := &mockSES{}
	svc := NewService(testConfig(true, false), logger.NewNoOpLogger(), sesMock, nil)

	svc.ConsultationRequested(context.Background(), "session-002", models.ConversationContext{})

	require.Len(t, sesMock.inputs, 1)
	body := *sesMock.inputs[0].Message.Body.Text.Data
	assert.Contains(t, body, "session-002")
	assert.NotContains(t, body, "Budget")
	assert.NotContains(t, body, "Location")
}

func TestConsultationRequested_SMSChannel(t *testing.T) {
	snsMock := &mockSNS{}
	svc := NewService(testConfig(false, true), logger.NewNoOpLogger(), nil, snsMock)

	svc.ConsultationRequested(context.Background(), "session-003", models.ConversationContext{
		Location: "Pune",
	})

	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+911234567890", *snsMock.inputs[0].PhoneNumber)
	assert.Contains(t, *snsMock.inputs[0].Message, "Pune")
}

func TestConsultationRequested_DisabledChannelsSendNothing(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	svc := NewService(testConfig(false, false), logger.NewNoOpLogger(), sesMock, snsMock)

	svc.ConsultationRequested(context.Background(), "session-004", models.ConversationContext{})

	assert.Empty(t, sesMock.inputs)
	assert.Empty(t, snsMock.inputs)
}

func TestConsultationRequested_SendFailureDoesNotPanic(t *testing.T) {
	sesMock := &mockSES{err: stderrors.New("throttled")}
	snsMock := &mockSNS{err: stderrors.New("throttled")}
	svc := NewService(testConfig(true, true), logger.NewNoOpLogger(), sesMock, snsMock)

	svc.ConsultationRequested(context.Background(), "session-005", models.ConversationContext{})

	assert.Len(t, sesMock.inputs, 1)
	assert.Len(t, snsMock.inputs, 1)
}

func TestConsultationRequested_SendFailureLogsStandardError(t *testing.T) {
	capture := newCaptureLogger()
	sesMock := &mockSES{err: stderrors.New("throttled")}
	svc := NewService(testConfig(true, false), capture, sesMock, nil)

	svc.ConsultationRequested(context.Background(), "session-006", models.ConversationContext{})

	require.Len(t, capture.errs, 1)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(capture.errs[0], &stdErr))
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "email")
}

// captureLogger records errors handed to WithError so tests can inspect the
// best-effort failure path.
type captureLogger struct {
	errs []error
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{}
}

func (l *captureLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *captureLogger) Info(msg string, fields map[string]interface{})  {}
func (l *captureLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *captureLogger) Error(msg string, fields map[string]interface{}) {}

func (l *captureLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return l
}

func (l *captureLogger) WithError(err error) logger.Logger {
	l.errs = append(l.errs, err)
	return l
}
