package utils

import (
	"context"
	"errors"
	"fmt"

	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/redis/go-redis/v9"
)

// ErrMailNotConfigured is returned when the SES env vars are missing.
var ErrMailNotConfigured = errors.New("mail service not configured")

// MailConfigured reports whether the SES env vars are present. Endpoints
// that must not commit work they cannot notify about check this before
// writing anything.
func MailConfigured() bool {
	return config.ENV.SES_REGION != "" && config.ENV.SES_VERIFIED_SENDER != ""
}

type EmailStatus struct {
	Sent     bool    `json:"sent"`
	Cooldown float64 `json:"cooldown"`
}

// SendReportNotification mails the moderation inbox about a new report.
// Rate limited per reporter with a redis cooldown key.
func SendReportNotification(sesCli *ses.Client, redisCli *redis.Client, ctx context.Context, report *schemas.Report, reporterEmail string) (*EmailStatus, error) {

	if !MailConfigured() {
		return nil, ErrMailNotConfigured
	}

	cooldownKey := "email:report:cooldown:" + report.UserId.Hex()

	// check if cooldown has passed
	ttl, err := redisCli.TTL(ctx, cooldownKey).Result()
	if err != nil {
		return nil, fmt.Errorf("in SendReportNotification:\n%w", err)
	}
	if ttl > 0 {
		return &EmailStatus{
			Sent:     false,
			Cooldown: ttl.Seconds(),
		}, nil
	}

	// set cooldown
	cooldown := config.REPORT_EMAIL_COOLDOWN
	_, err = redisCli.Set(ctx, cooldownKey, "1", cooldown).Result()
	if err != nil {
		return nil, fmt.Errorf("in SendReportNotification:\n%w", err)
	}

	subject := fmt.Sprintf("[%s/%s] New report: %s", report.Type, report.Priority, report.Title)
	html := fmt.Sprintf(`
		<!DOCTYPE html>
		<html lang="en">
		<head>
			<meta charset="UTF-8" />
		</head>
		<body style="margin: 0; padding: 0; background-color: #18181b; font-family: sans-serif;">
			<table width="100%%" cellspacing="0" cellpadding="0">
				<tr>
					<td align="center" style="padding: 40px 20px;">
						<table width="600" style="background-color: #27272a; border-radius: 8px;">
							<tr>
								<td valign="top" style="padding: 32px;">
									<div style="color: #FFF; font-size: 24px; font-weight: bold;">%s</div>
									<div style="padding-top: 12px; font-size: 16px; color: #FFF;">%s</div>
									<div style="padding-top: 12px; font-size: 14px; color: #a1a1aa;">
										Reporter: %s<br/>Lesson: %s<br/>Exercise: %s
									</div>
									<div style="font-size: 12px; color: #FFF; padding-top: 24px;">© 2026 Lingua</div>
								</td>
							</tr>
						</table>
					</td>
				</tr>
			</table>
		</body>
		</html>`, report.Title, report.Description, reporterEmail, report.LessonId, report.ExerciseId)

	emailInput := &ses.SendEmailInput{
		Source: aws.String(config.ENV.SES_VERIFIED_SENDER),
		Destination: &types.Destination{
			ToAddresses: []string{config.REPORT_INBOX},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(html)},
			},
		},
	}

	if _, err := sesCli.SendEmail(ctx, emailInput); err != nil {
		return nil, fmt.Errorf("in SendReportNotification:\n%w", err)
	}

	return &EmailStatus{
		Sent:     true,
		Cooldown: cooldown.Seconds(),
	}, nil

}
