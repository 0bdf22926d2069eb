package utils

import (
	"context"
	"errors"
	"testing"

	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"
)

func setMailEnv(t *testing.T, region, sender string) {
	t.Helper()
	prevRegion, prevSender := config.ENV.SES_REGION, config.ENV.SES_VERIFIED_SENDER
	config.ENV.SES_REGION = region
	config.ENV.SES_VERIFIED_SENDER = sender
	t.Cleanup(func() {
		config.ENV.SES_REGION = prevRegion
		config.ENV.SES_VERIFIED_SENDER = prevSender
	})
}

func TestMailConfigured(t *testing.T) {

	cases := []struct {
		name   string
		region string
		sender string
		want   bool
	}{
		{"both set", "us-east-1", "no-reply@lingua.app", true},
		{"missing region", "", "no-reply@lingua.app", false},
		{"missing sender", "us-east-1", "", false},
		{"both missing", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			setMailEnv(t, c.region, c.sender)
			if got := MailConfigured(); got != c.want {
				t.Errorf("MailConfigured() = %v, want %v", got, c.want)
			}
		})
	}

}

// the config check must run before any client call, so nil clients are
// safe here
func TestSendReportNotificationUnconfigured(t *testing.T) {

	setMailEnv(t, "", "")

	_, err := SendReportNotification(nil, nil, context.Background(), &schemas.Report{}, "")
	if !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}

}
