package settings

import (
	"encoding/json"
	"testing"
	"time"

	"linguaapi/internal/api"
)

func TestApplySectionsPartialMerge(t *testing.T) {

	settings := api.DefaultPaymentSettings(time.Now().UTC())
	settings.General.StoreName = "Original Store"
	settings.General.SupportEmail = "keep@lingua.app"

	sections := map[string]json.RawMessage{
		"general": json.RawMessage(`{"storeName": "New Store"}`),
	}
	if err := applySections(settings, sections); err != nil {
		t.Fatalf("applySections() error: %v", err)
	}

	if settings.General.StoreName != "New Store" {
		t.Errorf("storeName = %q, want %q", settings.General.StoreName, "New Store")
	}
	// untouched field keeps its stored value
	if settings.General.SupportEmail != "keep@lingua.app" {
		t.Errorf("supportEmail = %q, want %q", settings.General.SupportEmail, "keep@lingua.app")
	}

}

func TestApplySectionsCurrenciesNestedMerge(t *testing.T) {

	settings := api.DefaultPaymentSettings(time.Now().UTC())
	settings.Currencies.Gems.StarterBalance = 100
	settings.Currencies.Hearts.MaxHearts = 5
	settings.Currencies.Hearts.CostInGems = 500

	sections := map[string]json.RawMessage{
		"currencies": json.RawMessage(`{"hearts": {"costInGems": 750}}`),
	}
	if err := applySections(settings, sections); err != nil {
		t.Fatalf("applySections() error: %v", err)
	}

	if settings.Currencies.Hearts.CostInGems != 750 {
		t.Errorf("hearts.costInGems = %d, want 750", settings.Currencies.Hearts.CostInGems)
	}
	// sibling fields in hearts survive
	if settings.Currencies.Hearts.MaxHearts != 5 {
		t.Errorf("hearts.maxHearts = %d, want 5", settings.Currencies.Hearts.MaxHearts)
	}
	// gems section survives entirely
	if settings.Currencies.Gems.StarterBalance != 100 {
		t.Errorf("gems.starterBalance = %d, want 100", settings.Currencies.Gems.StarterBalance)
	}

}

func TestApplySectionsUnknownSection(t *testing.T) {

	settings := api.DefaultPaymentSettings(time.Now().UTC())
	sections := map[string]json.RawMessage{
		"nonsense": json.RawMessage(`{}`),
	}
	if err := applySections(settings, sections); err == nil {
		t.Error("applySections() = nil, want error for unknown section")
	}

}

func TestApplySectionsUnknownCurrency(t *testing.T) {

	settings := api.DefaultPaymentSettings(time.Now().UTC())
	sections := map[string]json.RawMessage{
		"currencies": json.RawMessage(`{"doubloons": {"enabled": true}}`),
	}
	if err := applySections(settings, sections); err == nil {
		t.Error("applySections() = nil, want error for unknown currency")
	}

}

func TestMaskSecrets(t *testing.T) {

	settings := api.DefaultPaymentSettings(time.Now().UTC())
	settings.Providers.StripeSecretKey = "sk_live_abc123"
	settings.Providers.StripePublicKey = "pk_live_abc123"
	settings.Webhooks.SigningSecret = "whsec_xyz"

	masked := maskSecrets(*settings)

	if masked.Providers.StripeSecretKey != maskPlaceholder {
		t.Errorf("stripeSecretKey = %q, want masked", masked.Providers.StripeSecretKey)
	}
	if masked.Webhooks.SigningSecret != maskPlaceholder {
		t.Errorf("signingSecret = %q, want masked", masked.Webhooks.SigningSecret)
	}
	// public key is not a secret
	if masked.Providers.StripePublicKey != "pk_live_abc123" {
		t.Errorf("stripePublicKey = %q, want unmasked", masked.Providers.StripePublicKey)
	}
	// empty secrets stay empty rather than getting a placeholder
	if masked.Providers.PaypalClientSecret != "" {
		t.Errorf("paypalClientSecret = %q, want empty", masked.Providers.PaypalClientSecret)
	}
	// original document is untouched
	if settings.Providers.StripeSecretKey != "sk_live_abc123" {
		t.Error("maskSecrets mutated the original document")
	}

}
