package settings

import (
	"encoding/json"
	"fmt"

	"linguaapi/pkg/schemas"
)

const maskPlaceholder = "********"

// sectionNames are the patchable top-level keys of a settings document.
var sectionNames = map[string]bool{
	"general":       true,
	"providers":     true,
	"currencies":    true,
	"regional":      true,
	"webhooks":      true,
	"security":      true,
	"notifications": true,
}

// applySections merges raw JSON sections into an existing document one
// level deep: fields absent from the payload keep their stored values.
// currencies gets a second merge level so a patch touching only
// currencies.hearts leaves currencies.gems alone.
func applySections(settings *schemas.PaymentSettings, sections map[string]json.RawMessage) error {

	for name, raw := range sections {
		if !sectionNames[name] {
			return fmt.Errorf("unknown settings section %q", name)
		}

		var err error
		switch name {
		case "general":
			err = json.Unmarshal(raw, &settings.General)
		case "providers":
			err = json.Unmarshal(raw, &settings.Providers)
		case "currencies":
			err = applyCurrencies(&settings.Currencies, raw)
		case "regional":
			err = json.Unmarshal(raw, &settings.Regional)
		case "webhooks":
			err = json.Unmarshal(raw, &settings.Webhooks)
		case "security":
			err = json.Unmarshal(raw, &settings.Security)
		case "notifications":
			err = json.Unmarshal(raw, &settings.Notifications)
		}
		if err != nil {
			return fmt.Errorf("in section %q: %w", name, err)
		}
	}

	return nil

}

func applyCurrencies(currencies *schemas.CurrencySettings, raw json.RawMessage) error {

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		return err
	}

	for name, sub := range nested {
		var err error
		switch name {
		case "gems":
			err = json.Unmarshal(sub, &currencies.Gems)
		case "hearts":
			err = json.Unmarshal(sub, &currencies.Hearts)
		default:
			err = fmt.Errorf("unknown currency %q", name)
		}
		if err != nil {
			return err
		}
	}

	return nil

}

// maskSecrets blanks credential fields for non-privileged reads. Operates
// on a copy so the stored document is untouched.
func maskSecrets(settings schemas.PaymentSettings) *schemas.PaymentSettings {
	if settings.Providers.StripeSecretKey != "" {
		settings.Providers.StripeSecretKey = maskPlaceholder
	}
	if settings.Providers.PaypalClientSecret != "" {
		settings.Providers.PaypalClientSecret = maskPlaceholder
	}
	if settings.Webhooks.SigningSecret != "" {
		settings.Webhooks.SigningSecret = maskPlaceholder
	}
	return &settings
}
