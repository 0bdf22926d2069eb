package shop

import (
	"errors"
	"testing"

	"linguaapi/pkg/schemas"
)

func testSettings(heartCost int) *schemas.PaymentSettings {
	return &schemas.PaymentSettings{
		Currencies: schemas.CurrencySettings{
			Hearts: schemas.HeartSettings{
				MaxHearts:  5,
				CostInGems: heartCost,
			},
		},
	}
}

func TestCatalogHeartPriceFollowsSettings(t *testing.T) {

	items := Catalog(testSettings(500))
	heart, err := FindItem(items, "heart_refill")
	if err != nil {
		t.Fatalf("FindItem() error: %v", err)
	}
	if heart.Price != 500 {
		t.Errorf("heart price = %d, want 500", heart.Price)
	}
	if heart.Currency != CurrencyGems {
		t.Errorf("heart currency = %q, want %q", heart.Currency, CurrencyGems)
	}

	items = Catalog(testSettings(750))
	heart, _ = FindItem(items, "heart_refill")
	if heart.Price != 750 {
		t.Errorf("heart price = %d, want 750 after settings change", heart.Price)
	}

}

func TestCatalogGemPacksAreUSD(t *testing.T) {

	items := Catalog(testSettings(500))
	for _, item := range items {
		if item.Category == CategoryGems {
			if item.Currency != CurrencyUSD {
				t.Errorf("gem pack %q currency = %q, want USD", item.Id, item.Currency)
			}
			if item.StripePriceId == "" {
				t.Errorf("gem pack %q has no stripe price id", item.Id)
			}
		}
	}

}

func TestFindItemUnknown(t *testing.T) {

	items := Catalog(testSettings(500))
	if _, err := FindItem(items, "no_such_item"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("FindItem() error = %v, want ErrUnknownItem", err)
	}

}

func TestEntitlementField(t *testing.T) {

	items := Catalog(testSettings(500))

	tests := []struct {
		itemId    string
		wantField string
		wantOk    bool
	}{
		{"heart_refill", "hearts", true},
		{"streak_freeze", "boosts.streak_freeze", true},
		{"double_or_nothing", "boosts.double_or_nothing", true},
		{"gem_pack_small", "", false}, // fulfilled by checkout
	}

	for _, tt := range tests {
		item, err := FindItem(items, tt.itemId)
		if err != nil {
			t.Fatalf("FindItem(%q) error: %v", tt.itemId, err)
		}
		field, ok := EntitlementField(item)
		if field != tt.wantField || ok != tt.wantOk {
			t.Errorf("EntitlementField(%q) = (%q, %v), want (%q, %v)", tt.itemId, field, ok, tt.wantField, tt.wantOk)
		}
	}

}
