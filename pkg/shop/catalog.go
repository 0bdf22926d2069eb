package shop

import (
	"errors"

	"linguaapi/pkg/schemas"
)

const (
	CurrencyGems  = "gems"
	CurrencyCoins = "coins"
	CurrencyUSD   = "USD"

	CategoryHearts  = "hearts"
	CategoryPremium = "premium"
	CategoryBoosts  = "boosts"
	CategoryGems    = "gems"
)

var ErrUnknownItem = errors.New("unknown shop item")

type Item struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"` // gems, or USD cents for gem packs
	Currency      string `json:"currency"`
	Category      string `json:"category"`
	StripePriceId string `json:"-"`
}

// Catalog is built from the active payment settings so the heart price
// follows admin configuration rather than a compile-time constant.
func Catalog(settings *schemas.PaymentSettings) []Item {

	heartCost := int64(settings.Currencies.Hearts.CostInGems)

	items := []Item{
		{Id: "heart_refill", Name: "Heart Refill", Price: heartCost, Currency: CurrencyGems, Category: CategoryHearts},
		{Id: "streak_freeze", Name: "Streak Freeze", Price: 200, Currency: CurrencyGems, Category: CategoryBoosts},
		{Id: "double_or_nothing", Name: "Double or Nothing", Price: 50, Currency: CurrencyGems, Category: CategoryBoosts},
		{Id: "gem_pack_small", Name: "Handful of Gems", Price: 199, Currency: CurrencyUSD, Category: CategoryGems, StripePriceId: "price_gem_pack_small"},
		{Id: "gem_pack_large", Name: "Pile of Gems", Price: 799, Currency: CurrencyUSD, Category: CategoryGems, StripePriceId: "price_gem_pack_large"},
	}

	return items

}

// EntitlementField returns the user document field a gem purchase of this
// item increments. Gem packs are fulfilled through checkout, not here.
func EntitlementField(item *Item) (string, bool) {
	switch item.Category {
	case CategoryHearts:
		return "hearts", true
	case CategoryBoosts:
		return "boosts." + item.Id, true
	}
	return "", false
}

func FindItem(items []Item, itemId string) (*Item, error) {
	for i := range items {
		if items[i].Id == itemId {
			return &items[i], nil
		}
	}
	return nil, ErrUnknownItem
}
