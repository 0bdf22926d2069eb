package shop

import "errors"

var (
	ErrInsufficientGems = errors.New("insufficient gem balance")
	ErrHeartsAtCap      = errors.New("hearts already at cap")
	ErrNotGemPriced     = errors.New("item is not priced in gems")
)

// TotalCost returns the gem cost of quantity units of a gem-priced item.
func TotalCost(item *Item, quantity int) (int64, error) {
	if item.Currency != CurrencyGems {
		return 0, ErrNotGemPriced
	}
	return item.Price * int64(quantity), nil
}

// CheckAffordable rejects before any write when the balance cannot cover
// the cost. Never partially applies.
func CheckAffordable(gems int, cost int64) error {
	if int64(gems) < cost {
		return ErrInsufficientGems
	}
	return nil
}

// HeartAllowance returns how many hearts a user can still buy. The purchase
// path rejects rather than clamps when quantity exceeds the allowance.
func HeartAllowance(hearts, maxHearts int) int {
	if hearts >= maxHearts {
		return 0
	}
	return maxHearts - hearts
}

// ClampHearts bounds a balance to [0, maxHearts].
func ClampHearts(hearts, maxHearts int) int {
	if hearts < 0 {
		return 0
	}
	if hearts > maxHearts {
		return maxHearts
	}
	return hearts
}

// ClampGems bounds a balance to [0, maxBalance], mirroring the pipeline
// update the gems endpoint applies.
func ClampGems(gems, maxBalance int) int {
	if gems < 0 {
		return 0
	}
	if gems > maxBalance {
		return maxBalance
	}
	return gems
}
