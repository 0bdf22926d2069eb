package schemas

import (
	"testing"
	"time"
)

func TestEffectivePriceUSD(t *testing.T) {

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	plan := &Plan{
		PlanId:   "premium_monthly",
		PriceUSD: 1299,
		Promo: &PromoPrice{
			PriceUSD: 899,
			StartsAt: start,
			EndsAt:   end,
		},
	}

	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{"before window", start.Add(-time.Hour), 1299},
		{"at start", start, 899},
		{"inside window", start.AddDate(0, 0, 15), 899},
		{"at end", end, 1299}, // end is exclusive
		{"after window", end.Add(time.Hour), 1299},
	}

	for _, tt := range tests {
		if got := plan.EffectivePriceUSD(tt.now); got != tt.want {
			t.Errorf("%s: EffectivePriceUSD() = %d, want %d", tt.name, got, tt.want)
		}
	}

}

func TestEffectivePriceUSDNoPromo(t *testing.T) {

	plan := &Plan{PlanId: "premium_monthly", PriceUSD: 1299}
	if got := plan.EffectivePriceUSD(time.Now().UTC()); got != 1299 {
		t.Errorf("EffectivePriceUSD() = %d, want 1299", got)
	}

}
