package shop

import (
	"errors"
	"testing"
)

func TestTotalCost(t *testing.T) {

	heart := &Item{Id: "heart_refill", Price: 500, Currency: CurrencyGems, Category: CategoryHearts}

	cost, err := TotalCost(heart, 1)
	if err != nil {
		t.Fatalf("TotalCost() error: %v", err)
	}
	if cost != 500 {
		t.Errorf("TotalCost() = %d, want 500", cost)
	}

	cost, err = TotalCost(heart, 3)
	if err != nil {
		t.Fatalf("TotalCost() error: %v", err)
	}
	if cost != 1500 {
		t.Errorf("TotalCost() = %d, want 1500", cost)
	}

	pack := &Item{Id: "gem_pack_small", Price: 199, Currency: CurrencyUSD, Category: CategoryGems}
	if _, err := TotalCost(pack, 1); !errors.Is(err, ErrNotGemPriced) {
		t.Errorf("TotalCost() error = %v, want ErrNotGemPriced", err)
	}

}

func TestCheckAffordable(t *testing.T) {

	// 1000 gems cover one 500 gem heart
	if err := CheckAffordable(1000, 500); err != nil {
		t.Errorf("CheckAffordable(1000, 500) = %v, want nil", err)
	}

	if err := CheckAffordable(500, 500); err != nil {
		t.Errorf("CheckAffordable(500, 500) = %v, want nil", err)
	}

	if err := CheckAffordable(499, 500); !errors.Is(err, ErrInsufficientGems) {
		t.Errorf("CheckAffordable(499, 500) = %v, want ErrInsufficientGems", err)
	}

	if err := CheckAffordable(0, 1); !errors.Is(err, ErrInsufficientGems) {
		t.Errorf("CheckAffordable(0, 1) = %v, want ErrInsufficientGems", err)
	}

}

func TestHeartAllowance(t *testing.T) {

	tests := []struct {
		hearts    int
		maxHearts int
		want      int
	}{
		{0, 5, 5},
		{3, 5, 2},
		{5, 5, 0},
		{7, 5, 0}, // over-cap balance still yields zero allowance
	}

	for _, tt := range tests {
		if got := HeartAllowance(tt.hearts, tt.maxHearts); got != tt.want {
			t.Errorf("HeartAllowance(%d, %d) = %d, want %d", tt.hearts, tt.maxHearts, got, tt.want)
		}
	}

}

func TestClampHearts(t *testing.T) {

	tests := []struct {
		hearts    int
		maxHearts int
		want      int
	}{
		{-1, 5, 0},
		{0, 5, 0},
		{3, 5, 3},
		{5, 5, 5},
		{9, 5, 5},
	}

	for _, tt := range tests {
		if got := ClampHearts(tt.hearts, tt.maxHearts); got != tt.want {
			t.Errorf("ClampHearts(%d, %d) = %d, want %d", tt.hearts, tt.maxHearts, got, tt.want)
		}
	}

}

func TestClampGems(t *testing.T) {

	tests := []struct {
		gems       int
		maxBalance int
		want       int
	}{
		{-1, 1_000_000, 0},
		{0, 1_000_000, 0},
		{500, 1_000_000, 500},
		{1_000_000, 1_000_000, 1_000_000},
		{1_000_001, 1_000_000, 1_000_000},
	}

	for _, tt := range tests {
		if got := ClampGems(tt.gems, tt.maxBalance); got != tt.want {
			t.Errorf("ClampGems(%d, %d) = %d, want %d", tt.gems, tt.maxBalance, got, tt.want)
		}
	}

}
