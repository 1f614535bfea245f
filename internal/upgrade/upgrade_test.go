package upgrade

import (
	"errors"
	"testing"

	"github.com/vovakirdan/topdeck/internal/config"
)

func newState() *State {
	return NewState(config.DefaultUpgradeConfig())
}

func TestModifiersAtLevelZero(t *testing.T) {
	s := newState()
	mods := map[string]func(int) float64{
		"defender health":    s.DefenderHealthModifier,
		"tower health":       s.TowerHealthModifier,
		"defender damage":    s.DefenderDamageModifier,
		"defender fire rate": s.DefenderFireRateModifier,
	}

	for name, mod := range mods {
		t.Run(name, func(t *testing.T) {
			if got := mod(0); got != 1 {
				t.Errorf("level 0 = %v, want 1", got)
			}
			if mod(1) <= mod(0) {
				t.Errorf("level 1 = %v should exceed level 0", mod(1))
			}
			if mod(2) <= mod(1) {
				t.Errorf("level 2 = %v should exceed level 1", mod(2))
			}
		})
	}
}

func TestModifierValues(t *testing.T) {
	s := newState()
	if got := s.DefenderHealthModifier(1); got != 1.25 {
		t.Errorf("DefenderHealthModifier(1) = %v, want 1.25", got)
	}
	if got := s.TowerHealthModifier(2); got != 2 {
		t.Errorf("TowerHealthModifier(2) = %v, want 2", got)
	}
	if got := s.DefenderDamageModifier(2); got != 1.2 {
		t.Errorf("DefenderDamageModifier(2) = %v, want 1.2", got)
	}
}

func TestUpgradeCaps(t *testing.T) {
	s := newState()
	for i := 0; i < 2; i++ {
		if !s.Upgrade(Defender) {
			t.Fatalf("upgrade %d should succeed", i+1)
		}
	}
	if s.Upgrade(Defender) {
		t.Error("upgrade past max level should fail")
	}
	if s.DefenderLevel() != 2 || s.DefenderHealthBonus() != 50 {
		t.Errorf("level = %d, bonus = %d", s.DefenderLevel(), s.DefenderHealthBonus())
	}

	s.Upgrade(Tower)
	if s.TowerHealth() != 150 {
		t.Errorf("TowerHealth() = %d, want 150", s.TowerHealth())
	}
	if got := s.EnemyHealthScaling(); got != 1.15 {
		t.Errorf("EnemyHealthScaling() = %v, want 1.15", got)
	}

	s.SetLevels(9, -1)
	if s.DefenderLevel() != 2 || s.TowerLevel() != 0 {
		t.Errorf("SetLevels clamped to %d/%d", s.DefenderLevel(), s.TowerLevel())
	}
}

func TestShopPurchase(t *testing.T) {
	s := newState()
	w := NewWallet(450)
	shop := NewShop(s, w)

	if err := shop.Purchase(Defender); err != nil {
		t.Fatalf("Purchase(defender) error: %v", err)
	}
	if w.Balance() != 250 {
		t.Errorf("balance = %d, want 250", w.Balance())
	}

	err := shop.Purchase(Tower)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Purchase(tower) error = %v, want ErrInsufficientFunds", err)
	}
	if w.Balance() != 250 || s.TowerLevel() != 0 {
		t.Error("failed purchase should not charge or upgrade")
	}

	if err := shop.Purchase(Defender); err != nil {
		t.Fatalf("second Purchase(defender) error: %v", err)
	}
	w.Earn(1000)
	if err := shop.Purchase(Defender); !errors.Is(err, ErrMaxLevel) {
		t.Errorf("Purchase at cap error = %v, want ErrMaxLevel", err)
	}
	if shop.CanAfford(Defender) {
		t.Error("CanAfford should be false at max level")
	}
	if !shop.CanAfford(Tower) {
		t.Error("CanAfford(tower) should be true")
	}
}

func TestWallet(t *testing.T) {
	w := NewWallet(-5)
	if w.Balance() != 0 {
		t.Errorf("negative start balance = %d", w.Balance())
	}
	w.Earn(10)
	w.Earn(-3)
	if w.Balance() != 10 {
		t.Errorf("balance = %d, want 10", w.Balance())
	}
	if w.Spend(11) || w.Spend(-1) {
		t.Error("invalid spend should fail")
	}
	if !w.Spend(10) || w.Balance() != 0 {
		t.Error("exact spend should succeed")
	}
}
