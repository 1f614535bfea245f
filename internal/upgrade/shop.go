package upgrade

import "fmt"

// Wallet holds a session's money.
type Wallet struct {
	balance int
}

// NewWallet creates a wallet with a starting balance.
func NewWallet(balance int) *Wallet {
	if balance < 0 {
		balance = 0
	}
	return &Wallet{balance: balance}
}

// Balance returns the current money.
func (w *Wallet) Balance() int {
	return w.balance
}

// Earn adds money. Non-positive amounts are ignored.
func (w *Wallet) Earn(amount int) {
	if amount > 0 {
		w.balance += amount
	}
}

// Spend removes money if the balance covers it.
func (w *Wallet) Spend(amount int) bool {
	if amount < 0 || amount > w.balance {
		return false
	}
	w.balance -= amount
	return true
}

// Shop sells upgrades from a State against a Wallet.
type Shop struct {
	state  *State
	wallet *Wallet
}

// NewShop creates a shop.
func NewShop(state *State, wallet *Wallet) *Shop {
	return &Shop{state: state, wallet: wallet}
}

// Purchase buys the next level of a track. Nothing is charged on error.
func (s *Shop) Purchase(t Track) error {
	if !s.state.CanUpgrade(t) {
		return fmt.Errorf("%s: %w", t, ErrMaxLevel)
	}
	cost := s.state.Cost(t)
	if !s.wallet.Spend(cost) {
		return fmt.Errorf("%s needs $%d: %w", t, cost, ErrInsufficientFunds)
	}
	s.state.Upgrade(t)
	return nil
}

// CanAfford reports whether the next level of a track is purchasable now.
func (s *Shop) CanAfford(t Track) bool {
	return s.state.CanUpgrade(t) && s.wallet.Balance() >= s.state.Cost(t)
}
