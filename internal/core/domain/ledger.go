package domain

import (
	"loyalty-token-ledger/pkg/apperror"

	"github.com/holiman/uint256"
)

// Ledger is the balance book: a mapping from account identity to balance plus
// the aggregate total supply. All arithmetic is checked 256-bit unsigned;
// overflow and underflow are rejected, never wrapped.
//
// Ledger is a passive data structure. It performs no authorization and no
// locking; the orchestrator owns both.
type Ledger struct {
	balances map[Address]*uint256.Int
	supply   *uint256.Int
}

// NewLedger creates an empty ledger with zero total supply.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[Address]*uint256.Int),
		supply:   uint256.NewInt(0),
	}
}

// BalanceOf returns the balance of the given identity. Absent entries read as
// zero. The returned value is a copy.
func (l *Ledger) BalanceOf(addr Address) *uint256.Int {
	if bal, ok := l.balances[addr]; ok {
		return new(uint256.Int).Set(bal)
	}
	return uint256.NewInt(0)
}

// TotalSupply returns the aggregate supply as a copy.
func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(l.supply)
}

// Mint creates amount new tokens for addr, increasing total supply.
// Fails without state change on the null identity, a zero amount, or
// overflow of either the balance or the supply.
func (l *Ledger) Mint(addr Address, amount *uint256.Int) error {
	if addr.IsZero() {
		return apperror.ErrInvalidIdentity()
	}
	if amount == nil || amount.IsZero() {
		return apperror.ErrZeroAmount()
	}

	newSupply, overflow := new(uint256.Int).AddOverflow(l.supply, amount)
	if overflow {
		return apperror.ErrOverflow()
	}
	newBalance, overflow := new(uint256.Int).AddOverflow(l.BalanceOf(addr), amount)
	if overflow {
		return apperror.ErrOverflow()
	}

	l.balances[addr] = newBalance
	l.supply = newSupply
	return nil
}

// Burn destroys amount tokens held by addr, decreasing total supply.
// Fails without state change on a zero amount or insufficient balance.
// An entry burned to zero stays in the book; identities are never removed.
func (l *Ledger) Burn(addr Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return apperror.ErrZeroAmount()
	}

	balance := l.BalanceOf(addr)
	if balance.Lt(amount) {
		return apperror.ErrInsufficientBalance(amount.Dec(), balance.Dec())
	}

	l.balances[addr] = new(uint256.Int).Sub(balance, amount)
	l.supply = new(uint256.Int).Sub(l.supply, amount)
	return nil
}

// MintBatch mints each (identity, amount) pair in order with the same
// per-item validation as Mint. The batch is all-or-nothing: mutations are
// applied to a scratch copy and swapped in only once every item has passed.
func (l *Ledger) MintBatch(addrs []Address, amounts []*uint256.Int) error {
	if len(addrs) != len(amounts) {
		return apperror.ErrArityMismatch(len(addrs), len(amounts))
	}

	scratch := l.clone()
	for i, addr := range addrs {
		if err := scratch.Mint(addr, amounts[i]); err != nil {
			return err
		}
	}

	l.balances = scratch.balances
	l.supply = scratch.supply
	return nil
}

func (l *Ledger) clone() *Ledger {
	balances := make(map[Address]*uint256.Int, len(l.balances))
	for addr, bal := range l.balances {
		balances[addr] = new(uint256.Int).Set(bal)
	}
	return &Ledger{
		balances: balances,
		supply:   new(uint256.Int).Set(l.supply),
	}
}
