// services/gas.go
package services

import "log"

// GasGate charges the flat per-action fee in front of every mutating
// operation. It holds no ledger state beyond the fee constant: the fee is
// debited from the session's wallet balance, and a refusal leaves every
// piece of state untouched so the whole action short-circuits as a no-op.
type GasGate struct {
	FeeUSDC float64
}

func NewGasGate(feeUSDC float64) *GasGate {
	return &GasGate{FeeUSDC: feeUSDC}
}

// Charge debits the gas fee for the named action. Callers must hold the
// session lock. Returns ErrInsufficientGas without side effects if the
// session cannot cover the fee.
func (g *GasGate) Charge(s *Session, action string) error {
	if s.WalletBalance < g.FeeUSDC {
		log.Printf("⛽ [GAS] Rejected %s for user %s: balance %.4f < fee %.4f",
			action, s.UserID, s.WalletBalance, g.FeeUSDC)
		return ErrInsufficientGas
	}
	s.WalletBalance -= g.FeeUSDC
	log.Printf("⛽ [GAS] Charged %.4f USDC for %s (user %s)", g.FeeUSDC, action, s.UserID)
	return nil
}

// Refund reverses a charge when a later, already-admitted step of the same
// action refuses (the treasury debit), keeping the action a complete no-op.
// Callers must hold the session lock.
func (g *GasGate) Refund(s *Session) {
	s.WalletBalance += g.FeeUSDC
}
