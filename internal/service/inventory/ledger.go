package inventory

import "github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"

// ledger is the append-only sequence of bills, oldest first. There is no
// update and no delete; a written bill stays exactly as it was written.
type ledger struct {
	bills []models.Bill
}

func newLedger(bills []models.Bill) *ledger {
	return &ledger{bills: bills}
}

// Append adds a bill to the end of the ledger.
func (l *ledger) Append(b models.Bill) {
	l.bills = append(l.bills, b)
}

// All returns a copy of the full ledger, oldest first.
func (l *ledger) All() []models.Bill {
	out := make([]models.Bill, len(l.bills))
	copy(out, l.bills)
	return out
}

// Len reports how many bills have been written.
func (l *ledger) Len() int {
	return len(l.bills)
}

func (l *ledger) snapshot() []models.Bill {
	return l.All()
}

func (l *ledger) restore(bills []models.Bill) {
	l.bills = bills
}
