package layout

import (
	"time"

	"github.com/wmcore/corewm/internal/treewm"
)

// DefaultTxnTimeout is spec §5's default txn_timeout_ms.
const DefaultTxnTimeout = 200 * time.Millisecond

// Transaction batches a set of geometry changes sent to views with an
// ack-or-timeout commit policy (spec §5, §9 glossary "Transaction"): once
// every acked view has acknowledged its new geometry, or the timeout
// elapses, the transaction is applied regardless of which views have
// acknowledged. This guarantees the event loop never stalls on a buggy
// client.
//
// Transaction does not itself run a timer goroutine — per spec §5's
// single-threaded cooperative model, the event loop polls TimedOut(now)
// on each tick instead of a background goroutine racing the tree.
type Transaction struct {
	deadline time.Time
	pending  map[treewm.SurfaceHandle]bool
	done     bool
}

// Begin starts a transaction awaiting an ack from each of handles, with
// the given timeout (DefaultTxnTimeout if zero).
func Begin(handles []treewm.SurfaceHandle, timeout time.Duration) *Transaction {
	if timeout <= 0 {
		timeout = DefaultTxnTimeout
	}
	pending := make(map[treewm.SurfaceHandle]bool, len(handles))
	for _, h := range handles {
		pending[h] = true
	}
	return &Transaction{deadline: time.Now().Add(timeout), pending: pending}
}

// AckView records that handle has applied its new geometry.
func (tx *Transaction) AckView(handle treewm.SurfaceHandle) {
	delete(tx.pending, handle)
}

// Ready reports whether every view has acknowledged.
func (tx *Transaction) Ready() bool {
	return len(tx.pending) == 0
}

// TimedOut reports whether the deadline has passed and the transaction
// has not yet been committed.
func (tx *Transaction) TimedOut(now time.Time) bool {
	return !tx.done && now.After(tx.deadline)
}

// Commit marks the transaction applied; subsequent TimedOut calls return
// false regardless of the clock.
func (tx *Transaction) Commit() {
	tx.done = true
}

// Done reports whether Commit has been called.
func (tx *Transaction) Done() bool { return tx.done }

// Pending returns the number of views still awaiting ack.
func (tx *Transaction) Pending() int { return len(tx.pending) }
