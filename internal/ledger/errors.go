package ledger

import "fmt"

// StoreError reports that the backing store could not answer. It is kept
// distinct from rejection outcomes on purpose: when the store is down the
// guard cannot determine admission, and the caller must not accept the
// receipt. Coercing a store fault into "not a duplicate" would let an
// unpaid transaction through during an outage.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("ledger: %s failed for %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("ledger: %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
