// Package ledger persists accepted payments and enforces the at-most-once
// consumption of transaction ids. It is backed by a single bbolt database;
// the uniqueness check and the reservation of an id happen inside one
// read-write transaction, which is the synchronization primitive the rest
// of the system relies on. Multiple goroutines may call Admit for the same
// id; exactly one of them wins.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"merxylab/kpay-verify/internal/models"
)

const (
	admissionsBucket = "admissions"
	paymentsBucket   = "payments"
	invitedBucket    = "invited_users"
	paidBucket       = "paid_users"
)

// Ledger is the bbolt-backed store for admissions, payment records, and
// per-user bookkeeping.
type Ledger struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &StoreError{Op: "open", Key: path, Err: err}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{admissionsBucket, paymentsBucket, invitedBucket, paidBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Key: path, Err: err}
	}

	return &Ledger{db: db}, nil
}

// Admit durably marks the transaction id as consumed and reports whether
// this caller won the reservation. The lookup and the write share one
// bbolt transaction, so two concurrent calls for the same id can never
// both return true. A store fault is returned as an error, never as an
// admission decision.
func (l *Ledger) Admit(txID string) (bool, error) {
	var admitted bool
	err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(admissionsBucket))
		if b.Get([]byte(txID)) != nil {
			return nil
		}
		admitted = true
		return b.Put([]byte(txID), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return false, &StoreError{Op: "admit", Key: txID, Err: err}
	}
	return admitted, nil
}

// Exists reports whether the transaction id has already been consumed,
// without reserving it.
func (l *Ledger) Exists(txID string) (bool, error) {
	var found bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket([]byte(admissionsBucket)).Get([]byte(txID)) != nil
		return nil
	})
	if err != nil {
		return false, &StoreError{Op: "exists", Key: txID, Err: err}
	}
	return found, nil
}

// Record writes the ledger entry for an accepted payment, keyed by its
// transaction id.
func (l *Ledger) Record(entry models.LedgerEntry) error {
	err := l.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}
		return tx.Bucket([]byte(paymentsBucket)).Put([]byte(entry.TransactionID), data)
	})
	if err != nil {
		return &StoreError{Op: "record", Key: entry.TransactionID, Err: err}
	}
	return nil
}

// List returns all recorded payment entries.
func (l *Ledger) List() ([]models.LedgerEntry, error) {
	entries := make([]models.LedgerEntry, 0)
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(paymentsBucket)).ForEach(func(k, v []byte) error {
			var entry models.LedgerEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling entry %s: %w", k, err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return entries, nil
}

// MarkInvited records that the user has received their one-time invite.
func (l *Ledger) MarkInvited(userID string) error {
	err := l.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(invitedBucket)).Put([]byte(userID), []byte("1"))
	})
	if err != nil {
		return &StoreError{Op: "mark_invited", Key: userID, Err: err}
	}
	return nil
}

// WasInvited reports whether the user has already received an invite.
func (l *Ledger) WasInvited(userID string) (bool, error) {
	var invited bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		invited = tx.Bucket([]byte(invitedBucket)).Get([]byte(userID)) != nil
		return nil
	})
	if err != nil {
		return false, &StoreError{Op: "was_invited", Key: userID, Err: err}
	}
	return invited, nil
}

// MarkPaid records that the user's payment with the given transaction id
// was accepted.
func (l *Ledger) MarkPaid(userID, txID string) error {
	err := l.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(paidBucket)).Put([]byte(userID), []byte(txID))
	})
	if err != nil {
		return &StoreError{Op: "mark_paid", Key: userID, Err: err}
	}
	return nil
}

// HasPaid reports whether the user has a previously accepted payment.
func (l *Ledger) HasPaid(userID string) (bool, error) {
	var paid bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		paid = tx.Bucket([]byte(paidBucket)).Get([]byte(userID)) != nil
		return nil
	})
	if err != nil {
		return false, &StoreError{Op: "has_paid", Key: userID, Err: err}
	}
	return paid, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
