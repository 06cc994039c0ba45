package library

import (
	"fmt"
	"time"
)

// Ledger drives the borrow/return lifecycle over the store's collections and
// derives overdue status and fines. A transaction only moves forward: open
// (no return date) to closed (return date set), never back.
type Ledger struct {
	store     *Store
	loanDays  int
	dailyFine float64
}

// NewLedger builds a ledger with the given loan period and daily fine rate.
func NewLedger(store *Store, loanDays int, dailyFine float64) *Ledger {
	return &Ledger{store: store, loanDays: loanDays, dailyFine: dailyFine}
}

// Borrow lends a book to a member. The book must be available and the member
// below their borrowing limit; a failed precondition leaves the store
// untouched. On success the availability flag flips, the member's loan list
// grows, and an open transaction is appended and persisted.
func (l *Ledger) Borrow(memberID, bookID string) (*Transaction, error) {
	m, ok := l.store.Member(memberID)
	if !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	b, ok := l.store.Book(bookID)
	if !ok {
		return nil, fmt.Errorf("book %s: %w", bookID, ErrNotFound)
	}
	if !b.Available {
		return nil, fmt.Errorf("book %s: %w", bookID, ErrBookUnavailable)
	}
	if len(m.Borrowed) >= m.MaxBooksAllowed {
		return nil, fmt.Errorf("member %s cannot borrow more than %d books: %w",
			memberID, m.MaxBooksAllowed, ErrBorrowLimit)
	}

	b.Available = false
	m.Borrowed = append(m.Borrowed, bookID)
	return l.store.RecordTransaction(memberID, bookID, Borrow)
}

// ReturnBook closes the open transaction matching the member and book. The
// same record transitions in place; no new record is created. When no open
// transaction matches, nothing mutates, even if the availability flag claims
// the book is out.
func (l *Ledger) ReturnBook(memberID, bookID string) (*Transaction, error) {
	var open *Transaction
	for _, t := range l.store.transactions {
		if t.Open() && t.MemberID == memberID && t.BookID == bookID {
			open = t
			break
		}
	}
	if open == nil {
		return nil, fmt.Errorf("member %s, book %s: %w", memberID, bookID, ErrNoOpenLoan)
	}

	d := today()
	open.ReturnDate = &d

	if b, ok := l.store.Book(bookID); ok {
		b.Available = true
	}
	if m, ok := l.store.Member(memberID); ok {
		for i, id := range m.Borrowed {
			if id == bookID {
				m.Borrowed = append(m.Borrowed[:i], m.Borrowed[i+1:]...)
				break
			}
		}
	}
	return open, l.store.persist()
}

// IsOverdue reports whether t is an open loan past the loan period. The
// predicate is evaluated freshly against the current date on every call.
// Malformed borrow dates are treated as not overdue; dates are validated at
// the boundary, so they do not occur for store-created records.
func (l *Ledger) IsOverdue(t *Transaction) bool {
	if !t.Open() {
		return false
	}
	borrowed, err := parseDate(t.BorrowDate)
	if err != nil {
		return false
	}
	return daysBetween(borrowed, time.Now()) > l.loanDays
}

// Fine computes the live fine for a transaction: overdue days past the loan
// period times the daily rate, never negative. Fines are report-only; nothing
// is ever charged or persisted.
func (l *Ledger) Fine(t *Transaction) float64 {
	borrowed, err := parseDate(t.BorrowDate)
	if err != nil {
		return 0
	}
	overdueDays := daysBetween(borrowed, time.Now()) - l.loanDays
	if overdueDays <= 0 {
		return 0
	}
	return float64(overdueDays) * l.dailyFine
}

// OverdueTransactions lists every open transaction past the loan period, in
// ledger order.
func (l *Ledger) OverdueTransactions() []*Transaction {
	var overdue []*Transaction
	for _, t := range l.store.transactions {
		if l.IsOverdue(t) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// FineNotice reports what a member currently owes for one overdue loan.
type FineNotice struct {
	MemberID string
	BookID   string
	Amount   float64
}

// Fines computes a notice per overdue loan.
func (l *Ledger) Fines() []FineNotice {
	var notices []FineNotice
	for _, t := range l.OverdueTransactions() {
		notices = append(notices, FineNotice{
			MemberID: t.MemberID,
			BookID:   t.BookID,
			Amount:   l.Fine(t),
		})
	}
	return notices
}
