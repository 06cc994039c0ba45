package library

import "fmt"

// Notification is one overdue reminder addressed to a member about a book.
type Notification struct {
	MemberID   string
	MemberName string
	BookID     string
	BookTitle  string
	BorrowDate string
}

// Message renders the notification line shown on the notify screen.
func (n Notification) Message() string {
	return fmt.Sprintf("Notification sent to %s for overdue book '%s'.", n.MemberName, n.BookTitle)
}

// Notifier sweeps the ledger for overdue loans and builds one notification
// per resolvable member/book pair. Nothing is actually delivered anywhere;
// the screens render the returned messages.
type Notifier struct {
	store  *Store
	ledger *Ledger
}

// NewNotifier builds an overdue notifier over store and ledger.
func NewNotifier(store *Store, ledger *Ledger) *Notifier {
	return &Notifier{store: store, ledger: ledger}
}

// NotifyOverdue builds notifications for every overdue loan whose member and
// book still exist.
func (n *Notifier) NotifyOverdue() []Notification {
	var out []Notification
	for _, t := range n.ledger.OverdueTransactions() {
		m, okM := n.store.Member(t.MemberID)
		b, okB := n.store.Book(t.BookID)
		if !okM || !okB {
			continue
		}
		out = append(out, Notification{
			MemberID:   m.ID,
			MemberName: m.Name,
			BookID:     b.ID,
			BookTitle:  b.Title,
			BorrowDate: t.BorrowDate,
		})
	}
	return out
}
