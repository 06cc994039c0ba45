package library

import "fmt"

// Store is the single source of truth for books, members, and transactions.
// Every mutation synchronously rewrites the whole snapshot through the
// gateway. The store assumes single-threaded, synchronous invocation; callers
// exposing it to concurrent use must add their own mutual exclusion around
// mutate-then-persist.
type Store struct {
	books        []*Book
	members      []*Member
	transactions []*Transaction

	gateway *Gateway
}

// NewStore builds an empty store persisting through g.
func NewStore(g *Gateway) *Store {
	return &Store{gateway: g}
}

// Load replaces the in-memory state with the persisted snapshot. When the
// snapshot file is absent the store is left empty and ErrSnapshotAbsent is
// returned so the caller can report the fresh start. Each member's current
// loans are rebuilt from open transactions, so the borrowed view survives a
// restart.
func (s *Store) Load() error {
	snap, err := s.gateway.Load()
	if err != nil {
		return err
	}

	s.books = snap.Books
	s.members = snap.Members
	s.transactions = snap.Transactions

	for _, m := range s.members {
		if m.MaxBooksAllowed == 0 {
			m.MaxBooksAllowed = DefaultMaxBooks
		}
		m.Borrowed = nil
	}
	for _, t := range s.transactions {
		if !t.Open() {
			continue
		}
		if m, ok := s.Member(t.MemberID); ok {
			m.Borrowed = append(m.Borrowed, t.BookID)
		}
	}
	return nil
}

// AddBook appends a book to the catalog. A duplicate ID leaves the store
// unchanged and skips the persistence write. Other fields are not validated.
func (s *Store) AddBook(b *Book) error {
	if _, ok := s.Book(b.ID); ok {
		return fmt.Errorf("book %s: %w", b.ID, ErrDuplicateID)
	}
	s.books = append(s.books, b)
	return s.persist()
}

// RegisterMember registers a member, applying the default borrowing limit
// when none is set. The join date must match the ISO layout.
func (s *Store) RegisterMember(m *Member) error {
	if _, err := parseDate(m.Joined); err != nil {
		return fmt.Errorf("join date %q: %w", m.Joined, err)
	}
	if _, ok := s.Member(m.ID); ok {
		return fmt.Errorf("member %s: %w", m.ID, ErrDuplicateID)
	}
	if m.MaxBooksAllowed == 0 {
		m.MaxBooksAllowed = DefaultMaxBooks
	}
	s.members = append(s.members, m)
	return s.persist()
}

// RemoveBook removes the book with the given ID. A miss performs no
// persistence write. Transactions referencing the removed book are left in
// place; the history keeps its record even when the join target is gone.
func (s *Store) RemoveBook(id string) error {
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return s.persist()
		}
	}
	return fmt.Errorf("book %s: %w", id, ErrNotFound)
}

// RecordTransaction appends a ledger record and persists. Member and book IDs
// are trusted to reference existing entities; no referential check is
// performed. A BORROW record opens with no return date; a RETURN record is
// created already closed.
func (s *Store) RecordTransaction(memberID, bookID string, kind TransactionType) (*Transaction, error) {
	t := &Transaction{
		ID:         transactionID(len(s.transactions) + 1),
		MemberID:   memberID,
		BookID:     bookID,
		BorrowDate: today(),
	}
	if kind == Return {
		d := today()
		t.ReturnDate = &d
	}
	s.transactions = append(s.transactions, t)
	return t, s.persist()
}

// AddReview appends a review to the identified book.
func (s *Store) AddReview(bookID string, r Review) error {
	b, ok := s.Book(bookID)
	if !ok {
		return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
	}
	b.Reviews = append(b.Reviews, r)
	return s.persist()
}

// Reset clears all collections and persists an empty snapshot. Irreversible.
func (s *Store) Reset() error {
	s.books = nil
	s.members = nil
	s.transactions = nil
	return s.persist()
}

// Book looks up a book by ID.
func (s *Store) Book(id string) (*Book, bool) {
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Member looks up a member by ID.
func (s *Store) Member(id string) (*Member, bool) {
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Books returns the catalog in insertion order.
func (s *Store) Books() []*Book { return append([]*Book(nil), s.books...) }

// Members returns all members in registration order.
func (s *Store) Members() []*Member { return append([]*Member(nil), s.members...) }

// Transactions returns the full ledger in creation order.
func (s *Store) Transactions() []*Transaction {
	return append([]*Transaction(nil), s.transactions...)
}

// persist writes the whole store as one document. The in-memory mutation has
// already happened when this runs; on failure memory is ahead of disk.
func (s *Store) persist() error {
	snap := &Snapshot{
		Books:        make([]*Book, 0, len(s.books)),
		Members:      make([]*Member, 0, len(s.members)),
		Transactions: make([]*Transaction, 0, len(s.transactions)),
	}
	snap.Books = append(snap.Books, s.books...)
	snap.Members = append(snap.Members, s.members...)
	snap.Transactions = append(snap.Transactions, s.transactions...)
	return s.gateway.Save(snap)
}
