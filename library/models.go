package library

import "time"

// DateLayout is the fixed ISO layout used for every date field that crosses the
// snapshot boundary (member join dates, borrow/return dates, event dates).
const DateLayout = "2006-01-02"

// TransactionType distinguishes the two kinds of ledger records.
type TransactionType string

const (
	Borrow TransactionType = "BORROW"
	Return TransactionType = "RETURN"
)

// Review is a rating and free-text comment attached to a book. Reviews are
// append-only and owned by their book.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Book represents a catalog entry and its current availability. Genre is free
// text; stored documents carry whatever string was entered.
type Book struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Genre     string   `json:"genre"`
	Year      int      `json:"year"`
	Available bool     `json:"isAvailable"`
	Reviews   []Review `json:"reviews,omitempty"`
}

// NewBook builds a book that is available for borrowing.
func NewBook(id, title, author, genre string, year int) *Book {
	return &Book{ID: id, Title: title, Author: author, Genre: genre, Year: year, Available: true}
}

// DefaultMaxBooks is applied when a member is registered without an explicit
// borrowing limit.
const DefaultMaxBooks = 3

// Member represents a registered library member. Borrowed holds the IDs of the
// books currently on loan to the member; it is not part of the snapshot
// document and is rebuilt from open transactions when a snapshot is loaded.
type Member struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Joined          string   `json:"joined"`
	MaxBooksAllowed int      `json:"-"`
	Borrowed        []string `json:"-"`
}

// Transaction is one borrow/return record. ReturnDate is nil while the loan is
// open and set exactly once when the loan closes.
type Transaction struct {
	ID         string  `json:"transactionId"`
	MemberID   string  `json:"memberId"`
	BookID     string  `json:"bookId"`
	BorrowDate string  `json:"borrowDate"`
	ReturnDate *string `json:"returnDate"`
}

// Open reports whether the transaction represents a book currently on loan.
func (t *Transaction) Open() bool { return t.ReturnDate == nil }

// Snapshot is the whole-store document written to and read from disk.
type Snapshot struct {
	Books        []*Book        `json:"books"`
	Members      []*Member      `json:"members"`
	Transactions []*Transaction `json:"transactions"`
}

// daysBetween counts whole calendar days from one date to another, ignoring
// the time-of-day component.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// parseDate validates a snapshot-boundary date string.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return d, nil
}

func today() string { return time.Now().Format(DateLayout) }
