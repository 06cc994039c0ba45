package library

import "errors"

var (
	// ErrDuplicateID is returned when an add/register call reuses an existing ID.
	ErrDuplicateID = errors.New("identifier already exists")

	// ErrNotFound is returned when an operation references a book or member
	// that is not in the store.
	ErrNotFound = errors.New("not in library")

	// ErrBookUnavailable is returned when a borrow targets a book that is
	// already on loan.
	ErrBookUnavailable = errors.New("book is not available")

	// ErrBorrowLimit is returned when a member is already at their borrowing
	// limit.
	ErrBorrowLimit = errors.New("borrowing limit reached")

	// ErrNoOpenLoan is returned when a return finds no open transaction for
	// the given member and book.
	ErrNoOpenLoan = errors.New("no borrowing record found")

	// ErrMalformedDate is returned when a date string does not match the
	// fixed ISO layout.
	ErrMalformedDate = errors.New("malformed date")

	// ErrPersistence wraps failures writing or reading the snapshot file.
	ErrPersistence = errors.New("persistence failure")

	// ErrSnapshotAbsent is returned by a load when the snapshot file does not
	// exist yet.
	ErrSnapshotAbsent = errors.New("snapshot file absent")

	// ErrUserExists is returned when a registry registration reuses an email.
	ErrUserExists = errors.New("user already exists")

	// ErrUnknownUser is returned when a registry operation targets an email
	// that was never registered.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDownloadUnavailable is returned when no downloadable copy of a book
	// exists in the archive.
	ErrDownloadUnavailable = errors.New("no downloadable copy")
)
