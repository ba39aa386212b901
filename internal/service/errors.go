package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule errors are typed so handlers can map them to HTTP status
// codes without string matching. Messages are user-facing (Serbian),
// matching what the front-end displays verbatim.

// NotFoundError: a referenced entity does not resolve. No mutation happened.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func notFound(msg string) error { return &NotFoundError{Msg: msg} }

func notFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError: duplicate unique field or a deletion blocked by dependent
// records. The message carries the dependent count where applicable.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError: the requested quantity exceeds the available
// weight. Carries both amounts so the message (and tests) can compare them.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Nedovoljno materijala. Dostupno: %s %s, Potrebno: %s %s",
		e.Available.String(), e.Unit, e.Requested.String(), e.Unit)
}

// Shared user-facing messages.
const (
	msgMaterialNotFound    = "Materijal nije pronađen"
	msgResinNotFound       = "Sarza nije pronađena"
	msgReceiptNotFound     = "Prijemnica nije pronađena"
	msgDisposalNotFound    = "Rashodovanje nije pronađeno"
	msgConsumptionNotFound = "Zapis potrošnje nije pronađen"
	msgUserNotFound        = "Korisnik nije pronađen"
)
