package library

import (
	"fmt"
	"math"

	"github.com/kjk/flatlib/record"
)

const (
	StatusBorrow   = "Borrow"
	StatusReturned = "Returned"

	// DateLayout is the layout of all dates: YYYY-MM-DD
	DateLayout = "2006-01-02"
)

type Book struct {
	ID          int32
	Title       string
	Author      string
	Publisher   string
	Year        int32
	Category    string
	Language    string
	Shelf       string
	TotalCopies int32
}

type Member struct {
	ID        int32
	Name      string
	BirthDate string
	// M, F or O
	Gender  string
	Address string
	Mobile  string
	Email   string
	RegDate string
}

// Loan is one borrowed book. Loans have no id of their own, a loan
// is identified by its position among the loans of a member.
type Loan struct {
	MemberID   int32
	BookID     int32
	DateOut    string
	DateDue    string
	DateReturn string // empty if not returned
	Status     string
	Fine       float32
	Notes      string
}

// IsActive returns true if the book is still borrowed
func (l *Loan) IsActive() bool {
	return isActiveStatus(l.Status)
}

// book: 432 bytes
var bookSchema = record.NewSchema("book",
	record.Int32("id"),
	record.Text("title", 100),
	record.Text("author", 100),
	record.Text("publisher", 100),
	record.Int32("year"),
	record.Text("category", 50),
	record.Text("language", 50),
	record.Text("shelf", 20),
	record.Int32("total_copies"),
)

// member: 440 bytes
var memberSchema = record.NewSchema("member",
	record.Int32("id"),
	record.Text("name", 100),
	record.Text("birth_date", 10),
	record.Text("gender", 1),
	record.Text("address", 200),
	record.Text("mobile", 15),
	record.Text("email", 100),
	record.Text("reg_date", 10),
)

// loan: 262 bytes
var loanSchema = record.NewSchema("loan",
	record.Int32("member_id"),
	record.Int32("book_id"),
	record.Text("date_out", 10),
	record.Text("date_due", 10),
	record.Text("date_return", 10),
	record.Text("status", 20),
	record.Float32("fine"),
	record.Text("notes", 200),
)

type bookCodec struct{}

func (bookCodec) Schema() *record.Schema { return bookSchema }

func (bookCodec) Encode(b Book, e *record.Encoder) {
	e.PutInt32(b.ID)
	e.PutText(b.Title)
	e.PutText(b.Author)
	e.PutText(b.Publisher)
	e.PutInt32(b.Year)
	e.PutText(b.Category)
	e.PutText(b.Language)
	e.PutText(b.Shelf)
	e.PutInt32(b.TotalCopies)
}

func (bookCodec) Decode(d *record.Decoder) Book {
	return Book{
		ID:          d.Int32(),
		Title:       d.Text(),
		Author:      d.Text(),
		Publisher:   d.Text(),
		Year:        d.Int32(),
		Category:    d.Text(),
		Language:    d.Text(),
		Shelf:       d.Text(),
		TotalCopies: d.Int32(),
	}
}

type memberCodec struct{}

func (memberCodec) Schema() *record.Schema { return memberSchema }

func (memberCodec) Encode(m Member, e *record.Encoder) {
	e.PutInt32(m.ID)
	e.PutText(m.Name)
	e.PutText(m.BirthDate)
	e.PutText(m.Gender)
	e.PutText(m.Address)
	e.PutText(m.Mobile)
	e.PutText(m.Email)
	e.PutText(m.RegDate)
}

func (memberCodec) Decode(d *record.Decoder) Member {
	return Member{
		ID:        d.Int32(),
		Name:      d.Text(),
		BirthDate: d.Text(),
		Gender:    d.Text(),
		Address:   d.Text(),
		Mobile:    d.Text(),
		Email:     d.Text(),
		RegDate:   d.Text(),
	}
}

type loanCodec struct{}

func (loanCodec) Schema() *record.Schema { return loanSchema }

func (loanCodec) Encode(l Loan, e *record.Encoder) {
	e.PutInt32(l.MemberID)
	e.PutInt32(l.BookID)
	e.PutText(l.DateOut)
	e.PutText(l.DateDue)
	e.PutText(l.DateReturn)
	e.PutText(l.Status)
	e.PutFloat32(l.Fine)
	e.PutText(l.Notes)
}

func (loanCodec) Decode(d *record.Decoder) Loan {
	return Loan{
		MemberID:   d.Int32(),
		BookID:     d.Int32(),
		DateOut:    d.Text(),
		DateDue:    d.Text(),
		DateReturn: d.Text(),
		Status:     d.Text(),
		Fine:       d.Float32(),
		Notes:      d.Text(),
	}
}

var (
	BookCodec   record.Codec[Book]   = bookCodec{}
	MemberCodec record.Codec[Member] = memberCodec{}
	LoanCodec   record.Codec[Loan]   = loanCodec{}
)

func (b *Book) Validate() error {
	if b.TotalCopies < 0 {
		return fmt.Errorf("book %d: %w: total copies is %d", b.ID, ErrInvalid, b.TotalCopies)
	}
	return nil
}

func (l *Loan) Validate() error {
	if l.Fine < 0 || math.IsNaN(float64(l.Fine)) || math.IsInf(float64(l.Fine), 0) {
		return fmt.Errorf("loan of book %d by member %d: %w: fine is %v", l.BookID, l.MemberID, ErrInvalid, l.Fine)
	}
	return nil
}
