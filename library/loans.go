package library

import (
	"fmt"
	"strings"

	"github.com/kjk/flatlib/flatfile"
	"github.com/kjk/flatlib/log"
)

func isActiveStatus(s string) bool {
	return strings.EqualFold(s, StatusBorrow)
}

// LoanChanges lists fields to change in a loan. nil means no change.
type LoanChanges struct {
	DateOut    *string
	DateDue    *string
	DateReturn *string
	Status     *string
	Fine       *float32
	Notes      *string
}

func (c *LoanChanges) apply(l *Loan) {
	if c.DateOut != nil {
		l.DateOut = *c.DateOut
	}
	if c.DateDue != nil {
		l.DateDue = *c.DateDue
	}
	if c.DateReturn != nil {
		l.DateReturn = *c.DateReturn
	}
	if c.Status != nil {
		l.Status = *c.Status
	}
	if c.Fine != nil {
		l.Fine = *c.Fine
	}
	if c.Notes != nil {
		l.Notes = *c.Notes
	}
}

// LoanRepo stores loans. Loans don't have a unique key, a loan is
// selected by member id and 1-based position among that member's
// loans in file order.
type LoanRepo struct {
	Store   *flatfile.Store[Loan]
	books   *Repo[Book]
	members *Repo[Member]
}

func NewLoanRepo(store *flatfile.Store[Loan], books *Repo[Book], members *Repo[Member]) *LoanRepo {
	return &LoanRepo{
		Store:   store,
		books:   books,
		members: members,
	}
}

func (r *LoanRepo) All() ([]Loan, error) {
	return r.Store.All()
}

func (r *LoanRepo) Count() (int, error) {
	return r.Store.Count()
}

// Active returns loans with status Borrow (case-insensitive)
func (r *LoanRepo) Active() ([]Loan, error) {
	var res []Loan
	for l, err := range r.Store.Scan() {
		if err != nil {
			return nil, err
		}
		if l.IsActive() {
			res = append(res, l)
		}
	}
	return res, nil
}

// ListByMember returns loans of a member in file order
func (r *LoanRepo) ListByMember(memberID int32) ([]Loan, error) {
	var res []Loan
	for l, err := range r.Store.Scan() {
		if err != nil {
			return nil, err
		}
		if l.MemberID == memberID {
			res = append(res, l)
		}
	}
	return res, nil
}

// CreateMany creates a Borrow loan for each book in bookIDs.
// The member must exist, otherwise nothing is written and the error
// is ErrMemberNotFound. Books that don't exist are skipped and
// returned in *MissingBooksError, together with ids of books for
// which loans were created.
func (r *LoanRepo) CreateMany(memberID int32, bookIDs []int32, dateOut, dateDue string) ([]int32, error) {
	ok, err := r.members.Exists(memberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("member %d: %w", memberID, ErrMemberNotFound)
	}
	if len(bookIDs) == 0 {
		return nil, nil
	}
	books, err := r.books.Map()
	if err != nil {
		return nil, err
	}

	var created []int32
	var missing []int32
	for _, bookID := range bookIDs {
		if _, ok := books[bookID]; !ok {
			missing = append(missing, bookID)
			continue
		}
		l := Loan{
			MemberID: memberID,
			BookID:   bookID,
			DateOut:  dateOut,
			DateDue:  dateDue,
			Status:   StatusBorrow,
		}
		if err = r.Store.Append(l); err != nil {
			return created, err
		}
		created = append(created, bookID)
		log.Event("loan_created", "member", memberID, "book", bookID)
	}
	if len(missing) > 0 {
		return created, &MissingBooksError{IDs: missing}
	}
	return created, nil
}

// nthOfMember returns index in all of n-th (1-based) loan of a member
func nthOfMember(all []Loan, memberID int32, n int) (int, error) {
	if n >= 1 {
		seen := 0
		for i := range all {
			if all[i].MemberID != memberID {
				continue
			}
			seen++
			if seen == n {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("loan %d of member %d: %w", n, memberID, ErrNotFound)
}

// UpdateOne changes n-th (1-based) loan of a member. Only fields
// set in ch change.
func (r *LoanRepo) UpdateOne(memberID int32, n int, ch LoanChanges) error {
	all, err := r.Store.All()
	if err != nil {
		return err
	}
	idx, err := nthOfMember(all, memberID, n)
	if err != nil {
		return err
	}
	l := all[idx]
	ch.apply(&l)
	if err = l.Validate(); err != nil {
		return err
	}
	all[idx] = l
	if err = r.Store.OverwriteAll(all); err != nil {
		return err
	}
	log.Event("loan_updated", "member", memberID, "book", l.BookID, "status", l.Status)
	return nil
}

// Return marks n-th loan of a member as returned on date
func (r *LoanRepo) Return(memberID int32, n int, date string) error {
	status := StatusReturned
	return r.UpdateOne(memberID, n, LoanChanges{
		DateReturn: &date,
		Status:     &status,
	})
}

// DeleteOne removes n-th (1-based) loan of a member
func (r *LoanRepo) DeleteOne(memberID int32, n int) error {
	all, err := r.Store.All()
	if err != nil {
		return err
	}
	idx, err := nthOfMember(all, memberID, n)
	if err != nil {
		return err
	}
	removed := all[idx]
	kept := append(all[:idx:idx], all[idx+1:]...)
	if err = r.Store.OverwriteAll(kept); err != nil {
		return err
	}
	log.Event("loan_deleted", "member", memberID, "book", removed.BookID)
	return nil
}
