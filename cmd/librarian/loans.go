package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kjk/flatlib/library"
)

var loanSchema = library.LoanCodec.Schema()

func (a *app) addLoans() {
	a.printf("\n== Add Loans ==\n")
	memberID := a.getID("Member ID: ")
	ok, err := a.lib.Members.Exists(memberID)
	if a.reportErr(err) {
		return
	}
	if !ok {
		a.printf("Member ID %d not found\n", memberID)
		return
	}

	var bookIDs []int32
	for {
		s := strings.ToLower(strings.TrimSpace(a.readLine("Book ID to borrow ('done' to finish): ")))
		if s == "done" {
			break
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			a.printf("Book ID must be a number\n")
			continue
		}
		bookID := int32(n)
		ok, err := a.lib.Books.Exists(bookID)
		if a.reportErr(err) {
			return
		}
		if !ok {
			a.printf("Book ID %d not found\n", bookID)
			continue
		}
		bookIDs = append(bookIDs, bookID)
		a.printf("  added book %d\n", bookID)
	}
	if len(bookIDs) == 0 {
		a.printf("No books, cancelled\n")
		return
	}
	dateOut := a.getDate("Date out (YYYY-MM-DD): ", false)
	dateDue := a.getDate("Date due (YYYY-MM-DD): ", false)

	created, err := a.lib.Loans.CreateMany(memberID, bookIDs, dateOut, dateDue)
	var mbe *library.MissingBooksError
	if errors.As(err, &mbe) {
		// a book was deleted since we checked
		a.printf("Skipped: %s\n", mbe)
	} else if a.reportErr(err) {
		return
	}
	a.printf("Added %d loans for member %d\n", len(created), memberID)
}

func (a *app) viewLoans() {
	a.printf("\n== View Loans ==\n")
	loans, err := a.lib.Loans.All()
	if a.reportErr(err) {
		return
	}
	if len(loans) == 0 {
		a.printf("No loans\n")
		return
	}
	members, err := a.lib.MemberMap()
	if a.reportErr(err) {
		return
	}
	books, err := a.lib.BookMap()
	if a.reportErr(err) {
		return
	}
	sep := strings.Repeat("-", 80)
	for _, g := range library.GroupLoansByMember(loans) {
		name := "Unknown Member"
		if m, ok := members[g.MemberID]; ok {
			name = m.Name
		}
		a.printf("%s\n", sep)
		a.printf("Member ID: %d | Name: %s\n", g.MemberID, name)
		a.printf("%4s%-7s | %-40s | %s\n", "", "BookID", "Title", "Status")
		for _, l := range g.Loans {
			title := "Unknown Book"
			if b, ok := books[l.BookID]; ok {
				title = b.Title
			}
			a.printf("%4s%-7d | %-40s | %s\n", "", l.BookID, library.Clip(title, 40), l.Status)
		}
	}
	a.printf("%s\n", sep)
}

// pickLoan shows loans of a member and asks for 1-based position.
// Returns 0 if member has no loans.
func (a *app) pickLoan(memberID int32, prompt string) (int, library.Loan) {
	loans, err := a.lib.Loans.ListByMember(memberID)
	if a.reportErr(err) {
		return 0, library.Loan{}
	}
	if len(loans) == 0 {
		a.printf("No loans for member %d\n", memberID)
		return 0, library.Loan{}
	}
	books, err := a.lib.BookMap()
	if a.reportErr(err) {
		return 0, library.Loan{}
	}
	a.printf("\nLoans of member %d:\n", memberID)
	for i, l := range loans {
		title := "Unknown Book"
		if b, ok := books[l.BookID]; ok {
			title = b.Title
		}
		a.printf("  %d: Book %d (%s) - %s\n", i+1, l.BookID, library.Clip(title, 30), l.Status)
	}
	n := int(a.getIntRange(prompt, 1, int64(len(loans))))
	return n, loans[n-1]
}

func (a *app) updateLoan() {
	a.printf("\n== Update Loan ==\n")
	a.viewLoans()
	memberID := a.getID("Member ID: ")
	n, cur := a.pickLoan(memberID, "Loan to update: ")
	if n == 0 {
		return
	}
	a.printf("Current: %+v\n", cur)
	ch := library.LoanChanges{
		DateOut:    a.getOptDate("New date out (Enter = keep): "),
		DateDue:    a.getOptDate("New date due (Enter = keep): "),
		DateReturn: a.getOptDate("New date returned (Enter = keep): "),
		Status:     a.getOptStr("New status (Enter = keep): ", fieldSize(loanSchema, "status")),
		Fine:       a.getFloat("New fine (Enter = keep): ", 0, true),
		Notes:      a.getOptStr("New notes (Enter = keep): ", fieldSize(loanSchema, "notes")),
	}
	if a.reportErr(a.lib.Loans.UpdateOne(memberID, n, ch)) {
		return
	}
	a.printf("Loan updated\n")
}

func (a *app) deleteLoan() {
	a.printf("\n== Delete Loan ==\n")
	a.viewLoans()
	memberID := a.getID("Member ID: ")
	n, _ := a.pickLoan(memberID, "Loan to delete: ")
	if n == 0 {
		return
	}
	if !a.confirm("Delete this loan? (y/n): ") {
		a.printf("Cancelled\n")
		return
	}
	if a.reportErr(a.lib.Loans.DeleteOne(memberID, n)) {
		return
	}
	a.printf("Loan deleted\n")
}
