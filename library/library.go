// Package library keeps books, members and loans in three flat files of
// fixed-size records.
//
// Each file is a flatfile.Store. Books and members are keyed by id, unique
// within their file. Loans refer to a member and a book by id; the ids are
// checked when loans are created and never after, deleting a book or a
// member leaves its loans in place.
package library

import (
	"github.com/kjk/flatlib/config"
	"github.com/kjk/flatlib/flatfile"
)

type Library struct {
	Config  *config.Config
	Books   *Repo[Book]
	Members *Repo[Member]
	Loans   *LoanRepo
}

// Open creates repositories for files in cfg. It doesn't touch the
// disk, files are created on first write.
func Open(cfg *config.Config) *Library {
	books := flatfile.New(cfg.BookPath(), BookCodec)
	members := flatfile.New(cfg.MemberPath(), MemberCodec)
	loans := flatfile.New(cfg.LoanPath(), LoanCodec)
	books.StrictTail = cfg.StrictTail
	members.StrictTail = cfg.StrictTail
	loans.StrictTail = cfg.StrictTail

	l := &Library{
		Config:  cfg,
		Books:   NewRepo("book", books, bookKey),
		Members: NewRepo("member", members, memberKey),
	}
	l.Loans = NewLoanRepo(loans, l.Books, l.Members)
	return l
}

// BookMap returns books keyed by id, from a fresh scan
func (l *Library) BookMap() (map[int32]Book, error) {
	return l.Books.Map()
}

// MemberMap returns members keyed by id, from a fresh scan
func (l *Library) MemberMap() (map[int32]Member, error) {
	return l.Members.Map()
}

// MemberLoans is a group of loans of one member
type MemberLoans struct {
	MemberID int32
	Loans    []Loan
}

// GroupLoansByMember groups loans by member id. Groups are in order
// of first appearance of a member, loans keep their order.
func GroupLoansByMember(loans []Loan) []*MemberLoans {
	var res []*MemberLoans
	idx := map[int32]*MemberLoans{}
	for _, l := range loans {
		g := idx[l.MemberID]
		if g == nil {
			g = &MemberLoans{MemberID: l.MemberID}
			idx[l.MemberID] = g
			res = append(res, g)
		}
		g.Loans = append(g.Loans, l)
	}
	return res
}
