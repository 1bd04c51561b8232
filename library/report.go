package library

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kjk/flatlib/atomicfile"
	"github.com/kjk/flatlib/log"
)

const reportTimeLayout = "2006-01-02 15:04 (-07:00)"

// books are hard-deleted so every stored book is active
const bookStatusActive = "Active"

type BookReportRow struct {
	Book     Book
	Borrowed int
}

// BookReport compares copies of each book with active loans
type BookReport struct {
	GeneratedAt time.Time
	Rows        []BookReportRow

	TotalTitles int
	TotalCopies int64
	// active loans of books that exist
	BorrowedNow  int
	AvailableNow int64
}

type LoanReportItem struct {
	Loan   Loan
	Title  string
	Author string
}

type LoanReportGroup struct {
	Member    Member
	Items     []LoanReportItem
	TotalFine float64
}

// LoanReport lists active loans grouped by member
type LoanReport struct {
	GeneratedAt time.Time
	// members that are not in member file are not listed
	Groups []*LoanReportGroup

	TotalBorrowed      int
	MembersWithBorrows int
	TotalFines         float64
}

// BuildBookReport scans books and loans
func (l *Library) BuildBookReport(now time.Time) (*BookReport, error) {
	books, err := l.Books.All()
	if err != nil {
		return nil, err
	}
	active, err := l.Loans.Active()
	if err != nil {
		return nil, err
	}
	borrowed := map[int32]int{}
	for _, b := range books {
		borrowed[b.ID] = 0
	}
	rep := &BookReport{
		GeneratedAt: now,
		TotalTitles: len(books),
	}
	for _, ln := range active {
		if _, ok := borrowed[ln.BookID]; ok {
			borrowed[ln.BookID]++
			rep.BorrowedNow++
		}
	}
	for _, b := range books {
		rep.Rows = append(rep.Rows, BookReportRow{Book: b, Borrowed: borrowed[b.ID]})
		rep.TotalCopies += int64(b.TotalCopies)
	}
	rep.AvailableNow = rep.TotalCopies - int64(rep.BorrowedNow)
	return rep, nil
}

// BuildLoanReport scans loans, members and books
func (l *Library) BuildLoanReport(now time.Time) (*LoanReport, error) {
	active, err := l.Loans.Active()
	if err != nil {
		return nil, err
	}
	members, err := l.MemberMap()
	if err != nil {
		return nil, err
	}
	books, err := l.BookMap()
	if err != nil {
		return nil, err
	}
	grouped := GroupLoansByMember(active)
	rep := &LoanReport{
		GeneratedAt:        now,
		TotalBorrowed:      len(active),
		MembersWithBorrows: len(grouped),
	}
	for _, g := range grouped {
		m, ok := members[g.MemberID]
		if !ok {
			log.Verbosef("loan report: skipping %d loans of unknown member %d\n", len(g.Loans), g.MemberID)
			continue
		}
		rg := &LoanReportGroup{Member: m}
		for _, ln := range g.Loans {
			item := LoanReportItem{Loan: ln, Title: "N/A", Author: "N/A"}
			if b, ok := books[ln.BookID]; ok {
				item.Title = b.Title
				item.Author = b.Author
			}
			rg.Items = append(rg.Items, item)
			rg.TotalFine += float64(ln.Fine)
		}
		rep.TotalFines += rg.TotalFine
		rep.Groups = append(rep.Groups, rg)
	}
	return rep, nil
}

// Clip returns at most n first runes of s
func Clip(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func (r *BookReport) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Library Borrow System - Book Summary Report\n")
	fmt.Fprintf(&b, "Generated At : %s\n\n", r.GeneratedAt.Format(reportTimeLayout))
	fmt.Fprintf(&b, "%-6s | %-30s | %-20s | %-5s | %-7s | %-9s | %s\n", "BookID", "Title", "Author", "Year", "Copies", "Borrowed", "Status")
	b.WriteString(strings.Repeat("-", 95) + "\n")
	for _, row := range r.Rows {
		bk := row.Book
		fmt.Fprintf(&b, "%-6d | %-30s | %-20s | %-5d | %-7d | %-9d | %s\n",
			bk.ID, Clip(bk.Title, 30), Clip(bk.Author, 20), bk.Year, bk.TotalCopies, row.Borrowed, bookStatusActive)
	}
	b.WriteString("\n\nSummary (Active Books Only)\n")
	fmt.Fprintf(&b, "- Total Book Titles : %d\n", r.TotalTitles)
	fmt.Fprintf(&b, "- Total Copies      : %d\n", r.TotalCopies)
	fmt.Fprintf(&b, "- Borrowed Now      : %d\n", r.BorrowedNow)
	fmt.Fprintf(&b, "- Available Now     : %d\n", r.AvailableNow)
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

func (r *LoanReport) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	sep := strings.Repeat("-", 120) + "\n"
	fmt.Fprintf(&b, "Library Borrow System - Borrowed Report\n")
	fmt.Fprintf(&b, "Generated At : %s\n\n", r.GeneratedAt.Format(reportTimeLayout))
	for _, g := range r.Groups {
		m := g.Member
		b.WriteString(sep)
		fmt.Fprintf(&b, "MemberID: %-5d | Name: %-30s | Email: %s\n", m.ID, m.Name, m.Email)
		fmt.Fprintf(&b, "%4s%-7s | %-40s | %-20s | %-12s | %-12s | %s\n", "", "BookID", "Title", "Author", "Date Out", "Due Date", "Fine")
		fmt.Fprintf(&b, "%4s%s\n", "", strings.Repeat("-", 110))
		for _, it := range g.Items {
			ln := it.Loan
			fmt.Fprintf(&b, "%4s%-7d | %-40s | %-20s | %-12s | %-12s | %.2f\n",
				"", ln.BookID, Clip(it.Title, 40), Clip(it.Author, 20), ln.DateOut, ln.DateDue, ln.Fine)
		}
		fmt.Fprintf(&b, "%4sTotal Fine: %.2f\n\n", "", g.TotalFine)
	}
	b.WriteString(sep)
	b.WriteString("Summary (Borrowed Only)\n")
	fmt.Fprintf(&b, "- Total Borrowed Books : %d\n", r.TotalBorrowed)
	fmt.Fprintf(&b, "- Members with Borrows : %d\n", r.MembersWithBorrows)
	fmt.Fprintf(&b, "- Total Fines          : %.2f\n", r.TotalFines)
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

func writeReport(path string, r io.WriterTo) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	defer f.RemoveIfNotClosed()
	if _, err = r.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// GenerateReports writes book and loan reports to files from config
func (l *Library) GenerateReports(now time.Time) error {
	timeStart := time.Now()
	br, err := l.BuildBookReport(now)
	if err != nil {
		return err
	}
	lr, err := l.BuildLoanReport(now)
	if err != nil {
		return err
	}
	if err = writeReport(l.Config.BookReportPath(), br); err != nil {
		return err
	}
	if err = writeReport(l.Config.LoanReportPath(), lr); err != nil {
		return err
	}
	log.EventWithDuration("reports_generated", time.Since(timeStart), "books", br.TotalTitles, "loans", lr.TotalBorrowed)
	return nil
}
