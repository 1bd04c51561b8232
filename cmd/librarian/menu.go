package main

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type menuItem struct {
	key  string
	name string
	fn   func()
}

// runMenu shows items until user picks 0
func (a *app) runMenu(title string, items []menuItem) {
	for {
		a.printf("\n-- %s --\n", title)
		for _, it := range items {
			a.printf("%s. %s\n", it.key, it.name)
		}
		a.printf("0. Back\n")
		c := strings.TrimSpace(a.readLine("Choose: "))
		if c == "0" {
			return
		}
		found := false
		for _, it := range items {
			if it.key == c {
				it.fn()
				found = true
				break
			}
		}
		if !found {
			a.printf("Invalid choice\n")
		}
	}
}

func (a *app) mainMenu() {
	defer func() {
		if r := recover(); r != nil {
			if r == errInputClosed {
				a.printf("\nBye\n")
				return
			}
			panic(r)
		}
	}()

	for {
		a.printf("\n===== Library System =====\n")
		a.printf("1. Books\n2. Members\n3. Loans\n4. Generate reports\n5. Backup\n6. Restore\n0. Exit\n")
		c := strings.TrimSpace(a.readLine("Choose: "))
		switch c {
		case "1":
			a.runMenu("Books", []menuItem{
				{"1", "Add book", a.addBook},
				{"2", "View books", a.viewBooks},
				{"3", "Update book", a.updateBook},
				{"4", "Delete book", a.deleteBook},
			})
		case "2":
			a.runMenu("Members", []menuItem{
				{"1", "Add member", a.addMember},
				{"2", "View members", a.viewMembers},
				{"3", "Update member", a.updateMember},
				{"4", "Delete member", a.deleteMember},
			})
		case "3":
			a.runMenu("Loans", []menuItem{
				{"1", "Add loans", a.addLoans},
				{"2", "View loans", a.viewLoans},
				{"3", "Update loan", a.updateLoan},
				{"4", "Delete loan", a.deleteLoan},
			})
		case "4":
			a.generateReports()
		case "5":
			a.backup()
		case "6":
			a.restore()
		case "0":
			a.printf("Bye\n")
			return
		default:
			a.printf("Invalid choice\n")
		}
	}
}

func (a *app) generateReports() {
	err := a.lib.GenerateReports(time.Now())
	if a.reportErr(err) {
		return
	}
	cfg := a.lib.Config
	a.printf("Reports written: %s, %s\n", cfg.BookReportPath(), cfg.LoanReportPath())
}

func (a *app) backup() {
	dst := a.getStr("Backup file (.zip, .zip.zst, .zip.br): ", 4096, false)
	files, err := a.lib.Backup(dst)
	if a.reportErr(err) {
		return
	}
	for _, f := range files {
		a.printf("  %s %s\n", f.Name, humanize.Bytes(uint64(len(f.Data))))
	}
	a.printf("Backed up %d files to %s\n", len(files), dst)
}

func (a *app) restore() {
	src := a.getStr("Backup file to restore: ", 4096, false)
	if !a.confirm("This replaces current data files. Continue? (y/n): ") {
		a.printf("Cancelled\n")
		return
	}
	files, err := a.lib.Restore(src)
	if a.reportErr(err) {
		return
	}
	for _, f := range files {
		a.printf("  %s %s, saved %s\n", f.Name, humanize.Bytes(uint64(len(f.Data))), humanize.Time(f.Modified))
	}
	a.printf("Restored %d files\n", len(files))
}
