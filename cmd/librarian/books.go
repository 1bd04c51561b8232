package main

import (
	"strings"

	"github.com/kjk/flatlib/library"
)

var bookSchema = library.BookCodec.Schema()

func (a *app) addBook() {
	a.printf("\n== Add Book ==\n")
	id := a.getID("Book ID: ")
	ok, err := a.lib.Books.Exists(id)
	if a.reportErr(err) {
		return
	}
	if ok {
		a.printf("Book ID %d already exists\n", id)
		return
	}
	b := library.Book{
		ID:          id,
		Title:       a.getStr("Title: ", fieldSize(bookSchema, "title"), false),
		Author:      a.getStr("Author: ", fieldSize(bookSchema, "author"), true),
		Publisher:   a.getStr("Publisher: ", fieldSize(bookSchema, "publisher"), true),
		Year:        int32(a.getIntRange("Year (e.g. 2023): ", 0, 9999)),
		Category:    a.getStr("Category: ", fieldSize(bookSchema, "category"), true),
		Language:    a.getStr("Language: ", fieldSize(bookSchema, "language"), true),
		Shelf:       a.getStr("Shelf: ", fieldSize(bookSchema, "shelf"), true),
		TotalCopies: int32(a.getIntMin("Total copies: ", 0)),
	}
	if a.reportErr(a.lib.Books.Create(b)) {
		return
	}
	a.printf("Book added\n")
}

func (a *app) viewBooks() {
	a.printf("\n== View Books ==\n")
	books, err := a.lib.Books.All()
	if a.reportErr(err) {
		return
	}
	if len(books) == 0 {
		a.printf("No books\n")
		return
	}
	a.printf("%-6s %-30s %-20s %-6s %-6s\n", "ID", "Title", "Author", "Year", "Copies")
	a.printf("%s\n", strings.Repeat("-", 80))
	for _, b := range books {
		a.printf("%-6d %-30s %-20s %-6d %-6d\n", b.ID, library.Clip(b.Title, 30), library.Clip(b.Author, 20), b.Year, b.TotalCopies)
	}
}

func (a *app) updateBook() {
	a.printf("\n== Update Book ==\n")
	id := a.getID("Book ID to update: ")
	cur, found, err := a.lib.Books.Find(id)
	if a.reportErr(err) {
		return
	}
	if !found {
		a.printf("Book ID %d not found\n", id)
		return
	}
	a.printf("Current: %+v\n", cur)
	title := a.getOptStr("New title (Enter = keep): ", fieldSize(bookSchema, "title"))
	author := a.getOptStr("New author (Enter = keep): ", fieldSize(bookSchema, "author"))
	publisher := a.getOptStr("New publisher (Enter = keep): ", fieldSize(bookSchema, "publisher"))
	year := a.getOptIntMin("New year (Enter = keep): ", 0)
	category := a.getOptStr("New category (Enter = keep): ", fieldSize(bookSchema, "category"))
	language := a.getOptStr("New language (Enter = keep): ", fieldSize(bookSchema, "language"))
	shelf := a.getOptStr("New shelf (Enter = keep): ", fieldSize(bookSchema, "shelf"))
	copies := a.getOptIntMin("New total copies (Enter = keep): ", 0)

	err = a.lib.Books.Update(id, func(b *library.Book) {
		setIf(&b.Title, title)
		setIf(&b.Author, author)
		setIf(&b.Publisher, publisher)
		if year != nil {
			b.Year = int32(*year)
		}
		setIf(&b.Category, category)
		setIf(&b.Language, language)
		setIf(&b.Shelf, shelf)
		if copies != nil {
			b.TotalCopies = int32(*copies)
		}
	})
	if a.reportErr(err) {
		return
	}
	a.printf("Book updated\n")
}

func (a *app) deleteBook() {
	a.printf("\n== Delete Book ==\n")
	id := a.getID("Book ID to delete: ")
	if a.reportErr(a.lib.Books.Delete(id)) {
		return
	}
	a.printf("Book deleted\n")
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
