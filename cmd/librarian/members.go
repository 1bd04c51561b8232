package main

import (
	"strings"

	"github.com/kjk/flatlib/library"
)

var memberSchema = library.MemberCodec.Schema()

func (a *app) getGender(allowEmpty bool) string {
	for {
		s := strings.ToUpper(a.getStr("Gender (M/F/O): ", 1, allowEmpty))
		if (s == "" && allowEmpty) || s == "M" || s == "F" || s == "O" {
			return s
		}
		a.printf("Gender must be M, F or O\n")
	}
}

func (a *app) addMember() {
	a.printf("\n== Add Member ==\n")
	id := a.getID("Member ID: ")
	ok, err := a.lib.Members.Exists(id)
	if a.reportErr(err) {
		return
	}
	if ok {
		a.printf("Member ID %d already exists\n", id)
		return
	}
	m := library.Member{
		ID:        id,
		Name:      a.getStr("Name: ", fieldSize(memberSchema, "name"), false),
		BirthDate: a.getDate("Birth date (YYYY-MM-DD): ", false),
		Gender:    a.getGender(false),
		Address:   a.getStr("Address: ", fieldSize(memberSchema, "address"), true),
		Mobile:    a.getStr("Mobile: ", fieldSize(memberSchema, "mobile"), true),
		Email:     a.getStr("Email: ", fieldSize(memberSchema, "email"), true),
		RegDate:   a.getDate("Registration date (YYYY-MM-DD): ", false),
	}
	if a.reportErr(a.lib.Members.Create(m)) {
		return
	}
	a.printf("Member added\n")
}

func (a *app) viewMembers() {
	a.printf("\n== View Members ==\n")
	members, err := a.lib.Members.All()
	if a.reportErr(err) {
		return
	}
	if len(members) == 0 {
		a.printf("No members\n")
		return
	}
	a.printf("%-6s %-25s %-12s %-15s %-25s\n", "ID", "Name", "Birth Date", "Mobile", "Email")
	a.printf("%s\n", strings.Repeat("-", 90))
	for _, m := range members {
		a.printf("%-6d %-25s %-12s %-15s %-25s\n", m.ID, library.Clip(m.Name, 25), m.BirthDate, m.Mobile, library.Clip(m.Email, 25))
	}
}

func (a *app) updateMember() {
	a.printf("\n== Update Member ==\n")
	id := a.getID("Member ID to update: ")
	cur, found, err := a.lib.Members.Find(id)
	if a.reportErr(err) {
		return
	}
	if !found {
		a.printf("Member ID %d not found\n", id)
		return
	}
	a.printf("Current: %+v\n", cur)
	name := a.getOptStr("New name (Enter = keep): ", fieldSize(memberSchema, "name"))
	birth := a.getOptDate("New birth date (Enter = keep): ")
	gender := a.getGender(true)
	address := a.getOptStr("New address (Enter = keep): ", fieldSize(memberSchema, "address"))
	mobile := a.getOptStr("New mobile (Enter = keep): ", fieldSize(memberSchema, "mobile"))
	email := a.getOptStr("New email (Enter = keep): ", fieldSize(memberSchema, "email"))
	regDate := a.getOptDate("New registration date (Enter = keep): ")

	err = a.lib.Members.Update(id, func(m *library.Member) {
		setIf(&m.Name, name)
		setIf(&m.BirthDate, birth)
		if gender != "" {
			m.Gender = gender
		}
		setIf(&m.Address, address)
		setIf(&m.Mobile, mobile)
		setIf(&m.Email, email)
		setIf(&m.RegDate, regDate)
	})
	if a.reportErr(err) {
		return
	}
	a.printf("Member updated\n")
}

func (a *app) deleteMember() {
	a.printf("\n== Delete Member ==\n")
	id := a.getID("Member ID to delete: ")
	if a.reportErr(a.lib.Members.Delete(id)) {
		return
	}
	a.printf("Member deleted\n")
}
