package library

import (
	"errors"
	"os"
	"testing"

	"github.com/kjk/flatlib/require"
)

func seedLibrary(t *testing.T, lib *Library, nBooks, nMembers int32) {
	for i := int32(1); i <= nBooks; i++ {
		require.NoError(t, lib.Books.Create(mkBook(i)))
	}
	for i := int32(1); i <= nMembers; i++ {
		require.NoError(t, lib.Members.Create(mkMember(i)))
	}
}

func TestCreateMany(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 2, 5)

	created, err := lib.Loans.CreateMany(5, []int32{1, 2}, "2025-09-07", "2025-09-14")
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, created)

	all, err := lib.Loans.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	for i, l := range all {
		require.Equal(t, int32(5), l.MemberID)
		require.Equal(t, int32(i+1), l.BookID)
		require.Equal(t, StatusBorrow, l.Status)
		require.Equal(t, float32(0), l.Fine)
		require.Equal(t, "", l.DateReturn)
		require.Equal(t, "", l.Notes)
		require.Equal(t, "2025-09-07", l.DateOut)
		require.Equal(t, "2025-09-14", l.DateDue)
	}
}

func TestCreateManyMissing(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 2, 1)

	_, err := lib.Loans.CreateMany(9, []int32{1}, "2025-09-07", "2025-09-14")
	require.ErrorIs(t, err, ErrMemberNotFound)
	_, err = os.Stat(lib.Config.LoanPath())
	require.True(t, os.IsNotExist(err))

	created, err := lib.Loans.CreateMany(1, []int32{7, 2, 8}, "2025-09-07", "2025-09-14")
	require.Equal(t, []int32{2}, created)
	var mbe *MissingBooksError
	require.True(t, errors.As(err, &mbe))
	require.Equal(t, []int32{7, 8}, mbe.IDs)
	require.ErrorIs(t, err, ErrBookNotFound)

	n, err := lib.Loans.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	created, err = lib.Loans.CreateMany(1, nil, "2025-09-07", "2025-09-14")
	require.NoError(t, err)
	require.Len(t, created, 0)
}

func TestListByMember(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 3, 2)
	_, err := lib.Loans.CreateMany(1, []int32{1}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(2, []int32{2}, "2025-09-02", "2025-09-09")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(1, []int32{3}, "2025-09-03", "2025-09-10")
	require.NoError(t, err)

	loans, err := lib.Loans.ListByMember(1)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	require.Equal(t, int32(1), loans[0].BookID)
	require.Equal(t, int32(3), loans[1].BookID)

	loans, err = lib.Loans.ListByMember(3)
	require.NoError(t, err)
	require.Len(t, loans, 0)
}

func TestUpdateOne(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 3, 2)
	_, err := lib.Loans.CreateMany(1, []int32{1, 2}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(2, []int32{3}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(1, []int32{3}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	before, err := lib.Loans.All()
	require.NoError(t, err)

	fine := float32(20)
	notes := "late"
	require.NoError(t, lib.Loans.UpdateOne(1, 2, LoanChanges{Fine: &fine, Notes: &notes}))
	after, err := lib.Loans.All()
	require.NoError(t, err)
	require.Len(t, after, 4)
	require.Equal(t, before[0], after[0])
	require.Equal(t, before[2], after[2])
	require.Equal(t, before[3], after[3])
	exp := before[1]
	exp.Fine = 20
	exp.Notes = "late"
	require.Equal(t, exp, after[1])

	// 3rd loan of member 1 is the last record in the file
	require.NoError(t, lib.Loans.Return(1, 3, "2025-09-05"))
	l, err := lib.Loans.ListByMember(1)
	require.NoError(t, err)
	require.Equal(t, StatusReturned, l[2].Status)
	require.Equal(t, "2025-09-05", l[2].DateReturn)
	require.Equal(t, int32(3), l[2].BookID)
	require.False(t, l[2].IsActive())
}

func TestUpdateOneErrors(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 1, 1)
	_, err := lib.Loans.CreateMany(1, []int32{1}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	before := fileBytes(t, lib.Config.LoanPath())

	status := "Lost"
	for _, n := range []int{0, -1, 2} {
		err = lib.Loans.UpdateOne(1, n, LoanChanges{Status: &status})
		require.ErrorIs(t, err, ErrNotFound)
	}
	err = lib.Loans.UpdateOne(2, 1, LoanChanges{Status: &status})
	require.ErrorIs(t, err, ErrNotFound)

	fine := float32(-1)
	err = lib.Loans.UpdateOne(1, 1, LoanChanges{Fine: &fine})
	require.ErrorIs(t, err, ErrInvalid)

	require.Equal(t, before, fileBytes(t, lib.Config.LoanPath()))
}

func TestDeleteOne(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 3, 2)
	_, err := lib.Loans.CreateMany(1, []int32{1}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(2, []int32{2}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	_, err = lib.Loans.CreateMany(1, []int32{3}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)

	err = lib.Loans.DeleteOne(1, 3)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, lib.Loans.DeleteOne(1, 2))
	all, err := lib.Loans.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int32(1), all[0].BookID)
	require.Equal(t, int32(2), all[1].BookID)
}

func TestLoansSurviveDeletes(t *testing.T) {
	lib := newTestLibrary(t)
	seedLibrary(t, lib, 1, 1)
	_, err := lib.Loans.CreateMany(1, []int32{1}, "2025-09-01", "2025-09-08")
	require.NoError(t, err)
	require.NoError(t, lib.Books.Delete(1))
	require.NoError(t, lib.Members.Delete(1))
	loans, err := lib.Loans.ListByMember(1)
	require.NoError(t, err)
	require.Len(t, loans, 1)
}
