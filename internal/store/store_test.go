package store

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/labelstruct-go/internal/validation"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/models"
)

func newTestStore() *Store {
	return New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func label(number string) models.LabelData {
	return models.LabelData{
		LabelNumber: number,
		Material:    "TARIMSAL",
		Dimension:   "3x171",
		LotCode:     "25/627",
		Weight:      858,
		Date:        "2025-10-16",
	}
}

func TestCreate_AssignsIncreasingIDs(t *testing.T) {
	s := newTestStore()

	a, err := s.Create(label("A108"))
	require.NoError(t, err)
	b, err := s.Create(label("A109"))
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, []models.Label{a, b}, s.List())
}

func TestCreate_NormalizesLabelNumber(t *testing.T) {
	s := newTestStore()

	l, err := s.Create(label("  a108 "))

	require.NoError(t, err)
	assert.Equal(t, "A108", l.LabelNumber)
}

func TestCreate_RejectsInvalid(t *testing.T) {
	s := newTestStore()

	_, err := s.Create(label("108A"))

	assert.True(t, errors.Is(err, validation.ErrValidation))
	assert.Empty(t, s.List())
}

func TestIDsFollowMaxExisting(t *testing.T) {
	s := newTestStore()
	for _, n := range []string{"A1", "A2", "A3"} {
		_, err := s.Create(label(n))
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(1))
	l, err := s.Create(label("A4"))
	require.NoError(t, err)
	assert.Equal(t, 4, l.ID)

	require.NoError(t, s.Delete(4))
	l, err = s.Create(label("A5"))
	require.NoError(t, err)
	assert.Equal(t, 4, l.ID)
}

func TestUpdate(t *testing.T) {
	s := newTestStore()
	created, err := s.Create(label("A108"))
	require.NoError(t, err)

	data := label("B200")
	data.Weight = 1000
	updated, err := s.Update(created.ID, data)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "B200", updated.LabelNumber)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, got.Weight)
}

func TestUpdate_NotFound(t *testing.T) {
	_, err := newTestStore().Update(42, label("A1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	assert.ErrorIs(t, newTestStore().Delete(1), ErrNotFound)
}

func TestBulkInsert(t *testing.T) {
	s := newTestStore()
	_, err := s.Create(label("A1"))
	require.NoError(t, err)

	inserted, err := s.BulkInsert([]models.LabelData{label("B1"), label("B2"), label("B3")})

	require.NoError(t, err)
	require.Len(t, inserted, 3)
	assert.Equal(t, []int{2, 3, 4}, []int{inserted[0].ID, inserted[1].ID, inserted[2].ID})
	assert.Len(t, s.List(), 4)
}

func TestBulkInsert_AllOrNothing(t *testing.T) {
	s := newTestStore()

	_, err := s.BulkInsert([]models.LabelData{label("B1"), label("bad-1")})

	assert.True(t, errors.Is(err, validation.ErrValidation))
	assert.Empty(t, s.List())
}

func TestSearch(t *testing.T) {
	s := newTestStore()
	a := label("A108")
	b := label("B200")
	b.Material = "Endüstriyel"
	b.LotCode = "25/700"
	_, err := s.BulkInsert([]models.LabelData{a, b})
	require.NoError(t, err)

	assert.Len(t, s.Search(""), 2)
	assert.Len(t, s.Search("a10"), 1)
	assert.Len(t, s.Search("TARIM"), 1)
	assert.Len(t, s.Search("25/7"), 1)
	assert.Empty(t, s.Search("zzz"))
}

func TestList_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	_, err := s.Create(label("A1"))
	require.NoError(t, err)

	list := s.List()
	list[0].LabelNumber = "Z9"

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.LabelNumber)
}

func TestCheck(t *testing.T) {
	s := newTestStore()

	assert.NoError(t, s.Check(label(" a108 ")))

	zero := label("A108")
	zero.Weight = 0
	assert.ErrorIs(t, s.Check(zero), validation.ErrValidation)
	assert.Empty(t, s.List(), "Check does not store")
}

func TestSummarize(t *testing.T) {
	s := newTestStore()
	a := label("A108")
	b := label("B200")
	b.Weight = 6005
	b.LotCode = "25/700"
	_, err := s.BulkInsert([]models.LabelData{a, b})
	require.NoError(t, err)

	assert.Equal(t, Summary{Count: 2, TotalWeight: 6863}, s.Summarize(""))
	assert.Equal(t, Summary{Count: 1, TotalWeight: 6005}, s.Summarize("b2"))
	assert.Equal(t, Summary{}, s.Summarize("zzz"))
}
