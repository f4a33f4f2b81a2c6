package service

import (
	"context"
	"testing"

	"chayen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShiftServiceFixture() (ShiftService, *fakeShiftRepo, *fakeCatalogRepo) {
	shifts := newFakeShiftRepo()
	catalog := newFakeCatalogRepo()
	catalog.staff["s1"] = models.Staff{ID: "s1", Name: "Nok", Role: "staff"}
	svc := NewShiftService(shifts, catalog, testLogger())
	return svc, shifts, catalog
}

func TestOpenShift(t *testing.T) {
	svc, _, _ := newShiftServiceFixture()

	shift, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{
		StaffID:      "s1",
		StartingCash: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ShiftOpen, shift.Status)
	assert.Equal(t, int64(1000), shift.StartingCash)
	assert.Equal(t, "s1", shift.StaffID)
	assert.NotEmpty(t, shift.ID)
}

func TestOpenShiftRejectsSecondOpen(t *testing.T) {
	svc, shifts, _ := newShiftServiceFixture()

	first, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 1000})
	require.NoError(t, err)

	_, err = svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 500})
	assert.ErrorIs(t, err, models.ErrShiftAlreadyOpen)

	// The existing shift is untouched.
	existing, err := svc.GetShift(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftOpen, existing.Status)
	assert.Equal(t, int64(1000), existing.StartingCash)
	assert.Len(t, shifts.shifts, 1)
}

func TestOpenShiftValidation(t *testing.T) {
	svc, _, _ := newShiftServiceFixture()

	_, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "ghost", StartingCash: 100})
	assert.ErrorIs(t, err, models.ErrStaffNotFound)

	_, err = svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: -1})
	assert.ErrorIs(t, err, models.ErrNegativeCash)
}

func TestCloseShiftBalancedDrawer(t *testing.T) {
	svc, _, _ := newShiftServiceFixture()
	shift, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 1000})
	require.NoError(t, err)

	closed, err := svc.CloseShift(context.Background(), shift.ID, models.CloseShiftRequest{
		EndingCash: 3500, // 1000 starting + 2500 cash sales, no note needed
		CashSales:  2500,
		QRSales:    1200,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ShiftClosed, closed.Status)
	require.NotNil(t, closed.TotalSales)
	assert.Equal(t, int64(3700), *closed.TotalSales)
	require.NotNil(t, closed.ClosedAt)
}

func TestCloseShiftRequiresNoteOnDifference(t *testing.T) {
	svc, _, _ := newShiftServiceFixture()
	shift, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 1000})
	require.NoError(t, err)

	// Counted 3600 against an expected 3500: rejected without a note.
	_, err = svc.CloseShift(context.Background(), shift.ID, models.CloseShiftRequest{
		EndingCash: 3600,
		CashSales:  2500,
		QRSales:    0,
	})
	assert.ErrorIs(t, err, models.ErrReconciliationNote)

	closed, err := svc.CloseShift(context.Background(), shift.ID, models.CloseShiftRequest{
		EndingCash: 3600,
		CashSales:  2500,
		QRSales:    0,
		Note:       "found extra 100 under the tray",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ShiftClosed, closed.Status)
	assert.Equal(t, "found extra 100 under the tray", closed.Note)
}

func TestCloseShiftRejectsClosedShift(t *testing.T) {
	svc, _, _ := newShiftServiceFixture()
	shift, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 1000})
	require.NoError(t, err)

	_, err = svc.CloseShift(context.Background(), shift.ID, models.CloseShiftRequest{EndingCash: 1000})
	require.NoError(t, err)

	_, err = svc.CloseShift(context.Background(), shift.ID, models.CloseShiftRequest{EndingCash: 1000})
	assert.ErrorIs(t, err, models.ErrShiftAlreadyClosed)
}

func TestGetSummary(t *testing.T) {
	svc, shifts, _ := newShiftServiceFixture()
	shift, err := svc.OpenShift(context.Background(), models.OpenShiftRequest{StaffID: "s1", StartingCash: 1000})
	require.NoError(t, err)

	shifts.summaries[shift.ID] = models.ShiftSummary{
		ShiftID:     shift.ID,
		TotalSales:  3700,
		TotalOrders: 42,
		CashSales:   2500,
		QRSales:     1200,
	}

	summary, err := svc.GetSummary(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.CashSales+summary.QRSales, summary.TotalSales)
	assert.Equal(t, int64(42), summary.TotalOrders)

	_, err = svc.GetSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrShiftNotFound)
}
