package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalOne() decimal.Decimal {
	return decimal.NewFromInt(1)
}

func newTestStore() *Store {
	return NewStore(logger.NewNop())
}

func userCtx(userID string) context.Context {
	return types.SetUserID(context.Background(), userID)
}

func TestStoreRequiresAuthentication(t *testing.T) {
	store := newTestStore()

	_, err := store.State(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsAuthentication(err))

	_, err = store.AddInvoiceItem(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsAuthentication(err))
}

func TestStoreLazySessionAndDefaults(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	id, err := store.ActiveTemplateID(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultActiveTemplateID, id)

	state, err := store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateState(DefaultActiveTemplateID), state)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := newTestStore()

	_, err := store.UpdateTemplateState(userCtx("user-1"), map[string]any{
		"companyName": "Acme Ltd",
	})
	require.NoError(t, err)

	other, err := store.State(userCtx("user-2"))
	require.NoError(t, err)
	assert.Empty(t, other.CompanyName)
}

func TestSetActiveTemplatePreservesEdits(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	_, err := store.UpdateTemplateState(ctx, map[string]any{"companyName": "Acme Ltd"})
	require.NoError(t, err)

	techState, err := store.SetActiveTemplate(ctx, "tech")
	require.NoError(t, err)
	assert.Empty(t, techState.CompanyName)
	assert.Equal(t, "#7c3aed", techState.AccentColor)

	// Switching back returns the edited state, not a fresh default
	back, err := store.SetActiveTemplate(ctx, DefaultActiveTemplateID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", back.CompanyName)
}

func TestUpdateTemplateStateShallowMerge(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	before, err := store.State(ctx)
	require.NoError(t, err)

	after, err := store.UpdateTemplateState(ctx, map[string]any{
		"companyName": "Acme Ltd",
		"taxRate":     10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Ltd", after.CompanyName)
	assert.True(t, after.TaxRate.Equal(decimal.NewFromInt(10)))
	// Untouched fields survive
	assert.Equal(t, before.Terms, after.Terms)
	assert.Equal(t, before.Items, after.Items)
}

func TestToggleElement(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	state, err := store.ToggleElement(ctx, "watermark")
	require.NoError(t, err)
	assert.True(t, state.ShowWatermark)

	state, err = store.ToggleElement(ctx, "watermark")
	require.NoError(t, err)
	assert.False(t, state.ShowWatermark)
}

func TestToggleElementRejectsUnknown(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	_, err := store.ToggleElement(ctx, "companyName")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCustomFieldLifecycle(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	state, err := store.AddCustomField(ctx, CustomField{
		Type:    types.CustomFieldTypeText,
		Label:   "PO Number",
		Section: types.SectionHeader,
		Visible: true,
	})
	require.NoError(t, err)
	require.Len(t, state.CustomFields, 1)

	fieldID := state.CustomFields[0].ID
	assert.True(t, strings.HasPrefix(fieldID, "field-"))

	label := "Purchase Order"
	state, err = store.UpdateCustomField(ctx, fieldID, CustomFieldPatch{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "Purchase Order", state.CustomFields[0].Label)
	// Unpatched fields unchanged
	assert.Equal(t, types.CustomFieldTypeText, state.CustomFields[0].Type)

	state, err = store.RemoveCustomField(ctx, fieldID)
	require.NoError(t, err)
	assert.Empty(t, state.CustomFields)
}

func TestUpdateCustomFieldNotFound(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	label := "x"
	_, err := store.UpdateCustomField(ctx, "field-missing", CustomFieldPatch{Label: &label})
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestRemoveCustomFieldAbsentIsNoOp(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	before, err := store.State(ctx)
	require.NoError(t, err)

	after, err := store.RemoveCustomField(ctx, "field-missing")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddRemoveInvoiceItemRestoresState(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	before, err := store.State(ctx)
	require.NoError(t, err)

	state, err := store.AddInvoiceItem(ctx)
	require.NoError(t, err)
	require.Len(t, state.Items, 2)
	newID := state.Items[1].ID
	assert.Equal(t, 2, newID)
	assert.True(t, state.Items[1].Quantity.Equal(decimalOne()))
	assert.True(t, state.Items[1].Visible)

	after, err := store.RemoveInvoiceItem(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNextItemIDAfterGapRemoval(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	_, err := store.AddInvoiceItem(ctx) // id 2
	require.NoError(t, err)
	state, err := store.AddInvoiceItem(ctx) // id 3
	require.NoError(t, err)
	require.Equal(t, 3, state.Items[2].ID)

	_, err = store.RemoveInvoiceItem(ctx, 3)
	require.NoError(t, err)

	// Max id is back to 2, so the next id is 3 again
	state, err = store.AddInvoiceItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Items[2].ID)
}

func TestUpdateInvoiceItemDoesNotDeriveAmount(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	qty := decimal.NewFromInt(4)
	rate := decimal.NewFromInt(25)
	state, err := store.UpdateInvoiceItem(ctx, 1, InvoiceItemPatch{
		Quantity: &qty,
		Rate:     &rate,
	})
	require.NoError(t, err)

	// Amount stays as it was; recomputation is the caller's call
	assert.True(t, state.Items[0].Amount.IsZero())
}

func TestCalculateTotalsWorkedExample(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	amount1 := decimal.NewFromInt(100)
	_, err := store.UpdateInvoiceItem(ctx, 1, InvoiceItemPatch{Amount: &amount1})
	require.NoError(t, err)

	state, err := store.AddInvoiceItem(ctx)
	require.NoError(t, err)
	amount2 := decimal.NewFromInt(50)
	_, err = store.UpdateInvoiceItem(ctx, state.Items[1].ID, InvoiceItemPatch{Amount: &amount2})
	require.NoError(t, err)

	_, err = store.UpdateTemplateState(ctx, map[string]any{
		"taxRate":        10,
		"discountAmount": 20,
		"shippingCost":   5,
	})
	require.NoError(t, err)

	state, err = store.CalculateTotals(ctx)
	require.NoError(t, err)

	assert.True(t, state.Subtotal.Equal(decimal.NewFromInt(150)), "subtotal = %s", state.Subtotal)
	assert.True(t, state.TaxAmount.Equal(decimal.NewFromInt(15)), "tax = %s", state.TaxAmount)
	assert.True(t, state.Total.Equal(decimal.NewFromInt(150)), "total = %s", state.Total)
}

func TestCalculateTotalsIsIdempotent(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	amount := decimal.NewFromInt(75)
	_, err := store.UpdateInvoiceItem(ctx, 1, InvoiceItemPatch{Amount: &amount})
	require.NoError(t, err)
	_, err = store.UpdateTemplateState(ctx, map[string]any{"taxRate": 20})
	require.NoError(t, err)

	first, err := store.CalculateTotals(ctx)
	require.NoError(t, err)
	second, err := store.CalculateTotals(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTotalsAreSnapshotNotReactive(t *testing.T) {
	store := newTestStore()
	ctx := userCtx("user-1")

	amount := decimal.NewFromInt(100)
	_, err := store.UpdateInvoiceItem(ctx, 1, InvoiceItemPatch{Amount: &amount})
	require.NoError(t, err)

	state, err := store.CalculateTotals(ctx)
	require.NoError(t, err)
	require.True(t, state.Subtotal.Equal(decimal.NewFromInt(100)))

	// Editing the item afterwards must not touch the stored totals
	bigger := decimal.NewFromInt(999)
	state, err = store.UpdateInvoiceItem(ctx, 1, InvoiceItemPatch{Amount: &bigger})
	require.NoError(t, err)
	assert.True(t, state.Subtotal.Equal(decimal.NewFromInt(100)))
}
