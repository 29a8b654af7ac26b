package editor

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/types"
)

// CustomFieldPatch is a partial update for one custom field. Nil fields
// are left unchanged.
type CustomFieldPatch struct {
	Type     *types.CustomFieldType    `json:"type"`
	Label    *string                   `json:"label"`
	Value    *string                   `json:"value"`
	Section  *types.CustomFieldSection `json:"section"`
	Required *bool                     `json:"required"`
	Options  []string                  `json:"options"`
	Visible  *bool                     `json:"visible"`
}

// InvoiceItemPatch is a partial update for one invoice item. Amount is
// applied as given; it is never derived from quantity*rate here.
type InvoiceItemPatch struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Rate        *decimal.Decimal `json:"rate"`
	Amount      *decimal.Decimal `json:"amount"`
	Visible     *bool            `json:"visible"`
}

// toggleableElements is the closed set accepted by ToggleElement.
var toggleableElements = map[string]func(*TemplateState){
	"logo":               func(s *TemplateState) { s.ShowLogo = !s.ShowLogo },
	"thankYouNote":       func(s *TemplateState) { s.ShowThankYouNote = !s.ShowThankYouNote },
	"termsAndConditions": func(s *TemplateState) { s.ShowTermsAndConditions = !s.ShowTermsAndConditions },
	"signature":          func(s *TemplateState) { s.ShowSignature = !s.ShowSignature },
	"watermark":          func(s *TemplateState) { s.ShowWatermark = !s.ShowWatermark },
}

// session holds one user's editor state for the lifetime of the process.
// Template entries are created lazily on first access and never removed.
type session struct {
	activeTemplateID string
	templates        map[string]*TemplateState
}

// Store owns all in-editor template state. Every mutation operates on the
// caller's active template only. The browser original was single-threaded;
// here sessions are shared across request goroutines, so access is
// serialized with a mutex.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	logger   *logger.Logger
}

// NewStore creates an empty editor store.
func NewStore(logger *logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*session),
		logger:   logger,
	}
}

func (st *Store) sessionFor(ctx context.Context) (*session, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no user session").
			WithHint("Authentication required to edit templates").
			Mark(ierr.ErrAuthentication)
	}

	sess, ok := st.sessions[userID]
	if !ok {
		sess = &session{
			activeTemplateID: DefaultActiveTemplateID,
			templates:        make(map[string]*TemplateState),
		}
		st.sessions[userID] = sess
	}
	return sess, nil
}

func (sess *session) active() *TemplateState {
	state, ok := sess.templates[sess.activeTemplateID]
	if !ok {
		state = DefaultTemplateState(sess.activeTemplateID)
		sess.templates[sess.activeTemplateID] = state
	}
	return state
}

// ActiveTemplateID returns the caller's active template id.
func (st *Store) ActiveTemplateID(ctx context.Context) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return "", err
	}
	return sess.activeTemplateID, nil
}

// SetActiveTemplate switches the active template, lazily creating its
// state from the per-id default.
func (st *Store) SetActiveTemplate(ctx context.Context, templateID string) (*TemplateState, error) {
	if templateID == "" {
		return nil, ierr.NewError("empty template id").
			WithHint("Template id is required").
			Mark(ierr.ErrValidation)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	sess.activeTemplateID = templateID
	return sess.active().Clone(), nil
}

// State returns a copy of the active template's state.
func (st *Store) State(ctx context.Context) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}
	return sess.active().Clone(), nil
}

// UpdateTemplateState shallow-merges a free-form partial into the active
// template's state. Field values are trusted.
func (st *Store) UpdateTemplateState(ctx context.Context, patch map[string]any) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	if err := state.ApplyPatch(patch); err != nil {
		return nil, err
	}
	return state.Clone(), nil
}

// ToggleElement flips exactly one of the five toggleable visibility flags.
func (st *Store) ToggleElement(ctx context.Context, element string) (*TemplateState, error) {
	toggle, ok := toggleableElements[element]
	if !ok {
		return nil, ierr.NewError("unknown toggleable element").
			WithHintf("Element %q cannot be toggled", element).
			WithReportableDetails(map[string]any{
				"element": element,
				"allowed": lo.Keys(toggleableElements),
			}).
			Mark(ierr.ErrValidation)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	toggle(state)
	return state.Clone(), nil
}

// AddCustomField appends a custom field with a generated id.
func (st *Store) AddCustomField(ctx context.Context, field CustomField) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	field.ID = NewCustomFieldID()

	state := sess.active()
	state.CustomFields = append(state.CustomFields, field)
	return state.Clone(), nil
}

// UpdateCustomField merges a partial into the field with the given id.
func (st *Store) UpdateCustomField(ctx context.Context, fieldID string, patch CustomFieldPatch) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	_, idx, found := lo.FindIndexOf(state.CustomFields, func(f CustomField) bool {
		return f.ID == fieldID
	})
	if !found {
		return nil, ierr.NewError("custom field not found").
			WithHintf("No custom field with id %q", fieldID).
			Mark(ierr.ErrNotFound)
	}

	field := &state.CustomFields[idx]
	if patch.Type != nil {
		field.Type = *patch.Type
	}
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Value != nil {
		field.Value = *patch.Value
	}
	if patch.Section != nil {
		field.Section = *patch.Section
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil {
		field.Options = append([]string(nil), patch.Options...)
	}
	if patch.Visible != nil {
		field.Visible = *patch.Visible
	}

	return state.Clone(), nil
}

// RemoveCustomField deletes the field with the given id. Removing an
// absent id is a no-op.
func (st *Store) RemoveCustomField(ctx context.Context, fieldID string) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	state.CustomFields = lo.Filter(state.CustomFields, func(f CustomField, _ int) bool {
		return f.ID != fieldID
	})
	return state.Clone(), nil
}

// AddInvoiceItem appends a fresh item with id = max existing id + 1.
func (st *Store) AddInvoiceItem(ctx context.Context) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	state.Items = append(state.Items, InvoiceItem{
		ID:          state.NextItemID(),
		Description: "",
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.Zero,
		Amount:      decimal.Zero,
		Visible:     true,
	})
	return state.Clone(), nil
}

// UpdateInvoiceItem merges a partial into the item with the given id.
func (st *Store) UpdateInvoiceItem(ctx context.Context, itemID int, patch InvoiceItemPatch) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	_, idx, found := lo.FindIndexOf(state.Items, func(item InvoiceItem) bool {
		return item.ID == itemID
	})
	if !found {
		return nil, ierr.NewError("invoice item not found").
			WithHintf("No invoice item with id %d", itemID).
			Mark(ierr.ErrNotFound)
	}

	item := &state.Items[idx]
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Rate != nil {
		item.Rate = *patch.Rate
	}
	if patch.Amount != nil {
		item.Amount = *patch.Amount
	}
	if patch.Visible != nil {
		item.Visible = *patch.Visible
	}

	return state.Clone(), nil
}

// RemoveInvoiceItem deletes the item with the given id. Removing an
// absent id is a no-op.
func (st *Store) RemoveInvoiceItem(ctx context.Context, itemID int) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	state.Items = lo.Filter(state.Items, func(item InvoiceItem, _ int) bool {
		return item.ID != itemID
	})
	return state.Clone(), nil
}

// CalculateTotals recomputes the totals snapshot for the active template.
func (st *Store) CalculateTotals(ctx context.Context) (*TemplateState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.sessionFor(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.active()
	state.CalculateTotals()
	return state.Clone(), nil
}
