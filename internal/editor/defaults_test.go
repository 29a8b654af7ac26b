package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplateStateUnknownIDGetsBaseDefault(t *testing.T) {
	base := baseTemplateState()

	for _, id := range []string{"standard", "minimal", "does-not-exist", ""} {
		state := DefaultTemplateState(id)
		assert.Equal(t, base, state, "template id %q should get the base default", id)
	}
}

func TestDefaultTemplateStateIsPure(t *testing.T) {
	first := DefaultTemplateState("tech")
	second := DefaultTemplateState("tech")
	require.Equal(t, first, second)

	// Mutating one result must not leak into later calls
	first.CompanyName = "Acme"
	first.CustomFields[0].Label = "changed"
	first.Items[0].Description = "changed"

	third := DefaultTemplateState("tech")
	assert.Equal(t, second, third)
}

func TestDefaultTemplateStateVariants(t *testing.T) {
	tech := DefaultTemplateState("tech")
	assert.Equal(t, "#7c3aed", tech.AccentColor)
	require.Len(t, tech.CustomFields, 2)
	assert.Equal(t, "field-tech-repository", tech.CustomFields[0].ID)
	assert.Equal(t, "field-tech-sprint", tech.CustomFields[1].ID)

	retail := DefaultTemplateState("retail")
	assert.Equal(t, "#ea580c", retail.AccentColor)
	require.Len(t, retail.CustomFields, 1)
	assert.Equal(t, "field-retail-order-ref", retail.CustomFields[0].ID)

	custom := DefaultTemplateState("custom")
	assert.Equal(t, "#0d9488", custom.AccentColor)
	require.Len(t, custom.CustomFields, 1)
	assert.Equal(t, "field-custom-notes", custom.CustomFields[0].ID)
}

func TestBaseDefaultVisibilityFlags(t *testing.T) {
	state := DefaultTemplateState("standard")

	assert.True(t, state.ShowLogo)
	assert.True(t, state.ShowThankYouNote)
	assert.True(t, state.ShowTermsAndConditions)
	assert.False(t, state.ShowSignature)
	assert.False(t, state.ShowWatermark)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].ID)
	assert.True(t, state.Items[0].Quantity.Equal(decimalOne()))
	assert.True(t, state.Items[0].Rate.IsZero())
	assert.True(t, state.Items[0].Amount.IsZero())
}
