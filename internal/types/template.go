package types

// Template identifiers with dedicated editor defaults. Any other id is
// valid and falls back to the base default state.
const (
	TemplateIDTech   = "tech"
	TemplateIDRetail = "retail"
	TemplateIDCustom = "custom"
)

// CustomFieldType enumerates the input kinds a user-defined field can take
type CustomFieldType string

const (
	CustomFieldTypeText     CustomFieldType = "text"
	CustomFieldTypeEmail    CustomFieldType = "email"
	CustomFieldTypeTel      CustomFieldType = "tel"
	CustomFieldTypeDate     CustomFieldType = "date"
	CustomFieldTypeNumber   CustomFieldType = "number"
	CustomFieldTypeURL      CustomFieldType = "url"
	CustomFieldTypeTextarea CustomFieldType = "textarea"
	CustomFieldTypeSelect   CustomFieldType = "select"
)

// CustomFieldSection enumerates the invoice sections a custom field can attach to
type CustomFieldSection string

const (
	SectionHeader  CustomFieldSection = "header"
	SectionCompany CustomFieldSection = "company"
	SectionClient  CustomFieldSection = "client"
	SectionItems   CustomFieldSection = "items"
	SectionTotals  CustomFieldSection = "totals"
	SectionNotes   CustomFieldSection = "notes"
	SectionFooter  CustomFieldSection = "footer"
)

// LayoutStyle is the overall arrangement of the rendered invoice
type LayoutStyle string

const (
	LayoutClassic LayoutStyle = "classic"
	LayoutModern  LayoutStyle = "modern"
	LayoutMinimal LayoutStyle = "minimal"
)

// CornerRadius is the corner rounding applied to invoice panels
type CornerRadius string

const (
	CornerRadiusNone   CornerRadius = "none"
	CornerRadiusSmall  CornerRadius = "small"
	CornerRadiusMedium CornerRadius = "medium"
	CornerRadiusLarge  CornerRadius = "large"
)
