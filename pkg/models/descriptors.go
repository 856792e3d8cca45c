package models

// FieldTypeInfo describes one field type for the factory, validation and
// the palette. The table below is the only place that knows which types
// need options, which are singletons and which skip label validation.
type FieldTypeInfo struct {
	Label        string // palette display name, also the fixed default label of singletons
	NeedsOptions bool   // seeded with one placeholder option at creation
	Singleton    bool   // at most one instance per form
	LabelExempt  bool   // excluded from the non-empty-label save check
}

// FieldTypes is the descriptor table for every field type.
var FieldTypes = map[FieldType]FieldTypeInfo{
	FieldShortText:      {Label: "Short answer"},
	FieldLongText:       {Label: "Paragraph"},
	FieldSingleChoice:   {Label: "Single choice", NeedsOptions: true},
	FieldMultipleChoice: {Label: "Checkboxes", NeedsOptions: true},
	FieldDropdown:       {Label: "Dropdown", NeedsOptions: true},
	FieldRatingMatrix:   {Label: "Rating matrix"},
	FieldDate:           {Label: "Date"},
	FieldFileUpload:     {Label: "File upload"},
	FieldNumber:         {Label: "Number"},
	FieldEmail:          {Label: "Email"},
	FieldPhone:          {Label: "Phone"},
	FieldSubscribe:      {Label: "Subscribe invite", Singleton: true, LabelExempt: true},
	FieldTerms:          {Label: "Terms & conditions", Singleton: true, LabelExempt: true},
}

// FieldTypeOrder is the palette ordering of field types.
var FieldTypeOrder = []FieldType{
	FieldShortText,
	FieldLongText,
	FieldSingleChoice,
	FieldMultipleChoice,
	FieldDropdown,
	FieldRatingMatrix,
	FieldDate,
	FieldFileUpload,
	FieldNumber,
	FieldEmail,
	FieldPhone,
	FieldSubscribe,
	FieldTerms,
}

// ValidFieldType reports whether t is a known field type.
func ValidFieldType(t FieldType) bool {
	_, ok := FieldTypes[t]
	return ok
}

// ContentStyleInfo describes one content block style.
type ContentStyleInfo struct {
	Label       string
	UsesContent bool // divider and spacer carry no content
}

// ContentStyles is the descriptor table for content block styles.
var ContentStyles = map[ContentStyle]ContentStyleInfo{
	ContentSectionTitle:    {Label: "Section title", UsesContent: true},
	ContentBodyText:        {Label: "Body text", UsesContent: true},
	ContentBorderedContent: {Label: "Bordered content", UsesContent: true},
	ContentQuote:           {Label: "Quote", UsesContent: true},
	ContentDivider:         {Label: "Divider"},
	ContentSpacer:          {Label: "Spacer"},
	ContentPlainText:       {Label: "Plain text", UsesContent: true},
}

// ContentStyleOrder is the palette ordering of content block styles.
var ContentStyleOrder = []ContentStyle{
	ContentSectionTitle,
	ContentBodyText,
	ContentBorderedContent,
	ContentQuote,
	ContentDivider,
	ContentSpacer,
	ContentPlainText,
}

// ValidContentStyle reports whether s is a known content style.
func ValidContentStyle(s ContentStyle) bool {
	_, ok := ContentStyles[s]
	return ok
}

// ProfileKeyInfo describes one profile field binding.
type ProfileKeyInfo struct {
	Label           string
	FieldType       FieldType
	DefaultRequired bool
	ContactMethod   bool
}

// ProfileKeys is the descriptor table for profile field bindings.
var ProfileKeys = map[ProfileKey]ProfileKeyInfo{
	ProfileName:   {Label: "Name", FieldType: FieldShortText, DefaultRequired: true},
	ProfileEmail:  {Label: "Email", FieldType: FieldEmail, DefaultRequired: true, ContactMethod: true},
	ProfilePhone:  {Label: "Phone", FieldType: FieldPhone, ContactMethod: true},
	ProfileGender: {Label: "Gender", FieldType: FieldSingleChoice},
}

// ProfileKeyOrder is the display ordering of profile toggles.
var ProfileKeyOrder = []ProfileKey{ProfileName, ProfileEmail, ProfilePhone, ProfileGender}

// ValidProfileKey reports whether k is a known profile key.
func ValidProfileKey(k ProfileKey) bool {
	_, ok := ProfileKeys[k]
	return ok
}
