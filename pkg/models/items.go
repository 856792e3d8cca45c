package models

// ItemKind discriminates the two item variants. It is the single source
// of truth for telling fields and content blocks apart; use IsField /
// IsContentBlock instead of probing optional attributes.
type ItemKind string

const (
	ItemKindField   ItemKind = "field"
	ItemKindContent ItemKind = "content"
)

// Item is the common surface of a form field or content block. An item
// belongs to at most one group; an empty group reference means the item
// is ungrouped.
type Item interface {
	ItemID() string
	Kind() ItemKind
	IsEnabled() bool
	GroupRef() string
	SetGroupRef(groupID string)
	DisplayLabel() string
	Clone() Item
}

// IsField reports whether the item is a form field.
func IsField(it Item) bool {
	return it != nil && it.Kind() == ItemKindField
}

// IsContentBlock reports whether the item is a content block.
func IsContentBlock(it Item) bool {
	return it != nil && it.Kind() == ItemKindContent
}

// AsField returns the item as a *Field when it is one.
func AsField(it Item) (*Field, bool) {
	f, ok := it.(*Field)
	return f, ok
}

// AsContentBlock returns the item as a *ContentBlock when it is one.
func AsContentBlock(it Item) (*ContentBlock, bool) {
	b, ok := it.(*ContentBlock)
	return b, ok
}

// FieldType enumerates the closed set of field types.
type FieldType string

const (
	FieldShortText      FieldType = "short_text"
	FieldLongText       FieldType = "long_text"
	FieldSingleChoice   FieldType = "single_choice"
	FieldMultipleChoice FieldType = "multiple_choice"
	FieldDropdown       FieldType = "dropdown"
	FieldRatingMatrix   FieldType = "rating_matrix"
	FieldDate           FieldType = "date"
	FieldFileUpload     FieldType = "file_upload"
	FieldNumber         FieldType = "number"
	FieldEmail          FieldType = "email"
	FieldPhone          FieldType = "phone"
	FieldSubscribe      FieldType = "subscribe_invite"
	FieldTerms          FieldType = "terms_conditions"
)

// ProfileKey identifies a well-known respondent attribute a field can be
// bound to. Profile fields are managed through settings toggles, not the
// regular palette.
type ProfileKey string

const (
	ProfileName   ProfileKey = "name"
	ProfileEmail  ProfileKey = "email"
	ProfilePhone  ProfileKey = "phone"
	ProfileGender ProfileKey = "gender"
)

// ContactMethodKeys are the profile keys that count as a contact method.
// A form must keep at least one of them materialized.
var ContactMethodKeys = []ProfileKey{ProfileEmail, ProfilePhone}

// HintMode selects which of Placeholder / DefaultValue is active. The two
// are mutually exclusive ways to pre-fill an input.
type HintMode string

const (
	HintPlaceholder  HintMode = "placeholder"
	HintDefaultValue HintMode = "default_value"
)

// FieldOption is one selectable option of a choice-like field.
type FieldOption struct {
	ID        string   `yaml:"id" json:"id"`
	Label     string   `yaml:"label" json:"label"`
	Tags      []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	IsDefault bool     `yaml:"is_default,omitempty" json:"isDefault,omitempty"`
}

// Field is a form question with a type, validation rules and exactly one
// populated type-specific configuration.
type Field struct {
	ID           string     `yaml:"id" json:"id"`
	Type         FieldType  `yaml:"type" json:"type"`
	Label        string     `yaml:"label" json:"label"`
	DefaultLabel string     `yaml:"default_label,omitempty" json:"defaultLabel,omitempty"`
	Description  string     `yaml:"description,omitempty" json:"description,omitempty"` // opaque HTML
	Required     bool       `yaml:"required" json:"required"`
	Enabled      bool       `yaml:"enabled" json:"enabled"`
	GroupID      string     `yaml:"group_id,omitempty" json:"groupId,omitempty"`
	ProfileKey   ProfileKey `yaml:"profile_key,omitempty" json:"profileKey,omitempty"`

	HintMode     HintMode `yaml:"hint_mode,omitempty" json:"hintMode,omitempty"`
	Placeholder  string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	DefaultValue string   `yaml:"default_value,omitempty" json:"defaultValue,omitempty"`

	Options []FieldOption `yaml:"options,omitempty" json:"options,omitempty"`

	Date      *DateConfig      `yaml:"date,omitempty" json:"date,omitempty"`
	Phone     *PhoneConfig     `yaml:"phone,omitempty" json:"phone,omitempty"`
	Choice    *ChoiceConfig    `yaml:"choice,omitempty" json:"choice,omitempty"`
	Matrix    *MatrixConfig    `yaml:"matrix,omitempty" json:"matrix,omitempty"`
	Upload    *UploadConfig    `yaml:"upload,omitempty" json:"upload,omitempty"`
	Subscribe *SubscribeConfig `yaml:"subscribe,omitempty" json:"subscribe,omitempty"`
	Terms     *TermsConfig     `yaml:"terms,omitempty" json:"terms,omitempty"`
}

func (f *Field) ItemID() string { return f.ID }
func (f *Field) Kind() ItemKind { return ItemKindField }
func (f *Field) IsEnabled() bool { return f.Enabled }
func (f *Field) GroupRef() string { return f.GroupID }
func (f *Field) SetGroupRef(id string) { f.GroupID = id }

// DisplayLabel returns the user label, falling back to the default label
// assigned at creation time.
func (f *Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.DefaultLabel
}

// Clone returns a deep copy of the field, including its ID. Callers that
// need a distinct identity must assign a fresh ID afterwards.
func (f *Field) Clone() Item {
	c := *f
	if f.Options != nil {
		c.Options = make([]FieldOption, len(f.Options))
		for i, opt := range f.Options {
			c.Options[i] = opt
			if opt.Tags != nil {
				c.Options[i].Tags = append([]string(nil), opt.Tags...)
			}
		}
	}
	if f.Date != nil {
		d := *f.Date
		c.Date = &d
	}
	if f.Phone != nil {
		p := *f.Phone
		p.CountryCodes = append([]string(nil), f.Phone.CountryCodes...)
		c.Phone = &p
	}
	if f.Choice != nil {
		ch := *f.Choice
		c.Choice = &ch
	}
	if f.Matrix != nil {
		m := *f.Matrix
		m.Rows = append([]string(nil), f.Matrix.Rows...)
		m.Levels = append([]string(nil), f.Matrix.Levels...)
		c.Matrix = &m
	}
	if f.Upload != nil {
		u := *f.Upload
		c.Upload = &u
	}
	if f.Subscribe != nil {
		s := *f.Subscribe
		c.Subscribe = &s
	}
	if f.Terms != nil {
		t := *f.Terms
		c.Terms = &t
	}
	return &c
}

// DateConfig restricts the selectable date range and which date units the
// respondent fills in.
type DateConfig struct {
	MinYear      int  `yaml:"min_year" json:"minYear"`
	MaxYear      int  `yaml:"max_year" json:"maxYear"`
	IncludeYear  bool `yaml:"include_year" json:"includeYear"`
	IncludeMonth bool `yaml:"include_month" json:"includeMonth"`
	IncludeDay   bool `yaml:"include_day" json:"includeDay"`
}

// PhoneConfig limits accepted country codes. AcceptAll overrides the
// allowlist.
type PhoneConfig struct {
	AcceptAll    bool     `yaml:"accept_all" json:"acceptAll"`
	CountryCodes []string `yaml:"country_codes,omitempty" json:"countryCodes,omitempty"`
}

// ChoiceConfig carries the toggles shared by choice-like fields.
type ChoiceConfig struct {
	AllowOther   bool `yaml:"allow_other" json:"allowOther"`
	AllowDefault bool `yaml:"allow_default" json:"allowDefault"`
	AllowTags    bool `yaml:"allow_tags" json:"allowTags"`
}

// MatrixConfig defines a rating matrix as rows rated against levels.
// A matrix keeps at least MinMatrixRows rows and MinMatrixLevels levels.
type MatrixConfig struct {
	Rows   []string `yaml:"rows" json:"rows"`
	Levels []string `yaml:"levels" json:"levels"`
}

const (
	MinMatrixRows   = 1
	MinMatrixLevels = 2
)

// UploadCategory configures one class of uploadable files.
type UploadCategory struct {
	Enabled   bool `yaml:"enabled" json:"enabled"`
	MaxSizeMB int  `yaml:"max_size_mb" json:"maxSizeMB"`
}

// UploadConfig configures the file upload field per file class.
type UploadConfig struct {
	Images    UploadCategory `yaml:"images" json:"images"`
	Documents UploadCategory `yaml:"documents" json:"documents"`
	Video     UploadCategory `yaml:"video" json:"video"`
}

// SubscribeConfig holds the invite text of the subscribe field.
type SubscribeConfig struct {
	InviteText string `yaml:"invite_text" json:"inviteText"` // opaque HTML
}

// TermsConfig holds the terms acknowledgement text and the content of the
// terms window the respondent can open.
type TermsConfig struct {
	TermsText     string `yaml:"terms_text" json:"termsText"`         // opaque HTML
	WindowContent string `yaml:"window_content" json:"windowContent"` // opaque HTML
}

// ContentStyle enumerates the presentational styles of a content block.
type ContentStyle string

const (
	ContentSectionTitle    ContentStyle = "section_title"
	ContentBodyText        ContentStyle = "body_text"
	ContentBorderedContent ContentStyle = "bordered_content"
	ContentQuote           ContentStyle = "quote"
	ContentDivider         ContentStyle = "divider"
	ContentSpacer          ContentStyle = "spacer"
	ContentPlainText       ContentStyle = "plain_text"
)

// DividerStyle selects the rule style of a divider block.
type DividerStyle string

const (
	DividerSolid  DividerStyle = "solid"
	DividerDashed DividerStyle = "dashed"
	DividerDotted DividerStyle = "dotted"
)

// SpacerSize selects the height of a spacer block.
type SpacerSize string

const (
	SpacerSmall  SpacerSize = "small"
	SpacerMedium SpacerSize = "medium"
	SpacerLarge  SpacerSize = "large"
)

// ContentBlock is a non-input presentational element placed among fields.
type ContentBlock struct {
	ID           string       `yaml:"id" json:"id"`
	Style        ContentStyle `yaml:"style" json:"style"`
	DefaultLabel string       `yaml:"default_label,omitempty" json:"defaultLabel,omitempty"`
	Content      string       `yaml:"content,omitempty" json:"content,omitempty"` // opaque HTML; unused by divider/spacer
	Enabled      bool         `yaml:"enabled" json:"enabled"`
	GroupID      string       `yaml:"group_id,omitempty" json:"groupId,omitempty"`
	DividerStyle DividerStyle `yaml:"divider_style,omitempty" json:"dividerStyle,omitempty"`
	SpacerSize   SpacerSize   `yaml:"spacer_size,omitempty" json:"spacerSize,omitempty"`
}

func (b *ContentBlock) ItemID() string { return b.ID }
func (b *ContentBlock) Kind() ItemKind { return ItemKindContent }
func (b *ContentBlock) IsEnabled() bool { return b.Enabled }
func (b *ContentBlock) GroupRef() string { return b.GroupID }
func (b *ContentBlock) SetGroupRef(id string) { b.GroupID = id }

func (b *ContentBlock) DisplayLabel() string {
	return b.DefaultLabel
}

func (b *ContentBlock) Clone() Item {
	c := *b
	return &c
}
