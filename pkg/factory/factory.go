// Package factory creates form items with their per-type default
// configuration. The default-label counters are owned by the factory, so
// concurrent editor sessions never share numbering state.
package factory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/formloom/formloom-cli/pkg/models"
)

const dateRangeStartYear = 1950

// Factory constructs fields, content blocks and groups. Counters are
// monotonic per item class and never reset for the life of the session.
type Factory struct {
	fieldCount   int
	contentCount int
	groupCount   int
}

// New returns a factory with fresh counters.
func New() *Factory {
	return &Factory{}
}

// CreateField builds a field of the given type with documented defaults.
// The factory is unconditional: singleton enforcement is the collection
// engine's job.
func (fa *Factory) CreateField(t models.FieldType, groupID string) (*models.Field, error) {
	info, ok := models.FieldTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFieldType, t)
	}

	f := &models.Field{
		ID:       uuid.NewString(),
		Type:     t,
		Enabled:  true,
		GroupID:  groupID,
		HintMode: models.HintPlaceholder,
	}

	if info.Singleton {
		f.DefaultLabel = info.Label
	} else {
		fa.fieldCount++
		f.DefaultLabel = fmt.Sprintf("Untitled field %d", fa.fieldCount)
	}

	if info.NeedsOptions {
		f.Options = []models.FieldOption{newOption("Option 1")}
	}

	seedConfig(f)

	return f, nil
}

// CreateContentBlock builds a content block of the given style with empty
// content and a counter-based default label.
func (fa *Factory) CreateContentBlock(style models.ContentStyle, groupID string) (*models.ContentBlock, error) {
	if !models.ValidContentStyle(style) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStyle, style)
	}

	fa.contentCount++

	b := &models.ContentBlock{
		ID:           uuid.NewString(),
		Style:        style,
		DefaultLabel: fmt.Sprintf("Content block %d", fa.contentCount),
		Enabled:      true,
		GroupID:      groupID,
	}

	switch style {
	case models.ContentDivider:
		b.DividerStyle = models.DividerSolid
	case models.ContentSpacer:
		b.SpacerSize = models.SpacerMedium
	}

	return b, nil
}

// CreateProfileField builds a field pre-bound to a profile key.
func (fa *Factory) CreateProfileField(key models.ProfileKey, groupID string) (*models.Field, error) {
	info, ok := models.ProfileKeys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownProfileKey, key)
	}

	f, err := fa.CreateField(info.FieldType, groupID)
	if err != nil {
		return nil, err
	}

	f.ProfileKey = key
	f.Label = info.Label
	f.Required = info.DefaultRequired

	if key == models.ProfileGender {
		f.Options = []models.FieldOption{
			newOption("Male"),
			newOption("Female"),
			newOption("Prefer not to say"),
		}
	}

	return f, nil
}

// CreateGroup builds a group with a positional default name. The default
// name is fixed at creation and does not re-derive when groups reorder.
func (fa *Factory) CreateGroup(name string) *models.Group {
	fa.groupCount++

	return &models.Group{
		ID:          uuid.NewString(),
		Name:        name,
		DefaultName: fmt.Sprintf("Page %d", fa.groupCount),
		NextAction:  models.NextAction{Type: models.NextActionNext},
	}
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NewOption returns a fresh option with the given label.
func NewOption(label string) models.FieldOption {
	return newOption(label)
}

func newOption(label string) models.FieldOption {
	return models.FieldOption{
		ID:    uuid.NewString(),
		Label: label,
	}
}

// seedConfig populates the one type-specific configuration object. This
// is the single config dispatch point; everything else consults the
// descriptor table in models.
func seedConfig(f *models.Field) {
	switch f.Type {
	case models.FieldDate:
		f.Date = &models.DateConfig{
			MinYear:      dateRangeStartYear,
			MaxYear:      time.Now().Year(),
			IncludeYear:  true,
			IncludeMonth: true,
			IncludeDay:   true,
		}
	case models.FieldPhone:
		f.Phone = &models.PhoneConfig{AcceptAll: true}
	case models.FieldSingleChoice, models.FieldMultipleChoice, models.FieldDropdown:
		f.Choice = &models.ChoiceConfig{}
	case models.FieldRatingMatrix:
		f.Matrix = &models.MatrixConfig{
			Rows: []string{"Row 1"},
			Levels: []string{
				"Strongly disagree",
				"Disagree",
				"Neutral",
				"Agree",
				"Strongly agree",
			},
		}
	case models.FieldFileUpload:
		f.Upload = &models.UploadConfig{
			Images:    models.UploadCategory{Enabled: true, MaxSizeMB: 5},
			Documents: models.UploadCategory{MaxSizeMB: 10},
			Video:     models.UploadCategory{MaxSizeMB: 50},
		}
	case models.FieldSubscribe:
		f.Subscribe = &models.SubscribeConfig{}
	case models.FieldTerms:
		f.Terms = &models.TermsConfig{}
	}
}
