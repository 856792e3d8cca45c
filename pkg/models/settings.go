package models

// FormSettings is the per-form configuration stored with the form.
type FormSettings struct {
	SubmitButtonText        string `yaml:"submit_button_text" json:"submitButtonText"`
	EnableCustomButtonColor bool   `yaml:"enable_custom_button_color" json:"enableCustomButtonColor"`
	ButtonBgColor           string `yaml:"button_bg_color,omitempty" json:"buttonBgColor,omitempty"`
	ButtonTextColor         string `yaml:"button_text_color,omitempty" json:"buttonTextColor,omitempty"`
	ButtonHoverBgColor      string `yaml:"button_hover_bg_color,omitempty" json:"buttonHoverBgColor,omitempty"`
	ButtonHoverTextColor    string `yaml:"button_hover_text_color,omitempty" json:"buttonHoverTextColor,omitempty"`

	ShowQuestionNumbers bool `yaml:"show_question_numbers" json:"showQuestionNumbers"`

	// ProfileFields lists the profile keys currently materialized as
	// fields, in toggle order. Kept in sync with the profile-tagged
	// fields of the collection.
	ProfileFields []ProfileKey `yaml:"profile_fields" json:"profileFields"`
}

// DefaultFormSettings returns the settings of a freshly created form.
func DefaultFormSettings() FormSettings {
	return FormSettings{
		SubmitButtonText:     "Register now",
		ButtonBgColor:        "#2563eb",
		ButtonTextColor:      "#ffffff",
		ButtonHoverBgColor:   "#1d4ed8",
		ButtonHoverTextColor: "#ffffff",
		ShowQuestionNumbers:  false,
		ProfileFields:        []ProfileKey{ProfileName, ProfileEmail},
	}
}

// HasProfileField reports whether key is currently toggled on.
func (s *FormSettings) HasProfileField(key ProfileKey) bool {
	for _, k := range s.ProfileFields {
		if k == key {
			return true
		}
	}
	return false
}

// ContactMethodCount returns how many materialized profile fields count
// as a contact method.
func (s *FormSettings) ContactMethodCount() int {
	n := 0
	for _, k := range s.ProfileFields {
		if info, ok := ProfileKeys[k]; ok && info.ContactMethod {
			n++
		}
	}
	return n
}

// Settings represents the application configuration
type Settings struct {
	Output OutputSettings `yaml:"output"`
	UI     UISettings     `yaml:"ui"`
}

// OutputSettings controls export behavior
type OutputSettings struct {
	DefaultFilename string `yaml:"default_filename"`
	ExportPath      string `yaml:"export_path"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview  bool `yaml:"show_preview"`
	HideDisabled bool `yaml:"hide_disabled"` // hide disabled items in the editor canvas
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			DefaultFilename: "FORM.md",
			ExportPath:      "./",
		},
		UI: UISettings{
			ShowPreview:  true,
			HideDisabled: false,
		},
	}
}
