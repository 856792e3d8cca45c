package models

// NextActionType selects what happens after a respondent finishes a group.
type NextActionType string

const (
	NextActionNext   NextActionType = "next"   // proceed to the next group in order
	NextActionJump   NextActionType = "jump"   // jump to a named group
	NextActionSubmit NextActionType = "submit" // submit the form
)

// NextAction is a group's post-completion navigation rule.
type NextAction struct {
	Type   NextActionType `yaml:"type" json:"type"`
	JumpTo string         `yaml:"jump_to,omitempty" json:"jumpTo,omitempty"` // group ID, only for NextActionJump
}

// Group is an ordered page of the form. Group order is significant: it
// drives cross-group question numbering and paging navigation.
type Group struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	DefaultName string     `yaml:"default_name,omitempty" json:"defaultName,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"` // opaque HTML
	NextAction  NextAction `yaml:"next_action" json:"nextAction"`
}

// DisplayName returns the user name, falling back to the default name
// assigned at creation time.
func (g *Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.DefaultName
}
