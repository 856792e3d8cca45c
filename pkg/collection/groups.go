package collection

import "github.com/formloom/formloom-cli/pkg/models"

// CreateGroup appends a new group. Creating the very first group pages
// all existing (necessarily ungrouped) items into it, so introducing
// paging retroactively puts the current content on page one.
func (e *Engine) CreateGroup(name string) *models.Group {
	g := e.factory.CreateGroup(name)

	if len(e.form.Groups) == 0 {
		for _, it := range e.form.Items {
			it.SetGroupRef(g.ID)
		}
	}

	e.form.Groups = append(e.form.Groups, *g)
	return &e.form.Groups[len(e.form.Groups)-1]
}

// UpdateGroup applies mutate to the group with the given id. The group's
// id cannot change. Unknown ids are a silent no-op.
func (e *Engine) UpdateGroup(id string, mutate func(*models.Group)) bool {
	idx := e.groupIndexOf(id)
	if idx < 0 {
		return false
	}

	patched := e.form.Groups[idx]
	mutate(&patched)
	patched.ID = e.form.Groups[idx].ID

	e.form.Groups[idx] = patched
	return true
}

// DeleteGroup removes a group and re-targets its members to the first
// remaining group, or ungroups them when no group remains. Items are
// never deleted by this operation.
func (e *Engine) DeleteGroup(id string) bool {
	idx := e.groupIndexOf(id)
	if idx < 0 {
		return false
	}

	e.form.Groups = append(e.form.Groups[:idx], e.form.Groups[idx+1:]...)

	target := ""
	if len(e.form.Groups) > 0 {
		target = e.form.Groups[0].ID
	}

	for _, it := range e.form.Items {
		if it.GroupRef() == id {
			it.SetGroupRef(target)
		}
	}

	return true
}

// ReorderGroups splice-moves the active group to the position the over
// group occupies. A no-op when the ids match or either is unknown.
func (e *Engine) ReorderGroups(activeID, overID string) {
	if activeID == overID {
		return
	}
	from := e.groupIndexOf(activeID)
	to := e.groupIndexOf(overID)
	if from < 0 || to < 0 {
		return
	}

	g := e.form.Groups[from]
	e.form.Groups = append(e.form.Groups[:from], e.form.Groups[from+1:]...)
	e.form.Groups = append(e.form.Groups, models.Group{})
	copy(e.form.Groups[to+1:], e.form.Groups[to:])
	e.form.Groups[to] = g
}

func (e *Engine) groupIndexOf(id string) int {
	for i := range e.form.Groups {
		if e.form.Groups[i].ID == id {
			return i
		}
	}
	return -1
}
