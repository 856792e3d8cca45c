// Package collection implements the ordered form-item collection and the
// full set of mutations the editor performs on it. Operations that
// reference an unknown id are silent no-ops; the only failures surfaced
// to the caller are named policy errors (duplicate singleton, last
// contact method, matrix minimums, unlabeled field at save).
package collection

import (
	"fmt"
	"strings"

	"github.com/formloom/formloom-cli/pkg/factory"
	"github.com/formloom/formloom-cli/pkg/models"
)

// Engine owns a form's item and group sequences. All mutations are
// synchronous and all-or-nothing: a rejected operation leaves the form
// untouched.
type Engine struct {
	form    *models.Form
	factory *factory.Factory
}

// NewEngine wraps an existing form. The factory supplies ids and default
// labels for items created through the engine.
func NewEngine(form *models.Form, fa *factory.Factory) *Engine {
	if fa == nil {
		fa = factory.New()
	}
	return &Engine{form: form, factory: fa}
}

// Form returns the underlying form.
func (e *Engine) Form() *models.Form { return e.form }

// Items returns the flat ordered item sequence.
func (e *Engine) Items() models.ItemList { return e.form.Items }

// Groups returns the ordered group sequence.
func (e *Engine) Groups() []models.Group { return e.form.Groups }

// Settings returns the form settings.
func (e *Engine) Settings() *models.FormSettings { return &e.form.Settings }

// defaultGroupID is the group new items fall into: the most recently
// created group, or none when the form has no paging.
func (e *Engine) defaultGroupID() string {
	if n := len(e.form.Groups); n > 0 {
		return e.form.Groups[n-1].ID
	}
	return ""
}

// Add appends an item to the end of the collection.
func (e *Engine) Add(it models.Item) {
	e.form.Items = append(e.form.Items, it)
}

// AddField creates a field of the given type and appends it. Singleton
// field types are rejected when an instance already exists, enabled or
// not.
func (e *Engine) AddField(t models.FieldType) (*models.Field, error) {
	if info, ok := models.FieldTypes[t]; ok && info.Singleton {
		for _, it := range e.form.Items {
			if f, ok := models.AsField(it); ok && f.Type == t {
				return nil, fmt.Errorf("%w: %s", models.ErrDuplicateSingleton, info.Label)
			}
		}
	}

	f, err := e.factory.CreateField(t, e.defaultGroupID())
	if err != nil {
		return nil, err
	}

	e.Add(f)
	return f, nil
}

// AddContentBlock creates a content block of the given style and appends it.
func (e *Engine) AddContentBlock(style models.ContentStyle) (*models.ContentBlock, error) {
	b, err := e.factory.CreateContentBlock(style, e.defaultGroupID())
	if err != nil {
		return nil, err
	}

	e.Add(b)
	return b, nil
}

// Update applies mutate to a copy of the item with the given id and swaps
// the copy in if it passes invariant checks. The item's id and kind
// cannot be changed by the patch. Unknown ids are a silent no-op.
func (e *Engine) Update(id string, mutate func(models.Item)) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil
	}

	patched := e.form.Items[idx].Clone()
	mutate(patched)

	if err := checkPatched(e.form.Items[idx], patched); err != nil {
		return err
	}

	e.form.Items[idx] = patched
	return nil
}

// checkPatched enforces that a patch kept the item's identity and
// discriminator intact and did not violate config minimums.
func checkPatched(orig, patched models.Item) error {
	if patched.ItemID() != orig.ItemID() {
		return fmt.Errorf("update cannot change item id")
	}
	if patched.Kind() != orig.Kind() {
		return fmt.Errorf("update cannot change item kind")
	}
	if f, ok := models.AsField(patched); ok {
		if of, _ := models.AsField(orig); of != nil && f.Type != of.Type {
			return fmt.Errorf("update cannot change field type")
		}
		if f.Type == models.FieldRatingMatrix && f.Matrix != nil {
			if len(f.Matrix.Rows) < models.MinMatrixRows || len(f.Matrix.Levels) < models.MinMatrixLevels {
				return models.ErrMatrixMinimum
			}
		}
	}
	return nil
}

// Delete removes the item with the given id. Removal is final.
func (e *Engine) Delete(id string) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}

	e.form.Items = append(e.form.Items[:idx], e.form.Items[idx+1:]...)
	return true
}

// Duplicate clones the item with a fresh id and inserts the clone
// immediately after the source, preserving group membership. Returns the
// clone, or nil for an unknown id. Duplicating a singleton field is
// rejected like AddField.
func (e *Engine) Duplicate(id string) (models.Item, error) {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	src := e.form.Items[idx]
	if f, ok := models.AsField(src); ok {
		if info := models.FieldTypes[f.Type]; info.Singleton {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateSingleton, info.Label)
		}
	}

	clone := src.Clone()
	assignFreshID(clone)

	e.form.Items = append(e.form.Items, nil)
	copy(e.form.Items[idx+2:], e.form.Items[idx+1:])
	e.form.Items[idx+1] = clone

	return clone, nil
}

// MoveItemToGroup reassigns an item's group without changing its position
// in the flat order. An empty target means ungrouped; an unknown target
// group is a no-op.
func (e *Engine) MoveItemToGroup(itemID, targetGroupID string) bool {
	idx := e.indexOf(itemID)
	if idx < 0 {
		return false
	}
	if targetGroupID != "" && e.form.GroupByID(targetGroupID) == nil {
		return false
	}

	e.form.Items[idx].SetGroupRef(targetGroupID)
	return true
}

// ReorderItems removes the active item and reinserts it at the position
// the over item occupied, shifting the items in between. A no-op when the
// ids match or either is unknown.
func (e *Engine) ReorderItems(activeID, overID string) {
	if activeID == overID {
		return
	}
	from := e.indexOf(activeID)
	to := e.indexOf(overID)
	if from < 0 || to < 0 {
		return
	}

	it := e.form.Items[from]
	e.form.Items = append(e.form.Items[:from], e.form.Items[from+1:]...)
	e.form.Items = append(e.form.Items, nil)
	copy(e.form.Items[to+1:], e.form.Items[to:])
	e.form.Items[to] = it
}

// Validate checks the form is saveable: every field that is neither a
// profile field nor a label-exempt singleton needs a non-empty label.
func (e *Engine) Validate() error {
	for _, it := range e.form.Items {
		f, ok := models.AsField(it)
		if !ok {
			continue
		}
		if f.ProfileKey != "" {
			continue
		}
		if models.FieldTypes[f.Type].LabelExempt {
			continue
		}
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("%w: %s", models.ErrUnlabeledField, f.DefaultLabel)
		}
	}
	return nil
}

// Save validates the form and hands it to the persistence collaborator.
// Returns the number of items saved. A validation failure aborts without
// calling persist and without mutating state.
func (e *Engine) Save(persist func(*models.Form) error) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	if persist != nil {
		if err := persist(e.form); err != nil {
			return 0, err
		}
	}
	return len(e.form.Items), nil
}

func (e *Engine) indexOf(id string) int {
	for i, it := range e.form.Items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func assignFreshID(it models.Item) {
	switch v := it.(type) {
	case *models.Field:
		v.ID = factory.NewID()
	case *models.ContentBlock:
		v.ID = factory.NewID()
	}
}
