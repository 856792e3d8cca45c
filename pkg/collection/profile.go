package collection

import (
	"fmt"

	"github.com/formloom/formloom-cli/pkg/models"
)

// ToggleProfileField materializes or removes the field bound to a profile
// key, keeping Settings.ProfileFields and the profile-tagged fields in
// sync. Turning off the last contact method is rejected.
func (e *Engine) ToggleProfileField(key models.ProfileKey, on bool) error {
	info, ok := models.ProfileKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownProfileKey, key)
	}

	if on {
		if e.Settings().HasProfileField(key) {
			return nil
		}

		insertAt, groupID := e.profileInsertPoint()
		f, err := e.factory.CreateProfileField(key, groupID)
		if err != nil {
			return err
		}

		e.form.Items = append(e.form.Items, nil)
		copy(e.form.Items[insertAt+1:], e.form.Items[insertAt:])
		e.form.Items[insertAt] = f

		e.setProfileKeys(append(e.Settings().ProfileFields, key))
		return nil
	}

	if !e.Settings().HasProfileField(key) {
		return nil
	}

	if info.ContactMethod && e.Settings().ContactMethodCount() <= 1 {
		return models.ErrLastContactMethod
	}

	for _, it := range e.form.Items {
		if f, ok := models.AsField(it); ok && f.ProfileKey == key {
			e.Delete(f.ID)
			break
		}
	}

	kept := e.Settings().ProfileFields[:0:0]
	for _, k := range e.Settings().ProfileFields {
		if k != key {
			kept = append(kept, k)
		}
	}
	e.setProfileKeys(kept)
	return nil
}

// profileInsertPoint places a new profile field directly after the last
// existing profile field, or at the head of the collection when none
// exist yet. The new field adopts the group of its insert neighbor so the
// profile block stays on one page.
func (e *Engine) profileInsertPoint() (int, string) {
	last := -1
	for i, it := range e.form.Items {
		if f, ok := models.AsField(it); ok && f.ProfileKey != "" {
			last = i
		}
	}

	if last >= 0 {
		return last + 1, e.form.Items[last].GroupRef()
	}
	if len(e.form.Items) > 0 {
		return 0, e.form.Items[0].GroupRef()
	}
	return 0, e.defaultGroupID()
}

// setProfileKeys stores keys normalized to the canonical toggle order.
func (e *Engine) setProfileKeys(keys []models.ProfileKey) {
	ordered := make([]models.ProfileKey, 0, len(keys))
	for _, k := range models.ProfileKeyOrder {
		for _, have := range keys {
			if have == k {
				ordered = append(ordered, k)
				break
			}
		}
	}
	e.form.Settings.ProfileFields = ordered
}
