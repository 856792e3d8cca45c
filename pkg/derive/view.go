// Package derive computes read-only views of a form: the partition of the
// flat item list into per-group lists and the question-number map. It
// never mutates or re-sorts; relative order always comes from the item
// collection.
package derive

import "github.com/formloom/formloom-cli/pkg/models"

// View is the derived presentation of a form.
type View struct {
	Ungrouped models.ItemList
	Grouped   map[string]models.ItemList

	// QuestionNumbers maps item id to its 1-based question number.
	// Empty unless the form shows question numbers.
	QuestionNumbers map[string]int
}

// Options tune the view without affecting numbering.
type Options struct {
	// HideDisabled drops disabled items from the partition. Numbering
	// is always computed from the full item list, so numbers do not
	// shift when the filter toggles.
	HideDisabled bool
}

// ComputeView partitions items by group and derives question numbers.
func ComputeView(items models.ItemList, groups []models.Group, settings models.FormSettings, opts Options) View {
	v := View{
		Grouped:         make(map[string]models.ItemList, len(groups)),
		QuestionNumbers: map[string]int{},
	}

	for i := range groups {
		v.Grouped[groups[i].ID] = nil
	}

	for _, it := range items {
		if opts.HideDisabled && !it.IsEnabled() {
			continue
		}
		gid := it.GroupRef()
		if _, ok := v.Grouped[gid]; gid != "" && ok {
			v.Grouped[gid] = append(v.Grouped[gid], it)
		} else {
			v.Ungrouped = append(v.Ungrouped, it)
		}
	}

	if settings.ShowQuestionNumbers {
		v.QuestionNumbers = questionNumbers(items, groups)
	}

	return v
}

// questionNumbers assigns contiguous 1-based numbers to enabled fields,
// walking groups in their stored order and then the ungrouped tail. The
// walk ignores any presentation filter so numbers stay stable.
func questionNumbers(items models.ItemList, groups []models.Group) map[string]int {
	numbers := make(map[string]int)
	next := 1

	assign := func(gid string) {
		for _, it := range items {
			if it.GroupRef() != gid {
				continue
			}
			if f, ok := models.AsField(it); ok && f.Enabled {
				numbers[f.ID] = next
				next++
			}
		}
	}

	if len(groups) == 0 {
		assign("")
		return numbers
	}

	known := make(map[string]bool, len(groups))
	for i := range groups {
		known[groups[i].ID] = true
		assign(groups[i].ID)
	}

	// Items pointing at no group (or a stale group id) number last, in
	// collection order.
	for _, it := range items {
		gid := it.GroupRef()
		if gid != "" && known[gid] {
			continue
		}
		if f, ok := models.AsField(it); ok && f.Enabled {
			numbers[f.ID] = next
			next++
		}
	}

	return numbers
}
