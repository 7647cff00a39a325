package engine

import "strings"

// Category is one entry in the static category catalog. Sessions copy
// these display attributes at creation time; they are never re-joined, so
// historical receipts stay stable if the catalog changes.
type Category struct {
	ID    string
	Emoji string
	Name  string
	Color string
}

// OtherCategoryID is the sentinel used when a session has no category.
const OtherCategoryID = "other"

var catalog = []Category{
	{ID: "study", Emoji: "📚", Name: "Study", Color: "#CCFF00"},
	{ID: "reading", Emoji: "📖", Name: "Reading", Color: "#7DD3FC"},
	{ID: "exercise", Emoji: "💪", Name: "Exercise", Color: "#F97316"},
	{ID: "work", Emoji: "💼", Name: "Work", Color: "#A78BFA"},
	{ID: "art", Emoji: "🎨", Name: "Art", Color: "#F472B6"},
	{ID: OtherCategoryID, Emoji: "🎯", Name: "Other", Color: "#9CA3AF"},
}

// Categories returns a copy of the catalog in display order.
func Categories() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCategory resolves a category id. Unknown or empty ids report
// ok=false along with the "other" sentinel entry.
func LookupCategory(id string) (Category, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return catalog[len(catalog)-1], false
}
