package model

// Tag is a user-defined label attached to stock records.
// Identity (and therefore equality and set membership) is the synthetic ID,
// never the name: two tags with the same name but different IDs are distinct.
// The name-based deduplication used when building the tag palette is an
// explicit consumer-side step, see DedupTagsByName.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DedupTagsByName keeps the first tag seen for each name, preserving input
// order. Name comparison is case-sensitive. This is the palette-building
// behavior: it can hide distinct IDs behind one name, which is exactly what
// the display layer wants.
func DedupTagsByName(tags []Tag) []Tag {
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out
}
