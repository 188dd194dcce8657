// Package types provides type definitions for structured data used throughout the resume-mate system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Collection identifies which profile collection an entry belongs to.
type Collection string

// Collection constants name the profile collections entries can come from.
const (
	CollectionWork      Collection = "work"
	CollectionProjects  Collection = "projects"
	CollectionEducation Collection = "education"
	CollectionSkills    Collection = "skills"
)

// SelectionEntry links an entry in a TailoredProfile back to its source in
// the MasterProfile, together with the relevance score that selected it.
type SelectionEntry struct {
	Collection Collection `json:"collection"`
	EntryID    string     `json:"entry_id"`
	Score      float64    `json:"score"`
}

// RewriteWarning records a per-entry rewrite degradation: the entry kept
// its original text instead of the rewritten version.
type RewriteWarning struct {
	EntryID string `json:"entry_id"`
	Reason  string `json:"reason"`
}

// TailoredProfile is the output of one tailor invocation: a structural
// subset of the MasterProfile with rewritten text, plus the provenance and
// score annotation layer. It shares the MasterProfile schema so the same
// validation and rendering paths apply to both.
type TailoredProfile struct {
	Profile   MasterProfile    `json:"profile" yaml:"profile"`
	Selection []SelectionEntry `json:"selection" yaml:"selection"`
	Warnings  []RewriteWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SelectedID reports whether the given entry ID appears in the selection.
func (t *TailoredProfile) SelectedID(id string) bool {
	for _, entry := range t.Selection {
		if entry.EntryID == id {
			return true
		}
	}
	return false
}
