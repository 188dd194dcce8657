// Package types provides type definitions for structured data used throughout the resume-mate system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRequirements is the structured extraction from raw job-description
// text. It is ephemeral: produced by the analyzer, consumed by the
// selector and rewriter, never persisted.
type JobRequirements struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Seniority       string   `json:"seniority,omitempty"` // intern, junior, mid, senior, staff, principal
	DomainTags      []string `json:"domain_tags,omitempty"`
	RoleMission     string   `json:"role_mission,omitempty"`
}

// HasMatchableKeywords reports whether the requirements contain anything
// the selector can score against: required or preferred skills, generic
// keywords, or domain tags. When false the selector falls back to a
// recency-only ranking.
func (r *JobRequirements) HasMatchableKeywords() bool {
	if r == nil {
		return false
	}
	return len(r.RequiredSkills) > 0 || len(r.PreferredSkills) > 0 ||
		len(r.Keywords) > 0 || len(r.DomainTags) > 0
}
