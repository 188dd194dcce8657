// Package types provides type definitions for structured data used throughout the resume-mate system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the canonical YYYY-MM format used for all profile dates.
const dateLayout = "2006-01"

// MasterProfile is the canonical career-history document owned by the user.
// It is the single source of truth: tailoring reads it and never writes back.
type MasterProfile struct {
	Basics    Basics           `json:"basics" yaml:"basics"`
	Work      []WorkExperience `json:"work,omitempty" yaml:"work,omitempty"`
	Projects  []Project        `json:"projects,omitempty" yaml:"projects,omitempty"`
	Education []Education      `json:"education,omitempty" yaml:"education,omitempty"`
	Skills    []Skill          `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Basics holds identity and contact information.
type Basics struct {
	Name     string          `json:"name" yaml:"name"`
	Label    string          `json:"label,omitempty" yaml:"label,omitempty"`
	Email    string          `json:"email" yaml:"email"`
	Phone    string          `json:"phone,omitempty" yaml:"phone,omitempty"`
	URL      string          `json:"url,omitempty" yaml:"url,omitempty"`
	Summary  string          `json:"summary,omitempty" yaml:"summary,omitempty"`
	Location *Location       `json:"location,omitempty" yaml:"location,omitempty"`
	Profiles []SocialProfile `json:"profiles,omitempty" yaml:"profiles,omitempty"`
}

// Location is an optional structured address for Basics.
type Location struct {
	Address     string `json:"address,omitempty" yaml:"address,omitempty"`
	PostalCode  string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	City        string `json:"city" yaml:"city"`
	CountryCode string `json:"countryCode,omitempty" yaml:"countryCode,omitempty"`
	Region      string `json:"region,omitempty" yaml:"region,omitempty"`
}

// SocialProfile is a single social network handle.
type SocialProfile struct {
	Network  string `json:"network" yaml:"network"`
	Username string `json:"username" yaml:"username"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Highlight is a single achievement bullet with a stable identifier.
// The ID is the provenance anchor used across pipeline stages.
type Highlight struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// WorkExperience is a single employment entry.
type WorkExperience struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"` // Company name
	Position   string      `json:"position" yaml:"position"`
	URL        string      `json:"url,omitempty" yaml:"url,omitempty"`
	StartDate  string      `json:"startDate" yaml:"startDate"`
	EndDate    string      `json:"endDate,omitempty" yaml:"endDate,omitempty"` // Empty means ongoing
	Summary    string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	TechStack  []string    `json:"techStack,omitempty" yaml:"techStack,omitempty"`
}

// Project is a side or academic project entry.
type Project struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Highlights  []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	TechStack   []string    `json:"techStack,omitempty" yaml:"techStack,omitempty"`
	URL         string      `json:"url,omitempty" yaml:"url,omitempty"`
	StartDate   string      `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string      `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

// Education is a single degree or program entry.
type Education struct {
	ID          string   `json:"id" yaml:"id"`
	Institution string   `json:"institution" yaml:"institution"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Area        string   `json:"area" yaml:"area"`
	StudyType   string   `json:"studyType" yaml:"studyType"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Score       string   `json:"score,omitempty" yaml:"score,omitempty"`
	Courses     []string `json:"courses,omitempty" yaml:"courses,omitempty"`
}

// Skill is a named skill with a category tag. Skills are unique by name.
type Skill struct {
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Level    string   `json:"level,omitempty" yaml:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ParseDate parses a YYYY-MM profile date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// ValidDateRange reports whether start <= end. An empty end date (ongoing)
// is always valid; an unparsable date is not.
func ValidDateRange(start, end string) error {
	if strings.TrimSpace(start) == "" {
		return fmt.Errorf("start date is required")
	}
	startDate, err := ParseDate(start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if strings.TrimSpace(end) == "" {
		return nil
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endDate.Before(startDate) {
		return fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	return nil
}

// FindWork returns the work entry with the given ID, or nil.
func (p *MasterProfile) FindWork(id string) *WorkExperience {
	for i := range p.Work {
		if p.Work[i].ID == id {
			return &p.Work[i]
		}
	}
	return nil
}

// FindProject returns the project entry with the given ID, or nil.
func (p *MasterProfile) FindProject(id string) *Project {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			return &p.Projects[i]
		}
	}
	return nil
}

// FindEducation returns the education entry with the given ID, or nil.
func (p *MasterProfile) FindEducation(id string) *Education {
	for i := range p.Education {
		if p.Education[i].ID == id {
			return &p.Education[i]
		}
	}
	return nil
}

// FindSkill returns the skill with the given name (case-insensitive), or nil.
func (p *MasterProfile) FindSkill(name string) *Skill {
	for i := range p.Skills {
		if strings.EqualFold(p.Skills[i].Name, name) {
			return &p.Skills[i]
		}
	}
	return nil
}
