package profile

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-mate/internal/types"
)

var validate = validator.New()

// ValidationError collects all structural problems found in a profile so
// the user can fix them in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("profile validation failed:\n")
	for i, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p))
	}
	return sb.String()
}

// Validate checks the semantic rules the JSON schema cannot express:
// date ordering, ID uniqueness across entries and highlights, and skill
// name uniqueness. It returns nil or a *ValidationError listing every
// problem found.
func Validate(profile *types.MasterProfile) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(profile.Basics.Name) == "" {
		add("basics.name is required")
	}
	if strings.TrimSpace(profile.Basics.Email) == "" {
		add("basics.email is required")
	} else if err := validate.Var(profile.Basics.Email, "email"); err != nil {
		add("basics.email %q is not a valid email address", profile.Basics.Email)
	}

	entryIDs := make(map[string]string)
	highlightIDs := make(map[string]string)

	checkEntryID := func(id, where string) {
		if strings.TrimSpace(id) == "" {
			add("%s is missing an id", where)
			return
		}
		if prev, ok := entryIDs[id]; ok {
			add("%s reuses id %q already used by %s", where, id, prev)
			return
		}
		entryIDs[id] = where
	}

	checkHighlights := func(highlights []types.Highlight, where string) {
		for i, h := range highlights {
			loc := fmt.Sprintf("%s.highlights[%d]", where, i)
			if strings.TrimSpace(h.ID) == "" {
				add("%s is missing an id", loc)
			} else if prev, ok := highlightIDs[h.ID]; ok {
				add("%s reuses highlight id %q already used by %s", loc, h.ID, prev)
			} else {
				highlightIDs[h.ID] = loc
			}
			if strings.TrimSpace(h.Text) == "" {
				add("%s has empty text", loc)
			}
		}
	}

	for i := range profile.Work {
		w := &profile.Work[i]
		where := fmt.Sprintf("work[%d]", i)
		checkEntryID(w.ID, where)
		if strings.TrimSpace(w.Name) == "" {
			add("%s is missing a company name", where)
		}
		if strings.TrimSpace(w.Position) == "" {
			add("%s is missing a position", where)
		}
		if err := types.ValidDateRange(w.StartDate, w.EndDate); err != nil {
			add("%s: %v", where, err)
		}
		checkHighlights(w.Highlights, where)
	}

	for i := range profile.Projects {
		p := &profile.Projects[i]
		where := fmt.Sprintf("projects[%d]", i)
		checkEntryID(p.ID, where)
		if strings.TrimSpace(p.Name) == "" {
			add("%s is missing a name", where)
		}
		// Project dates are optional, but when present they must be ordered.
		if strings.TrimSpace(p.StartDate) != "" {
			if err := types.ValidDateRange(p.StartDate, p.EndDate); err != nil {
				add("%s: %v", where, err)
			}
		} else if strings.TrimSpace(p.EndDate) != "" {
			add("%s has an end date but no start date", where)
		}
		checkHighlights(p.Highlights, where)
	}

	for i := range profile.Education {
		e := &profile.Education[i]
		where := fmt.Sprintf("education[%d]", i)
		checkEntryID(e.ID, where)
		if strings.TrimSpace(e.Institution) == "" {
			add("%s is missing an institution", where)
		}
		if err := types.ValidDateRange(e.StartDate, e.EndDate); err != nil {
			add("%s: %v", where, err)
		}
	}

	skillNames := make(map[string]int)
	for i := range profile.Skills {
		s := &profile.Skills[i]
		where := fmt.Sprintf("skills[%d]", i)
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			add("%s is missing a name", where)
			continue
		}
		if prev, ok := skillNames[name]; ok {
			add("%s duplicates skill %q from skills[%d]", where, s.Name, prev)
			continue
		}
		skillNames[name] = i
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
