// Package selection provides deterministic scoring and selection of
// profile entries against analyzed job requirements.
package selection

import (
	"strings"
	"time"

	"github.com/jonathan/resume-mate/internal/types"
)

// Scoring weights. Keyword overlap dominates, recency breaks topical
// near-ties, and the seniority adjustment nudges title-level matches.
const (
	keywordWeight = 0.6
	recencyWeight = 0.3

	seniorityBonus   = 0.10
	seniorityPenalty = 0.05

	// recencyHorizonYears is the window over which recency decays to zero.
	recencyHorizonYears = 10.0

	// neutralRecency is used when an entry carries no parsable date.
	neutralRecency = 0.5
)

// Target weights by requirement strength.
const (
	requiredSkillWeight  = 1.0
	preferredSkillWeight = 0.6
	genericKeywordWeight = 0.4
)

// target is one weighted keyword to match entries against.
type target struct {
	keyword string
	weight  float64
}

// buildTargets flattens JobRequirements into an ordered list of normalized
// (keyword, weight) targets. The order is fixed by the requirements fields,
// so weight sums are bit-identical across runs; float addition is not
// associative, and a map iteration here would make scores nondeterministic.
// Duplicate keywords keep their first position and their highest weight.
func buildTargets(reqs *types.JobRequirements) []target {
	if reqs == nil {
		return nil
	}

	var targets []target
	index := make(map[string]int)

	add := func(values []string, weight float64) {
		for _, v := range values {
			n := strings.ToLower(strings.TrimSpace(v))
			if n == "" {
				continue
			}
			if i, ok := index[n]; ok {
				if weight > targets[i].weight {
					targets[i].weight = weight
				}
				continue
			}
			index[n] = len(targets)
			targets = append(targets, target{keyword: n, weight: weight})
		}
	}

	add(reqs.RequiredSkills, requiredSkillWeight)
	add(reqs.PreferredSkills, preferredSkillWeight)
	add(reqs.Keywords, genericKeywordWeight)
	add(reqs.DomainTags, genericKeywordWeight)

	return targets
}

// totalTargetWeight sums all target weights in target order. Zero means the
// requirements carry nothing matchable and the selector falls back to
// recency ranking.
func totalTargetWeight(targets []target) float64 {
	total := 0.0
	for _, t := range targets {
		total += t.weight
	}
	return total
}

// keywordOverlapScore matches targets against entry text (case-insensitive
// substring match) and returns matched weight normalized by total weight.
// The caller supplies the precomputed total so every entry in a run is
// scored against the same denominator.
func keywordOverlapScore(text string, targets []target, total float64) float64 {
	if total == 0 {
		return 0.0
	}

	textLower := strings.ToLower(text)
	matched := 0.0
	for _, t := range targets {
		if strings.Contains(textLower, t.keyword) {
			matched += t.weight
		}
	}

	score := matched / total
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// recencyScore scores how recent an entry is based on its end date.
// An empty end date means the entry is ongoing and scores 1.0. The score
// decays linearly to zero over recencyHorizonYears. Unparsable dates get a
// neutral score rather than failing the pipeline.
func recencyScore(endDate string, now time.Time) float64 {
	if strings.TrimSpace(endDate) == "" {
		return 1.0
	}

	date, err := types.ParseDate(endDate)
	if err != nil {
		return neutralRecency
	}

	yearsSince := now.Sub(date).Hours() / (24 * 365.25)
	if yearsSince < 0 {
		return 1.0 // Future dates get max score
	}
	if yearsSince >= recencyHorizonYears {
		return 0.0
	}

	return 1.0 - (yearsSince / recencyHorizonYears)
}

// seniorityRanks orders title levels for the match bonus/penalty.
var seniorityRanks = map[string]int{
	"intern":    0,
	"junior":    1,
	"mid":       2,
	"senior":    3,
	"staff":     4,
	"lead":      4,
	"principal": 5,
}

// titleSeniorityRank infers a seniority rank from a position title.
// Titles without a recognizable level are treated as mid.
func titleSeniorityRank(title string) int {
	titleLower := strings.ToLower(title)
	best := -1
	for level, rank := range seniorityRanks {
		if strings.Contains(titleLower, level) && rank > best {
			best = rank
		}
	}
	if best == -1 {
		return seniorityRanks["mid"]
	}
	return best
}

// seniorityAdjust returns the bonus/penalty for an entry title against the
// JD's inferred seniority: a bonus for an exact rank match, a penalty when
// the entry sits two or more ranks below the ask, zero otherwise.
func seniorityAdjust(position, jdSeniority string) float64 {
	want, ok := seniorityRanks[strings.ToLower(strings.TrimSpace(jdSeniority))]
	if !ok {
		return 0.0
	}

	have := titleSeniorityRank(position)
	switch {
	case have == want:
		return seniorityBonus
	case want-have >= 2:
		return -seniorityPenalty
	default:
		return 0.0
	}
}

// clamp limits a score to the [0, 1] range.
func clamp(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// workEntryText concatenates the searchable text of a work entry.
func workEntryText(w *types.WorkExperience) string {
	var sb strings.Builder
	sb.WriteString(w.Name)
	sb.WriteString(" ")
	sb.WriteString(w.Position)
	sb.WriteString(" ")
	sb.WriteString(w.Summary)
	for _, h := range w.Highlights {
		sb.WriteString(" ")
		sb.WriteString(h.Text)
	}
	for _, t := range w.TechStack {
		sb.WriteString(" ")
		sb.WriteString(t)
	}
	return sb.String()
}

// projectEntryText concatenates the searchable text of a project entry.
func projectEntryText(p *types.Project) string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteString(" ")
	sb.WriteString(p.Description)
	for _, h := range p.Highlights {
		sb.WriteString(" ")
		sb.WriteString(h.Text)
	}
	for _, t := range p.TechStack {
		sb.WriteString(" ")
		sb.WriteString(t)
	}
	return sb.String()
}

// educationEntryText concatenates the searchable text of an education entry.
func educationEntryText(e *types.Education) string {
	var sb strings.Builder
	sb.WriteString(e.Institution)
	sb.WriteString(" ")
	sb.WriteString(e.Area)
	sb.WriteString(" ")
	sb.WriteString(e.StudyType)
	for _, c := range e.Courses {
		sb.WriteString(" ")
		sb.WriteString(c)
	}
	return sb.String()
}

// skillEntryText concatenates the searchable text of a skill.
func skillEntryText(s *types.Skill) string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteString(" ")
	sb.WriteString(s.Category)
	for _, k := range s.Keywords {
		sb.WriteString(" ")
		sb.WriteString(k)
	}
	return sb.String()
}
