package selection

import (
	"sort"
	"time"

	"github.com/jonathan/resume-mate/internal/types"
)

// Limits caps how many entries each collection may contribute to the
// tailored profile.
type Limits struct {
	MaxWork      int
	MaxProjects  int
	MaxEducation int
	MaxSkills    int
}

// DefaultLimits returns the caps used when the caller does not override them.
func DefaultLimits() Limits {
	return Limits{
		MaxWork:      4,
		MaxProjects:  3,
		MaxEducation: 2,
		MaxSkills:    10,
	}
}

// Result holds the ranked, capped selection per collection, in rank order.
type Result struct {
	Work      []types.SelectionEntry
	Projects  []types.SelectionEntry
	Education []types.SelectionEntry
	Skills    []types.SelectionEntry

	// KeywordFallback is true when the requirements carried no matchable
	// keywords and ranking degraded to recency only.
	KeywordFallback bool
}

// Entries flattens the selection into a single slice in collection order.
func (r *Result) Entries() []types.SelectionEntry {
	entries := make([]types.SelectionEntry, 0,
		len(r.Work)+len(r.Projects)+len(r.Education)+len(r.Skills))
	entries = append(entries, r.Work...)
	entries = append(entries, r.Projects...)
	entries = append(entries, r.Education...)
	entries = append(entries, r.Skills...)
	return entries
}

// Select ranks the profile's entries against the analyzed requirements and
// returns the top entries per collection. It is pure and deterministic:
// no I/O, no randomness, and equal scores keep the original profile order.
func Select(profile *types.MasterProfile, reqs *types.JobRequirements, limits Limits) *Result {
	return selectAt(profile, reqs, limits, time.Now())
}

// selectAt is Select with an injectable clock for recency scoring.
func selectAt(profile *types.MasterProfile, reqs *types.JobRequirements, limits Limits, now time.Time) *Result {
	targets := buildTargets(reqs)
	total := totalTargetWeight(targets)
	fallback := total == 0

	result := &Result{KeywordFallback: fallback}

	seniority := ""
	if reqs != nil {
		seniority = reqs.Seniority
	}

	result.Work = rank(scoreWork(profile.Work, targets, total, seniority, fallback, now), limits.MaxWork)
	result.Projects = rank(scoreProjects(profile.Projects, targets, total, fallback, now), limits.MaxProjects)
	result.Education = rank(scoreEducation(profile.Education, targets, total, fallback, now), limits.MaxEducation)
	result.Skills = rank(scoreSkills(profile.Skills, targets, total, fallback), limits.MaxSkills)

	return result
}

// rank sorts scored entries descending and keeps at most limit of them.
// sort.SliceStable preserves original profile order among equal scores.
func rank(entries []types.SelectionEntry, limit int) []types.SelectionEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func scoreWork(work []types.WorkExperience, targets []target, total float64, seniority string, fallback bool, now time.Time) []types.SelectionEntry {
	entries := make([]types.SelectionEntry, 0, len(work))
	for i := range work {
		w := &work[i]
		recency := recencyScore(w.EndDate, now)

		var score float64
		if fallback {
			score = recency
		} else {
			score = keywordWeight*keywordOverlapScore(workEntryText(w), targets, total) +
				recencyWeight*recency +
				seniorityAdjust(w.Position, seniority)
		}

		entries = append(entries, types.SelectionEntry{
			Collection: types.CollectionWork,
			EntryID:    w.ID,
			Score:      clamp(score),
		})
	}
	return entries
}

func scoreProjects(projects []types.Project, targets []target, total float64, fallback bool, now time.Time) []types.SelectionEntry {
	entries := make([]types.SelectionEntry, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		recency := recencyScore(p.EndDate, now)

		var score float64
		if fallback {
			score = recency
		} else {
			score = keywordWeight*keywordOverlapScore(projectEntryText(p), targets, total) +
				recencyWeight*recency
		}

		entries = append(entries, types.SelectionEntry{
			Collection: types.CollectionProjects,
			EntryID:    p.ID,
			Score:      clamp(score),
		})
	}
	return entries
}

func scoreEducation(education []types.Education, targets []target, total float64, fallback bool, now time.Time) []types.SelectionEntry {
	entries := make([]types.SelectionEntry, 0, len(education))
	for i := range education {
		e := &education[i]
		recency := recencyScore(e.EndDate, now)

		var score float64
		if fallback {
			score = recency
		} else {
			score = keywordWeight*keywordOverlapScore(educationEntryText(e), targets, total) +
				recencyWeight*recency
		}

		entries = append(entries, types.SelectionEntry{
			Collection: types.CollectionEducation,
			EntryID:    e.ID,
			Score:      clamp(score),
		})
	}
	return entries
}

// scoreSkills scores skills on keyword overlap alone; skills carry no dates.
// In fallback mode every skill scores zero and the stable sort keeps the
// profile's original skill order.
func scoreSkills(skills []types.Skill, targets []target, total float64, fallback bool) []types.SelectionEntry {
	entries := make([]types.SelectionEntry, 0, len(skills))
	for i := range skills {
		s := &skills[i]

		var score float64
		if !fallback {
			score = keywordOverlapScore(skillEntryText(s), targets, total)
		}

		entries = append(entries, types.SelectionEntry{
			Collection: types.CollectionSkills,
			EntryID:    s.Name,
			Score:      clamp(score),
		})
	}
	return entries
}
