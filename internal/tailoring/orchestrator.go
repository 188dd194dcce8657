// Package tailoring runs the end-to-end pipeline that turns a master
// profile and a job description into a validated tailored profile.
package tailoring

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-mate/internal/analyzer"
	"github.com/jonathan/resume-mate/internal/llm"
	"github.com/jonathan/resume-mate/internal/rewriting"
	"github.com/jonathan/resume-mate/internal/schemas"
	"github.com/jonathan/resume-mate/internal/selection"
	"github.com/jonathan/resume-mate/internal/types"
)

// Orchestrator drives the tailoring pipeline:
// analyze -> select -> rewrite -> validate.
type Orchestrator struct {
	client      llm.Client
	logger      *zap.Logger
	limits      selection.Limits
	rewriteOpts rewriting.Options
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLimits overrides the per-collection selection caps.
func WithLimits(limits selection.Limits) Option {
	return func(o *Orchestrator) {
		o.limits = limits
	}
}

// WithRewriteOptions overrides the rewrite tier and concurrency.
func WithRewriteOptions(opts rewriting.Options) Option {
	return func(o *Orchestrator) {
		o.rewriteOpts = opts
	}
}

// New creates an Orchestrator with default limits and rewrite options.
func New(client llm.Client, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		client:      client,
		logger:      logger,
		limits:      selection.DefaultLimits(),
		rewriteOpts: rewriting.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Tailor runs the full pipeline for one job description. The master profile
// is never mutated; the returned TailoredProfile holds a rewritten subset of
// it plus the selection provenance and any rewrite warnings.
func (o *Orchestrator) Tailor(ctx context.Context, profile *types.MasterProfile, jdText string) (*types.TailoredProfile, error) {
	o.logger.Info("pipeline stage", zap.String("stage", string(StageAnalyzingJD)))
	reqs, err := analyzer.Analyze(ctx, o.client, jdText)
	if err != nil {
		return nil, &StageError{Stage: StageAnalyzingJD, Cause: err}
	}
	o.logger.Debug("requirements extracted",
		zap.Int("required_skills", len(reqs.RequiredSkills)),
		zap.Int("preferred_skills", len(reqs.PreferredSkills)),
		zap.Int("keywords", len(reqs.Keywords)),
		zap.String("seniority", reqs.Seniority),
		zap.String("role_mission", llm.TruncateForLog(reqs.RoleMission, 120)))

	o.logger.Info("pipeline stage", zap.String("stage", string(StageSelectingContent)))
	if !reqs.HasMatchableKeywords() {
		o.logger.Warn("requirements carry no matchable keywords, ranking by recency only")
	}
	sel := selection.Select(profile, reqs, o.limits)
	o.logger.Debug("entries selected",
		zap.Int("work", len(sel.Work)),
		zap.Int("projects", len(sel.Projects)),
		zap.Int("education", len(sel.Education)),
		zap.Int("skills", len(sel.Skills)))

	tailored := buildSubset(profile, sel)

	o.logger.Info("pipeline stage", zap.String("stage", string(StageRewritingContent)))
	warnings, err := rewriting.Rewrite(ctx, o.client, &tailored.Profile, reqs, o.rewriteOpts)
	if err != nil {
		return nil, &StageError{Stage: StageRewritingContent, Cause: err}
	}
	tailored.Warnings = warnings
	for _, w := range warnings {
		o.logger.Warn("entry kept original text",
			zap.String("entry_id", w.EntryID),
			zap.String("reason", w.Reason))
	}

	o.logger.Info("pipeline stage", zap.String("stage", string(StageValidatingOutput)))
	if err := validateOutput(tailored); err != nil {
		return nil, &StageError{Stage: StageValidatingOutput, Cause: err}
	}

	o.logger.Info("pipeline stage", zap.String("stage", string(StageDone)),
		zap.Int("selected_entries", len(tailored.Selection)),
		zap.Int("warnings", len(tailored.Warnings)))
	return tailored, nil
}

// buildSubset deep-copies the selected entries out of the master profile so
// the rewrite stage can mutate text without touching the source of truth.
func buildSubset(profile *types.MasterProfile, sel *selection.Result) *types.TailoredProfile {
	tailored := &types.TailoredProfile{
		Profile:   types.MasterProfile{Basics: copyBasics(&profile.Basics)},
		Selection: sel.Entries(),
	}

	for _, entry := range sel.Work {
		if w := profile.FindWork(entry.EntryID); w != nil {
			tailored.Profile.Work = append(tailored.Profile.Work, copyWork(w))
		}
	}
	for _, entry := range sel.Projects {
		if p := profile.FindProject(entry.EntryID); p != nil {
			tailored.Profile.Projects = append(tailored.Profile.Projects, copyProject(p))
		}
	}
	for _, entry := range sel.Education {
		if e := profile.FindEducation(entry.EntryID); e != nil {
			tailored.Profile.Education = append(tailored.Profile.Education, *e)
		}
	}
	for _, entry := range sel.Skills {
		if s := profile.FindSkill(entry.EntryID); s != nil {
			tailored.Profile.Skills = append(tailored.Profile.Skills, copySkill(s))
		}
	}

	return tailored
}

func copyBasics(b *types.Basics) types.Basics {
	out := *b
	if b.Location != nil {
		loc := *b.Location
		out.Location = &loc
	}
	out.Profiles = append([]types.SocialProfile(nil), b.Profiles...)
	return out
}

func copyWork(w *types.WorkExperience) types.WorkExperience {
	out := *w
	out.Highlights = append([]types.Highlight(nil), w.Highlights...)
	out.TechStack = append([]string(nil), w.TechStack...)
	return out
}

func copyProject(p *types.Project) types.Project {
	out := *p
	out.Highlights = append([]types.Highlight(nil), p.Highlights...)
	out.TechStack = append([]string(nil), p.TechStack...)
	return out
}

func copySkill(s *types.Skill) types.Skill {
	out := *s
	out.Keywords = append([]string(nil), s.Keywords...)
	return out
}

// validateOutput checks the tailored profile against the shared schema and
// audits that selection provenance and profile contents agree. A failure
// here is a pipeline bug, not a user error.
func validateOutput(tailored *types.TailoredProfile) error {
	if err := schemas.ValidateProfileValue(tailored.Profile); err != nil {
		return &PipelineInvariantError{
			Message: "tailored profile does not satisfy the profile schema",
			Cause:   err,
		}
	}
	return auditProvenance(tailored)
}

// auditProvenance verifies a one-to-one correspondence between the
// selection annotations and the entries actually present in the profile.
func auditProvenance(tailored *types.TailoredProfile) error {
	selected := make(map[types.Collection]map[string]bool)
	for _, entry := range tailored.Selection {
		if selected[entry.Collection] == nil {
			selected[entry.Collection] = make(map[string]bool)
		}
		if selected[entry.Collection][entry.EntryID] {
			return &PipelineInvariantError{
				Message: "duplicate selection entry " + entry.EntryID,
			}
		}
		selected[entry.Collection][entry.EntryID] = true
	}

	check := func(collection types.Collection, ids []string) error {
		present := make(map[string]bool, len(ids))
		for _, id := range ids {
			present[id] = true
			if !selected[collection][id] {
				return &PipelineInvariantError{
					Message: string(collection) + " entry " + id + " has no selection provenance",
				}
			}
		}
		for id := range selected[collection] {
			if !present[id] {
				return &PipelineInvariantError{
					Message: "selected " + string(collection) + " entry " + id + " is missing from the profile",
				}
			}
		}
		return nil
	}

	p := &tailored.Profile
	workIDs := make([]string, 0, len(p.Work))
	for i := range p.Work {
		workIDs = append(workIDs, p.Work[i].ID)
	}
	projectIDs := make([]string, 0, len(p.Projects))
	for i := range p.Projects {
		projectIDs = append(projectIDs, p.Projects[i].ID)
	}
	educationIDs := make([]string, 0, len(p.Education))
	for i := range p.Education {
		educationIDs = append(educationIDs, p.Education[i].ID)
	}
	skillIDs := make([]string, 0, len(p.Skills))
	for i := range p.Skills {
		skillIDs = append(skillIDs, p.Skills[i].Name)
	}

	for _, c := range []struct {
		collection types.Collection
		ids        []string
	}{
		{types.CollectionWork, workIDs},
		{types.CollectionProjects, projectIDs},
		{types.CollectionEducation, educationIDs},
		{types.CollectionSkills, skillIDs},
	} {
		if err := check(c.collection, c.ids); err != nil {
			return err
		}
	}
	return nil
}
