package tailoring

import "fmt"

// Stage identifies a pipeline stage for progress reporting and errors.
type Stage string

// Pipeline stages in execution order, plus the two terminal states.
const (
	StageAnalyzingJD      Stage = "analyzing_jd"
	StageSelectingContent Stage = "selecting_content"
	StageRewritingContent Stage = "rewriting_content"
	StageValidatingOutput Stage = "validating_output"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

// StageError wraps a failure with the pipeline stage it occurred in, so
// callers can report where a run stopped.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline failed at stage %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// PipelineInvariantError reports that the pipeline's own output failed
// validation. It indicates a bug in a stage rather than bad user input.
type PipelineInvariantError struct {
	Message string
	Cause   error
}

func (e *PipelineInvariantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pipeline invariant violated: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pipeline invariant violated: %s", e.Message)
}

func (e *PipelineInvariantError) Unwrap() error {
	return e.Cause
}
