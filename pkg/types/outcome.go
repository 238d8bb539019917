package types

// Stage identifies the step of an orchestrated transfer at which a
// failure occurred.
type Stage string

const (
	StageConfig   Stage = "config"
	StageArchive  Stage = "archive"
	StageTransfer Stage = "transfer"
	StageRelocate Stage = "relocate"
	StageCleanup  Stage = "cleanup"
)

// OperationOutcome is the result of one orchestrated transfer. Batch
// uploads collect one outcome per target; a failed target never aborts
// the rest of the batch.
type OperationOutcome struct {
	Target          string
	Key             string
	Success         bool
	FailedStage     Stage
	Err             error
	ArchiveRetained bool
	CompletedPath   string
}
