package constants

// RunStatus is the canonical status for rows in analysis_run.
type RunStatus string

// Stable values (store these exact strings in DB). Runs go straight from
// RUNNING to a terminal state; extraction and analysis happen in one pass.
const (
	RunStatusRunning  RunStatus = "RUNNING"  // in progress
	RunStatusAnalyzed RunStatus = "ANALYZED" // rooms and compliance computed
	RunStatusFailed   RunStatus = "FAILED"   // terminal failure
)
