package jobs

// ImportQueue provides an abstraction for enqueueing catalog imports
type ImportQueue interface {
	EnqueueImport(dataset string) error
}
