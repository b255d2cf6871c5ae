package process

// ProcessID represents a unique identifier for a process
type ProcessID int
