package process

// Opener opens a process by PID for memory operations.
// Each platform backend exposes a NewWithPID function with this shape.
type Opener func(pid ProcessID) (Process, error)
