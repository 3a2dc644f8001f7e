package models

import "time"

// ProcessEntry identifies a live process found by the directory
type ProcessEntry struct {
	Pid       int32     `json:"pid"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
}

// ProcessStats is one snapshot of a process's resource usage
type ProcessStats struct {
	HandleCount int64 `json:"handleCount"`
	MemoryBytes int64 `json:"memoryBytes"`
	ThreadCount int64 `json:"threadCount"`
}
