package models

// Capabilities describes what the host environment lets us reach
type Capabilities struct {
	HasProcFS       bool `json:"hasProcFs"`
	HasDockerSocket bool `json:"hasDockerSocket"`
}
