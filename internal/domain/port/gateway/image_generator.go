package gateway

import "context"

// VendorStatus is the state of a task at the image vendor
type VendorStatus string

const (
	VendorStatusRunning   VendorStatus = "running"
	VendorStatusSucceeded VendorStatus = "succeeded"
	VendorStatusFailed    VendorStatus = "failed"
)

// GenerationRequest is the input of one vendor task
type GenerationRequest struct {
	Prompt string
	// ReferenceImages are urls or data urls of source images
	ReferenceImages []string
}

// GenerationResult is the last known state of a vendor task
type GenerationResult struct {
	TaskID        string
	Status        VendorStatus
	ImageURL      string
	Content       string
	FailureReason string
	// Raw is the last vendor response body, kept for auditing
	Raw []byte
}

// ImageGenerator submits generation tasks to an external vendor
type ImageGenerator interface {
	// Generate submits a task and polls it until it leaves the running state or
	// polling is exhausted, in which case the result is still running
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)

	// Fetch returns the current state of a submitted task
	Fetch(ctx context.Context, taskID string) (*GenerationResult, error)
}
