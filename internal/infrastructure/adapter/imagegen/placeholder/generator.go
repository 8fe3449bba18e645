// Package placeholder is a development image generator that needs no vendor account.
package placeholder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

const (
	taskPrefix = "placeholder-"
	imageURL   = "https://picsum.photos/seed/%s/800/960"
)

// Generator returns deterministic stock photos for a prompt
type Generator struct{}

var _ gateway.ImageGenerator = Generator{}

// NewGenerator creates a placeholder generator
func NewGenerator() Generator {
	return Generator{}
}

// Generate completes immediately; the same request always yields the same image
func (Generator) Generate(ctx context.Context, req gateway.GenerationRequest) (*gateway.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := uuid.NewSHA1(uuid.NameSpaceURL, []byte(req.Prompt+"\x00"+strings.Join(req.ReferenceImages, "\x00")))
	return succeeded(taskPrefix + seed.String()), nil
}

// Fetch returns the completed state of a task issued by Generate
func (Generator) Fetch(ctx context.Context, taskID string) (*gateway.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(taskID, taskPrefix) {
		return &gateway.GenerationResult{
			TaskID:        taskID,
			Status:        gateway.VendorStatusFailed,
			FailureReason: "unknown task",
		}, nil
	}
	return succeeded(taskID), nil
}

func succeeded(taskID string) *gateway.GenerationResult {
	seed := strings.TrimPrefix(taskID, taskPrefix)
	return &gateway.GenerationResult{
		TaskID:   taskID,
		Status:   gateway.VendorStatusSucceeded,
		ImageURL: fmt.Sprintf(imageURL, seed),
		Raw:      []byte(fmt.Sprintf(`{"id":%q,"status":"succeeded"}`, taskID)),
	}
}
