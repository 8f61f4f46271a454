package upload

import (
	"context"
	"errors"

	"medibook/models"
	"medibook/utils"
)

// ErrTransferFailed is the simulated transient failure.
var ErrTransferFailed = errors.New("Upload failed. Please try again.")

// Transport moves a staged file to its destination and returns its URL.
type Transport interface {
	Transfer(ctx context.Context, upload models.Upload, path string) (string, error)
}

// SimulatedTransport succeeds with probability SuccessRate.
type SimulatedTransport struct {
	Rand        utils.RandomSource
	SuccessRate float64
}

func (t SimulatedTransport) Transfer(_ context.Context, _ models.Upload, _ string) (string, error) {
	if t.Rand.Float64() < t.SuccessRate {
		return "", nil
	}
	return "", ErrTransferFailed
}
