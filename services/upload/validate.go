package upload

import (
	"errors"
	"fmt"
)

// MaxFileSize is the largest document accepted, 25 MB.
const MaxFileSize int64 = 25 * 1024 * 1024

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrEmptyFile    = errors.New("file is empty")
)

// FileMeta describes a file handed to the upload pipeline. Path points at the
// staged copy on disk and may be empty for simulated uploads.
type FileMeta struct {
	Name        string
	Size        int64
	ContentType string
	Path        string
}

// RejectedError is a user-facing refusal raised before any progress exists.
type RejectedError struct {
	FileName string
	Message  string
	Err      error
}

func (e *RejectedError) Error() string { return e.Message }
func (e *RejectedError) Unwrap() error { return e.Err }

// Validate applies the size gate. limit <= 0 means MaxFileSize.
func Validate(meta FileMeta, limit int64) error {
	if limit <= 0 {
		limit = MaxFileSize
	}
	if meta.Size <= 0 {
		return &RejectedError{FileName: meta.Name, Message: fmt.Sprintf("File %q is empty", meta.Name), Err: ErrEmptyFile}
	}
	if meta.Size > limit {
		return &RejectedError{
			FileName: meta.Name,
			Message:  fmt.Sprintf("File %q exceeds the %d MB limit", meta.Name, limit/(1024*1024)),
			Err:      ErrFileTooLarge,
		}
	}
	return nil
}
