package renderer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("template config invalid")
	ErrBackendTimeout   = errors.New("backend timed out")
	ErrBackendFailed    = errors.New("backend failed")
	ErrInvalidOutput    = errors.New("backend produced invalid output")
	ErrAssetFetchFailed = errors.New("asset fetch failed")
	ErrChainExhausted   = errors.New("render chain exhausted")
	ErrBatchItemFailed  = errors.New("batch item failed")
)

// ConfigInvalidError is returned before any backend runs. It is never retried.
type ConfigInvalidError struct {
	Problems []string
}

func (e *ConfigInvalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfigInvalid, strings.Join(e.Problems, "; "))
}

func (e *ConfigInvalidError) Is(target error) bool {
	return target == ErrConfigInvalid
}

type BackendTimeoutError struct {
	Backend string
	Timeout time.Duration
}

func (e *BackendTimeoutError) Error() string {
	return fmt.Sprintf("backend %s timed out after %s", e.Backend, e.Timeout)
}

func (e *BackendTimeoutError) Is(target error) bool {
	return target == ErrBackendTimeout
}

// BackendError covers a backend that returned an error, panicked or produced
// output that failed validation.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendFailed
}

// AssetFetchFailedError never fails a render; the element is dropped instead.
type AssetFetchFailedError struct {
	URL string
	Err error
}

func (e *AssetFetchFailedError) Error() string {
	return fmt.Sprintf("failed to fetch asset %s: %v", e.URL, e.Err)
}

func (e *AssetFetchFailedError) Unwrap() error {
	return e.Err
}

func (e *AssetFetchFailedError) Is(target error) bool {
	return target == ErrAssetFetchFailed
}

// ChainExhaustedError lists every attempt when no backend produced output.
type ChainExhaustedError struct {
	Attempts []RenderAttempt
}

func (e *ChainExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrChainExhausted.Error() + ": no backends configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %s", a.Backend, a.Error)
	}
	return fmt.Sprintf("%s after %d attempts (%s)", ErrChainExhausted, len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ChainExhaustedError) Is(target error) bool {
	return target == ErrChainExhausted
}

// BatchItemFailedError wraps the failure of one batch item.
type BatchItemFailedError struct {
	ItemID string
	Err    error
}

func (e *BatchItemFailedError) Error() string {
	return fmt.Sprintf("batch item %s failed: %v", e.ItemID, e.Err)
}

func (e *BatchItemFailedError) Unwrap() error {
	return e.Err
}

func (e *BatchItemFailedError) Is(target error) bool {
	return target == ErrBatchItemFailed
}
