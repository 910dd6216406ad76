package engine

import (
	"errors"
	"fmt"
	"strings"

	"curator/internal/ledger"
)

var (
	ErrIO            = errors.New("io error")
	ErrConfiguration = errors.New("configuration error")
	ErrLogWrite      = errors.New("audit log write error")
	ErrNotFound      = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// failureStatus maps a pipeline error to the ledger status recorded for the
// file. A file that is gone by the time its stage runs is a skip, not an
// error.
func failureStatus(err error) string {
	if errors.Is(err, ErrNotFound) {
		return ledger.StatusSkipped
	}
	return ledger.StatusError
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
