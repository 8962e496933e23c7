package domain

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
)

// statusSuccess is the literal indicator mutating tools return on success.
const statusSuccess = "success"

// failureStatus degrades a domain failure to a reportable indicator string.
// The originating code is kept in the logs; the caller sees uniform text.
// Unexpected kinds (persistence, unknown) surface as tool errors instead.
func failureStatus(logger *log.Logger, op string, err error) (string, error) {
	logger.Printf("%s failed: code=%s err=%v", op, apperrors.CodeOf(err), err)

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindConflict, apperrors.KindGenerator:
		return fmt.Sprintf("failure: %s", err.Error()), nil
	default:
		return "", fmt.Errorf("%s failed", op)
	}
}

// toolFailure is the read-tool counterpart of failureStatus: domain
// failures keep their message, anything unexpected is reduced to the
// operation name so storage details never leak to the caller.
func toolFailure(logger *log.Logger, op string, err error) error {
	logger.Printf("%s failed: code=%s err=%v", op, apperrors.CodeOf(err), err)

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindConflict, apperrors.KindGenerator:
		return fmt.Errorf("%s failed: %s", op, err.Error())
	default:
		return fmt.Errorf("%s failed", op)
	}
}
