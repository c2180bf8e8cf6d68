package repository

import (
	"errors"
	"etfoptimizer/internal/domain"
	"fmt"

	"github.com/lib/pq"
)

// classifyWriteError narrows a failed write: integrity errors (class 23)
// become domain.ConstraintViolationError, which a caller may report to the
// user; everything else stays an opaque fatal error.
func classifyWriteError(table string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return domain.ConstraintViolationError{Table: table, Err: err}
	}

	return fmt.Errorf("failed to write to %s: %w", table, err)
}
