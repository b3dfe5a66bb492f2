package services

import (
	"fmt"

	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

// persistenceErr tags a storage failure so handlers map it to a 5xx while
// keeping the driver error in the chain.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrPersistence, err)
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, pkgerrors.ErrInvalidArgument)...)
}
