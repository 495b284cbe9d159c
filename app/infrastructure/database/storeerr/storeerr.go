package storeerr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"streamvibe.tv/read-gateway/app/domain/common"
)

// Map folds driver errors into the domain taxonomy: absent rows become
// ErrNotFound, everything else (timeouts, broken connections, cancelled
// contexts) becomes ErrTransient. Callers never see driver error types.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%v: %w", err, common.ErrTransient)
}
