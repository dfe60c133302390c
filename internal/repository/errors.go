package repository

import (
	"errors"
	"fmt"

	"lawfirm-cms/internal/model"
)

// storeErr tags persistence failures so handlers can surface them as
// STORE_UNAVAILABLE instead of a generic internal error.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(model.ErrStoreUnavailable, err))
}
