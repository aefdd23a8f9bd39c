package availability

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEquipment = errors.New("unknown equipment")
	ErrMissingStock     = errors.New("missing stock")
	ErrUnknownStrategy  = errors.New("unknown availability strategy")
)

// MissingStockError reports a planning row whose equipment has no catalog stock.
type MissingStockError struct {
	EquipmentID int
}

func (e *MissingStockError) Error() string {
	return fmt.Sprintf("planning references equipment %d which has no stock in the catalog", e.EquipmentID)
}

func (e *MissingStockError) Is(target error) bool { return target == ErrMissingStock }
