package calculation

import (
	"errors"
	"time"

	"lohnrechner/internal/tax"
)

var ErrNotFound = errors.New("calculation not found")

// Record is one stored calculation: the profile that was submitted and
// the result the engine produced for it.
type Record struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Profile   tax.Profile `json:"profile"`
	Result    tax.Result  `json:"result"`
}
