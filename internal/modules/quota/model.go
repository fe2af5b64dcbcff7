package quota

import "errors"

// ErrQuotaExhausted is returned when a user has no AI turns remaining for the
// current month.
var ErrQuotaExhausted = errors.New("monthly turn quota exhausted")

// DefaultTurns is the number of AI dialogue turns granted per month.
const DefaultTurns = 200
