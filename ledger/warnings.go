package ledger

import "fmt"

// =============================================================================
// WARNINGS - Non-fatal findings attached to computed results
// =============================================================================

type WarningCode string

const (
	// WarnNegativeChannel: a channel carries a negative value. Accepted
	// as a correction, not clamped, but surfaced so intent is explicit.
	WarnNegativeChannel WarningCode = "negative_channel"

	// WarnUnparsedDate: the entry's stored date could not be parsed;
	// the bucketer treats the record as current.
	WarnUnparsedDate WarningCode = "unparsed_date"
)

// Warning is attached to a computation result, never thrown. A
// malformed single record degrades its own derived fields without
// affecting the rest of the batch.
type Warning struct {
	Code    WarningCode
	Channel string
	Detail  string
}

func (w Warning) String() string {
	if w.Channel == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", w.Code, w.Channel, w.Detail)
}
