package sync

import (
	"errors"
	"fmt"
)

// Error codes carried in the structured failure body of the sync endpoint.
const (
	CodeValidation  = "validation_error"
	CodeSequenceGap = "sequence_gap"
	CodeInternal    = "internal_error"
)

// ErrValidation marks a malformed push or pull envelope. Validation failures
// are rejected before any state is mutated.
var ErrValidation = errors.New("invalid sync request")

// SequenceGapError reports a push mutation that arrived ahead of the
// client's expected sequence. Mutations before the gap within the same batch
// have already been applied and committed; the client must resend starting
// from LastMutationID + 1.
type SequenceGapError struct {
	ClientID       string
	Expected       int
	Got            int
	LastMutationID int
}

func (e *SequenceGapError) Error() string {
	return fmt.Sprintf("mutation sequence gap for client %s: expected %d, got %d", e.ClientID, e.Expected, e.Got)
}
