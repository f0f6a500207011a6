package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// defaultApprovalTimeout bounds how long a command waits for a wallet to
// answer a connect or sign request.
const defaultApprovalTimeout = 2 * time.Minute

// contextWithTimeout returns a timeout context rooted in the command context.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	if d <= 0 {
		d = defaultApprovalTimeout
	}
	return context.WithTimeout(base, d)
}
