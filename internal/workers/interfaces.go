// Package workers runs the server's background jobs, such as finishing
// registrations that were left pending by partial uploads.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
