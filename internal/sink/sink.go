package sink

import (
	"context"

	"github.com/loykin/modsnoop/internal/record"
)

// Sink is a secondary destination for inventory records, used by
// deployments that aggregate fleet inventories into a queryable
// store. The dated file tree remains the primary, contract-bearing
// destination; sinks are best-effort and their failures are dropped.
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, r record.Record) error
}
