package operation

import "context"

// Journal is the append-only store of completed operations. Entries are keyed
// by operation id with a secondary access path by (account id, timestamp) for
// descending paginated reads. There is no update or delete.
type Journal interface {
	Append(ctx context.Context, op Operation) error
	Get(ctx context.Context, id string) (Operation, error)

	// ListByAccount returns every entry for the account in any stable order.
	// A missing account yields an empty list, not an error.
	ListByAccount(ctx context.Context, accountID string) ([]Operation, error)

	// ListPage returns the zero-indexed page ordered by timestamp descending.
	ListPage(ctx context.Context, accountID string, page, size int) ([]Operation, error)

	CountByAccount(ctx context.Context, accountID string) (int64, error)
}
