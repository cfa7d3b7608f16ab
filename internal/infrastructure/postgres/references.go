package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askstack/askstack-api/pkg/apierr"
)

// appendChildRef pushes childID onto the parent's denormalized reference
// list. The append is a single best-effort UPDATE with no transaction
// around the preceding child insert; if it fails the child persists as
// an orphan and the storage error is surfaced to the caller. Repeated
// calls append duplicates, so callers invoke this exactly once per
// successful child creation.
func appendChildRef(ctx context.Context, pool *pgxpool.Pool, table, column, parentID, childID string) error {
	res, err := pool.Exec(ctx,
		"UPDATE "+table+" SET "+column+" = array_append("+column+", $1), updated_at = now() WHERE id = $2",
		childID, parentID)
	if err != nil {
		return apierr.Storage("There was an error updating the "+table[:len(table)-1], err)
	}
	if res.RowsAffected() == 0 {
		return apierr.Storage("There was an error updating the "+table[:len(table)-1], ErrNotFound)
	}
	return nil
}
