package rowmap

import (
	"context"
	"database/sql"
)

// Querier is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query executes the SQL query and materializes all result rows into records.
// Unlike [Materialize], Query owns the rows it opens and closes them; a Close
// error is returned if nothing else failed.
//
// Query returns nil (and no error) if the query yields no rows.
//
// Example:
//
//	records, err := rowmap.Query(ctx, db, `SELECT id, email FROM users ORDER BY id`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range records {
//	    fmt.Println(r.Get("id"), r.Get("email"))
//	}
func Query(ctx context.Context, q Querier, query string, args ...any) (out []Record, err error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			out, err = nil, cerr
		}
	}()
	return readRecords(rows)
}
