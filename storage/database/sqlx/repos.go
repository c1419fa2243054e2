// Package sqlxrepos implements the core repositories on Postgres with
// sqlx-scanned, squirrel-built queries.
package sqlxrepos

import sq "github.com/Masterminds/squirrel"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
