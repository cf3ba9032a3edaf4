package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"danstore_server/lib"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type whereClause struct {
	query string
	args  []any
}

type relationClause struct {
	name  string
	apply func(*bun.SelectQuery) *bun.SelectQuery
}

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db        *DB
	wheres    []whereClause
	orders    []string
	relations []relationClause
	limitVal  *int
	offsetVal *int
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? = ?", []any{bun.Ident(column), value}})
	return q
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{fmt.Sprintf("? %s ?", operator), []any{bun.Ident(column), value}})
	return q
}

// WhereILike adds a case-insensitive pattern match
func (q *QueryBuilder[T]) WhereILike(column, pattern string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{"? ILIKE ?", []any{bun.Ident(column), pattern}})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(query string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{query, args})
	return q
}

// Relation specifies a relation to preload
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, relationClause{name: name})
	return q
}

// RelationWith preloads a relation with an extra query modifier, typically
// an ORDER BY on the joined rows.
func (q *QueryBuilder[T]) RelationWith(name string, apply func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, relationClause{name: name, apply: apply})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, fmt.Sprintf("%s %s", column, direction))
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

func (q *QueryBuilder[T]) applySelect(sq *bun.SelectQuery) *bun.SelectQuery {
	for _, w := range q.wheres {
		sq = sq.Where(w.query, w.args...)
	}
	for _, rel := range q.relations {
		if rel.apply != nil {
			sq = sq.Relation(rel.name, rel.apply)
		} else {
			sq = sq.Relation(rel.name)
		}
	}
	for _, o := range q.orders {
		sq = sq.Order(o)
	}
	if q.limitVal != nil {
		sq = sq.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		sq = sq.Offset(*q.offsetVal)
	}
	return sq
}

// All executes the query and returns all matching rows
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	var results []T
	err := WithRetry(ctx, func() error {
		results = results[:0]
		return q.applySelect(q.db.NewSelect().Model(&results)).Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return results, nil
}

// First executes the query and returns the first matching row
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	var result T
	err := WithRetry(ctx, func() error {
		return q.applySelect(q.db.NewSelect().Model(&result)).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}
	return &result, nil
}

// Count returns the number of matching rows
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	var model T
	var count int
	err := WithRetry(ctx, func() error {
		sq := q.db.NewSelect().Model(&model)
		for _, w := range q.wheres {
			sq = sq.Where(w.query, w.args...)
		}
		var cerr error
		count, cerr = sq.Count(ctx)
		return cerr
	})
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return count, nil
}

// Exists reports whether any row matches
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts the row and returns it with database defaults applied
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	err := WithRetry(ctx, func() error {
		_, ierr := q.db.NewInsert().Model(data).Returning("*").Exec(ctx)
		return ierr
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return data, nil
}

// Update applies the model's non-zero columns to the matching rows and
// returns the number of rows touched.
func (q *QueryBuilder[T]) Update(ctx context.Context, data *T, columns ...string) (int, error) {
	var affected int
	err := WithRetry(ctx, func() error {
		uq := q.db.NewUpdate().Model(data)
		if len(columns) > 0 {
			uq = uq.Column(columns...)
		}
		for _, w := range q.wheres {
			uq = uq.Where(w.query, w.args...)
		}
		res, uerr := uq.Exec(ctx)
		if uerr != nil {
			return uerr
		}
		n, _ := res.RowsAffected()
		affected = int(n)
		return nil
	})
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return affected, nil
}

// Delete removes the matching rows and returns the number of rows removed
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	var model T
	var affected int
	err := WithRetry(ctx, func() error {
		dq := q.db.NewDelete().Model(&model)
		for _, w := range q.wheres {
			dq = dq.Where(w.query, w.args...)
		}
		res, derr := dq.Exec(ctx)
		if derr != nil {
			return derr
		}
		n, _ := res.RowsAffected()
		affected = int(n)
		return nil
	})
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	return affected, nil
}
