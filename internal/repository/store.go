package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"bookstore-api/pkg/database"
)

// ErrStaleEntity is returned by Commit when an update or delete matched no row.
var ErrStaleEntity = errors.New("entity no longer exists")

// Store is the data store collaborator behind a Repository.
type Store[T Entity] interface {
	FindAll(ctx context.Context) ([]T, error)
	// FindByID returns database.ErrNoRows when no row has the id.
	FindByID(ctx context.Context, id int) (T, error)
	Exists(ctx context.Context, id int) (bool, error)
	// Commit applies every change of uow in one transaction and returns the
	// number of affected rows. Nothing is applied when an error is returned.
	Commit(ctx context.Context, uow *UnitOfWork[T]) (int64, error)
}

// SQLStore implements Store with plain SQL over database.DB.
type SQLStore[T Entity] struct {
	db    database.DB
	table Table[T]

	selectAll  string
	selectByID string
	existsByID string
	insert     string
	update     string
	delete     string
}

var _ Store[Entity] = (*SQLStore[Entity])(nil)

func NewSQLStore[T Entity](db database.DB, table Table[T]) *SQLStore[T] {
	s := &SQLStore[T]{db: db, table: table}
	s.buildQueries()
	return s
}

func (s *SQLStore[T]) buildQueries() {
	d := s.db.Dialect()
	name := pq.QuoteIdentifier(s.table.Name)

	cols := make([]string, len(s.table.Columns))
	binds := make([]string, len(s.table.Columns))
	sets := make([]string, len(s.table.Columns))
	for i, c := range s.table.Columns {
		cols[i] = pq.QuoteIdentifier(c)
		binds[i] = d.Placeholder(i + 1)
		sets[i] = cols[i] + " = " + binds[i]
	}
	selectCols := `"id", ` + strings.Join(cols, ", ")
	idBind := d.Placeholder(len(cols) + 1)

	s.selectAll = fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, selectCols, name)
	s.selectByID = fmt.Sprintf(`SELECT %s FROM %s WHERE "id" = %s`, selectCols, name, d.Placeholder(1))
	s.existsByID = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE "id" = %s)`, name, d.Placeholder(1))
	s.insert = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING "id"`,
		name, strings.Join(cols, ", "), strings.Join(binds, ", "))
	s.update = fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = %s`, name, strings.Join(sets, ", "), idBind)
	s.delete = fmt.Sprintf(`DELETE FROM %s WHERE "id" = %s`, name, d.Placeholder(1))
}

func (s *SQLStore[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := s.db.Query(ctx, s.selectAll)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table.Name, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		e := s.table.New()
		if err := rows.Scan(s.table.Fields(e)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table.Name, err)
	}
	return result, nil
}

func (s *SQLStore[T]) FindByID(ctx context.Context, id int) (T, error) {
	e := s.table.New()
	if err := s.db.QueryRow(ctx, s.selectByID, id).Scan(s.table.Fields(e)...); err != nil {
		var zero T
		return zero, err
	}
	return e, nil
}

func (s *SQLStore[T]) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, s.existsByID, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SQLStore[T]) Commit(ctx context.Context, uow *UnitOfWork[T]) (int64, error) {
	changes := uow.Changes()

	// ids assigned inside a transaction that later rolls back are reverted
	originalIDs := make([]int, len(changes))
	for i, c := range changes {
		originalIDs[i] = c.Entity.GetID()
	}

	var affected int64
	err := s.db.InTx(ctx, func(q database.Querier) error {
		for _, c := range changes {
			n, err := s.apply(ctx, q, c)
			if err != nil {
				return fmt.Errorf("%s %s id=%d: %w", c.Op, s.table.Name, c.Entity.GetID(), err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		for i, c := range changes {
			c.Entity.SetID(originalIDs[i])
		}
		return 0, err
	}
	return affected, nil
}

func (s *SQLStore[T]) apply(ctx context.Context, q database.Querier, c Change[T]) (int64, error) {
	switch c.Op {
	case OpInsert:
		var id int
		if err := q.QueryRow(ctx, s.insert, s.table.Values(c.Entity)...).Scan(&id); err != nil {
			return 0, err
		}
		c.Entity.SetID(id)
		return 1, nil

	case OpUpdate:
		args := append(s.table.Values(c.Entity), c.Entity.GetID())
		n, err := q.Exec(ctx, s.update, args...)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, ErrStaleEntity
		}
		return n, nil

	case OpDelete:
		n, err := q.Exec(ctx, s.delete, c.Entity.GetID())
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, ErrStaleEntity
		}
		return n, nil
	}
	return 0, fmt.Errorf("unsupported operation %d", c.Op)
}
