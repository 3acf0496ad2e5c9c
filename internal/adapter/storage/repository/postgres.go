package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/yporders/internal/adapter/storage"
	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

var orderColumns = []string{"id", "items", "total", "status", "user_id", "payment_method", "version"}

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (or *Repository) NextOrderID(ctx context.Context) (domain.OrderID, error) {
	var id int64
	err := or.db.Conn(ctx).QueryRow(ctx, "SELECT nextval('orders_id_seq')").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next order id: %w", err)
	}
	return domain.OrderID(id), nil
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := or.db.QueryBuilder.Insert("orders").
		Columns(orderColumns...).
		Values(
			int64(order.ID),
			[]byte(order.Items),
			order.Total,
			string(order.Status),
			nullableUserID(order.UserID),
			order.PaymentMethod,
			1,
		)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = or.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}

	created := *order
	created.Version = 1
	return &created, nil
}

func (or *Repository) ReadOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": int64(id)})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}

	return order, nil
}

func (or *Repository) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Update("orders").
		Set("items", []byte(order.Items)).
		Set("total", order.Total).
		Set("status", string(order.Status)).
		Set("user_id", nullableUserID(order.UserID)).
		Set("payment_method", order.PaymentMethod).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": int64(order.ID), "version": order.Version}).
		Suffix("RETURNING version")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	var version int64
	err = or.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// the row is gone or its version moved on
			if _, readErr := or.ReadOrder(ctx, order.ID); readErr != nil {
				return nil, readErr
			}
			return nil, domain.ErrConflictingData
		}
		return nil, translate(err)
	}

	updated := *order
	updated.Version = version
	return &updated, nil
}

func (or *Repository) DeleteOrder(ctx context.Context, id domain.OrderID) (bool, error) {
	sql, args, err := or.db.QueryBuilder.
		Delete("orders").
		Where(sq.Eq{"id": int64(id)}).
		ToSql()
	if err != nil {
		return false, err
	}

	tag, err := or.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (or *Repository) ListOrders(ctx context.Context, limit, offset uint64) ([]*domain.Order, error) {
	list := make([]*domain.Order, 0, limit)
	if limit == 0 {
		return list, nil
	}

	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("id").
		Limit(limit).
		Offset(offset)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order  domain.Order
		id     int64
		items  []byte
		status string
		userID pgtype.Int8
	)

	err := row.Scan(
		&id,
		&items,
		&order.Total,
		&status,
		&userID,
		&order.PaymentMethod,
		&order.Version,
	)
	if err != nil {
		return nil, err
	}

	order.ID = domain.OrderID(id)
	order.Items = domain.Items(items)
	order.Status = domain.OrderStatus(status)
	if userID.Valid {
		order.UserID = uint64(userID.Int64)
	}

	return &order, nil
}

func nullableUserID(userID uint64) pgtype.Int8 {
	return pgtype.Int8{Int64: int64(userID), Valid: userID != 0}
}

func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure:
			return fmt.Errorf("%w: %s", domain.ErrConflictingData, pgErr.Message)
		}
	}
	return err
}
