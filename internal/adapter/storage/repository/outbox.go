package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/yporders/internal/adapter/storage"
	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxRepository struct {
	db *storage.DB
}

func NewOutboxRepository(db *storage.DB) (*OutboxRepository, error) {
	return &OutboxRepository{db: db}, nil
}

// Enqueue joins the transaction carried by ctx, if any.
func (r *OutboxRepository) Enqueue(ctx context.Context, msg *port.OutboxMessage) error {
	sql, args, err := r.db.QueryBuilder.
		Insert("outbox").
		Columns("id", "topic", "key", "payload").
		Values(string(msg.ID), msg.Topic, msg.Key, msg.Payload).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("enqueue outbox message %s: %w", msg.ID, translate(err))
	}
	return nil
}

// FetchPending locks the returned rows until the transaction carried by ctx
// ends. Rows locked by another transaction are skipped.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int, maxAttempts int) ([]*port.OutboxMessage, error) {
	statement := r.db.QueryBuilder.
		Select("id::text", "topic", "key", "payload", "attempts", "last_error", "created_at", "sent_at").
		From("outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("seq").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")
	if maxAttempts > 0 {
		statement = statement.Where(sq.Lt{"attempts": maxAttempts})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*port.OutboxMessage, 0, limit)
	for rows.Next() {
		var (
			msg       port.OutboxMessage
			id        string
			lastError pgtype.Text
			sentAt    pgtype.Timestamptz
		)
		err := rows.Scan(&id, &msg.Topic, &msg.Key, &msg.Payload, &msg.Attempts, &lastError, &msg.CreatedAt, &sentAt)
		if err != nil {
			return nil, err
		}
		msg.ID = domain.MessageID(id)
		msg.LastError = lastError.String
		if sentAt.Valid {
			t := sentAt.Time
			msg.SentAt = &t
		}
		out = append(out, &msg)
	}

	return out, rows.Err()
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id domain.MessageID) error {
	sql, args, err := r.db.QueryBuilder.
		Update("outbox").
		Set("sent_at", sq.Expr("now()")).
		Where(sq.Eq{"id": string(id)}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id domain.MessageID, cause error) error {
	sql, args, err := r.db.QueryBuilder.
		Update("outbox").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", cause.Error()).
		Where(sq.Eq{"id": string(id)}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
