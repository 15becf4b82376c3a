package reports

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
	"github.com/JaimeStill/longevity/pkg/storage"
)

type repo struct {
	db           *sql.DB
	storage      storage.System
	users        Users
	recommender  Recommender
	logger       *slog.Logger
	pagination   pagination.Config
	defaultLimit int
}

// New creates a report repository implementing the System interface.
// defaultLimit applies to generate requests that omit a limit.
func New(
	db *sql.DB,
	store storage.System,
	users Users,
	recommender Recommender,
	logger *slog.Logger,
	pagination pagination.Config,
	defaultLimit int,
) System {
	return &repo{
		db:           db,
		storage:      store,
		users:        users,
		recommender:  recommender,
		logger:       logger.With("system", "reports"),
		pagination:   pagination,
		defaultLimit: defaultLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.defaultLimit)
}

func (r *repo) Generate(ctx context.Context, userID int64, limit int) (*Report, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	id := uuid.New()

	snap, err := Collect(ctx, r.users, r.recommender, id, userID, limit, time.Now())
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := buildStorageKey(id)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("upload report blob: %w", err)
	}

	q := `
		INSERT INTO reports(id, user_id, item_count, size_bytes, storage_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, item_count, size_bytes, storage_key, created_at`

	args := []any{id, userID, snap.Total, int64(len(data)), key}

	rep, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, args, scanReport)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapReference(err, ErrUserNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"report generated",
		"id", rep.ID,
		"user_id", rep.UserID,
		"items", rep.ItemCount,
		"bytes", rep.SizeBytes,
	)
	return &rep, nil
}

func (r *repo) ListByUser(
	ctx context.Context,
	userID int64,
	page pagination.PageRequest,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanReport)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*File, error) {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	blob, err := r.storage.Download(ctx, rep.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download report %s: %w", id, err)
	}

	return &File{Report: rep, Blob: blob}, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, rep.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after report delete",
			"key", rep.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

func buildStorageKey(id uuid.UUID) string {
	return fmt.Sprintf("reports/%s.json", id)
}
