package sources

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/query"
	"github.com/JaimeStill/longevity/pkg/repository"
	"github.com/JaimeStill/longevity/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an evidence source repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "sources"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Source], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanSource)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Source, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSource)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*File, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	blob, err := r.storage.Download(ctx, s.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download source %s: %w", id, err)
	}

	return &File{Source: s, Blob: blob}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Source, error) {
	id := uuid.New()
	key := buildStorageKey(cmd.EvidenceID, id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload source blob: %w", err)
	}

	q := `
		INSERT INTO evidence_sources(id, evidence_id, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, evidence_id, filename, content_type, size_bytes, page_count, storage_key, uploaded_at`

	args := []any{
		id,
		cmd.EvidenceID,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Source, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSource)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapReference(err, ErrEvidenceNotFound, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"evidence source uploaded",
		"id", s.ID,
		"evidence_id", s.EvidenceID,
		"filename", s.Filename,
		"pages", s.PageCount,
	)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM evidence_sources WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, s.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after source delete",
			"key", s.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("evidence source deleted", "id", id)
	return nil
}

func buildStorageKey(evidenceID int64, id uuid.UUID, filename string) string {
	return fmt.Sprintf("evidence/%d/%s/%s", evidenceID, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		name = "source"
	}
	return url.PathEscape(name)
}
