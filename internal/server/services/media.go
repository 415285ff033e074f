package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/config"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/media"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
	"github.com/chati-cms/chati/internal/server/storage"
)

// allowedUploadTypes maps accepted image content types to the extension
// appended to the storage key.
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type MediaService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	store         storage.ObjectStore
	maxUploadSize int64
}

func NewMediaService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, cfg *config.Config) *MediaService {
	return &MediaService{
		db:            db,
		repomanager:   m,
		store:         store,
		maxUploadSize: cfg.MaxUploadSize,
	}
}

// Upload stores the file bytes in the object store and records a metadata
// row. The size is checked up front from the multipart header; non-image
// content types are rejected before any bytes move.
func (s *MediaService) Upload(ctx context.Context, callerID, contentType, alt string, size int64, body io.Reader) (*models.Media, error) {

	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", common.ErrValidation, contentType)
	}
	if size <= 0 || size > s.maxUploadSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", common.ErrValidation, s.maxUploadSize)
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxUploadSize))
	if err != nil {
		return nil, common.ErrInternal
	}

	// Dimensions come from the image header. webp has no stdlib decoder,
	// so those stay zero.
	var width, height int
	if imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = imgCfg.Width, imgCfg.Height
	}

	key := storage.RandomStorageKey() + ext

	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, common.ErrInternal
	}

	row, err := s.repomanager.Media(s.db).Create(ctx, &models.Media{
		URL:         url,
		StorageKey:  key,
		Alt:         alt,
		Width:       width,
		Height:      height,
		ContentType: contentType,
		Size:        size,
		CreatedByID: callerID,
	})
	if err != nil {
		// The bytes are already stored; best effort cleanup so the bucket
		// does not accumulate orphans.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return row, nil
}

// MediaPage is one page of a media listing plus the total match count.
type MediaPage struct {
	Items []*models.Media
	Total int
}

func (s *MediaService) List(ctx context.Context, f media.Filter) (*MediaPage, error) {
	items, total, err := s.repomanager.Media(s.db).List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &MediaPage{Items: items, Total: total}, nil
}

func (s *MediaService) Get(ctx context.Context, id string) (*models.Media, error) {
	return s.repomanager.Media(s.db).GetByID(ctx, id)
}

func (s *MediaService) UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error) {
	return s.repomanager.Media(s.db).UpdateAlt(ctx, id, alt)
}

// Delete removes both the object and the metadata row. The object goes
// first: a row without bytes is worse than bytes without a row.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Media(s.db)

	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if row.StorageKey != "" {
		if err := s.store.Delete(ctx, row.StorageKey); err != nil {
			return common.ErrInternal
		}
	}

	return repo.Delete(ctx, id)
}
