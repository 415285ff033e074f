package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/dbx"
	"github.com/chati-cms/chati/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const mediaSelect = `
	SELECT m.id, m.url, m.storage_key, m.alt, m.width, m.height,
	       m.content_type, m.size, m.created_by_id, u.name, u.email, m.created_at
	FROM media m
	LEFT JOIN users u ON u.id = m.created_by_id`

func scanMedia(row interface{ Scan(...any) error }) (*models.Media, error) {
	m := &models.Media{}
	var createdByID, creatorName, creatorEmail sql.NullString
	err := row.Scan(&m.ID, &m.URL, &m.StorageKey, &m.Alt, &m.Width, &m.Height,
		&m.ContentType, &m.Size, &createdByID, &creatorName, &creatorEmail, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if createdByID.Valid {
		m.CreatedByID = createdByID.String
		m.CreatedBy = &models.AuthorRef{ID: createdByID.String, Name: creatorName.String, Email: creatorEmail.String}
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	m.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media (id, url, storage_key, alt, width, height, content_type, size, created_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.URL, m.StorageKey, m.Alt, m.Width, m.Height, m.ContentType, m.Size, m.CreatedByID)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return r.GetByID(ctx, m.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	m, err := scanMedia(r.db.QueryRowContext(ctx, mediaSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Media, int, error) {
	where := ` WHERE 1=1`
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (m.alt ILIKE $%d OR m.url ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM media m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %v", err)
	}

	query := mediaSelect + where + ` ORDER BY m.created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (f.Page-1)*f.Limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %v", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %v", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE media SET alt = $2 WHERE id = $1`, id, alt)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
