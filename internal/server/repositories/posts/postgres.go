package posts

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

// postSelect joins the author and category projections in one pass; tags are
// loaded separately per result set.
const postSelect = `
	SELECT p.id, p.slug, p.title, p.excerpt, p.content, p.status,
	       p.author_id, u.name, u.email,
	       p.category_id, c.slug, c.title,
	       p.cover_id, p.published_at, p.created_at, p.updated_at
	FROM blog_posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

func scanPost(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	var authorName, authorEmail string
	var categoryID, categorySlug, categoryTitle, coverID sql.NullString

	err := row.Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.Content, &post.Status,
		&post.AuthorID, &authorName, &authorEmail,
		&categoryID, &categorySlug, &categoryTitle,
		&coverID, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.Author = &models.AuthorRef{ID: post.AuthorID, Name: authorName, Email: authorEmail}
	post.CoverID = coverID.String
	if categoryID.Valid {
		post.CategoryID = categoryID.String
		post.Category = &models.Category{ID: categoryID.String, Slug: categorySlug.String, Title: categoryTitle.String}
	}
	return post, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) loadTags(ctx context.Context, posts []*models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	byID := make(map[string]*models.BlogPost, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT pt.post_id, t.id, t.slug, t.title
		 FROM post_tags pt
		 JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.post_id = ANY($1)
		 ORDER BY t.title`, ids)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		tag := &models.Tag{}
		if err := rows.Scan(&postID, &tag.ID, &tag.Slug, &tag.Title); err != nil {
			return fmt.Errorf("db error: %v", err)
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}

	return rows.Err()
}

func (r *PostgresRepository) replaceTags(ctx context.Context, postID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			return fmt.Errorf("db error: %v", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	query :=
		`INSERT INTO blog_posts (id, slug, title, excerpt, content, status, author_id, category_id, cover_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	post.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Excerpt, post.Content, post.Status,
		post.AuthorID, nullable(post.CategoryID), nullable(post.CoverID))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	if err := r.replaceTags(ctx, post.ID, tagIDs); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, post.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	if err := r.loadTags(ctx, []*models.BlogPost{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.slug = $1`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	if err := r.loadTags(ctx, []*models.BlogPost{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.BlogPost, int, error) {
	where := ` WHERE 1=1`
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.slug ILIKE $%d OR p.excerpt ILIKE $%d)",
			len(args), len(args), len(args))
	}

	var total int
	countQuery := `SELECT count(*) FROM blog_posts p` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %v", err)
	}

	query := postSelect + where + ` ORDER BY p.updated_at DESC`
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

	var result []*models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %v", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %v", err)
	}

	if err := r.loadTags(ctx, result); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.BlogPost, tagIDs []string) (*models.BlogPost, error) {
	query :=
		`UPDATE blog_posts
		 SET slug = $2, title = $3, excerpt = $4, content = $5, category_id = $6, cover_id = $7, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Excerpt, post.Content,
		nullable(post.CategoryID), nullable(post.CoverID))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	if tagIDs != nil {
		if err := r.replaceTags(ctx, post.ID, tagIDs); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, post.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
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

// SetStatus flips publish state, stamping published_at on publish and
// clearing it on unpublish.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.ContentStatus) (*models.BlogPost, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts
		 SET status = $2,
		     published_at = CASE WHEN $2 = 'PUBLISHED' THEN now() ELSE NULL END,
		     updated_at = now()
		 WHERE id = $1`, id, status)
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
