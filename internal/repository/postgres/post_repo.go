package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybe-social/vybe/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

const postSelect = `
	SELECT p.id, p.author_id, p.caption, p.media_url, p.media_type, p.created_at,
		u.id, u.username, u.name, u.profile_img,
		COALESCE(array_agg(pl.user_id) FILTER (WHERE pl.user_id IS NOT NULL), '{}')
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_likes pl ON pl.post_id = p.id`

const postGroup = ` GROUP BY p.id, u.id, u.username, u.name, u.profile_img`

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_id, caption, media_url, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		post.ID, post.AuthorID, post.Caption, post.MediaURL, post.MediaType, post.CreatedAt,
	)
	return err
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var author domain.UserSummary
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Caption, &p.MediaURL, &p.MediaType, &p.CreatedAt,
		&author.ID, &author.Username, &author.Name, &author.ProfileImg,
		&p.Likes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Author = &author
	return &p, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := postSelect + ` WHERE p.id = $1` + postGroup
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *PostRepo) ListFeed(ctx context.Context) ([]domain.Post, error) {
	query := postSelect + postGroup + ` ORDER BY p.created_at DESC`
	return r.list(ctx, query)
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	query := postSelect + ` WHERE p.author_id = $1` + postGroup + ` ORDER BY p.created_at DESC`
	return r.list(ctx, query, authorID)
}

func (r *PostRepo) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var author domain.UserSummary
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Caption, &p.MediaURL, &p.MediaType, &p.CreatedAt,
			&author.ID, &author.Username, &author.Name, &author.ProfileImg,
			&p.Likes,
		); err != nil {
			return nil, err
		}
		p.Author = &author
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, post *domain.Post) error {
	query := `UPDATE posts SET caption = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, post.Caption, post.ID)
	return err
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepo) Like(ctx context.Context, postID, userID uuid.UUID) error {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

func (r *PostRepo) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

func (r *PostRepo) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, postID, userID).Scan(&exists)
	return exists, err
}
