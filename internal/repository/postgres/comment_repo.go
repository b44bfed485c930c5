package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybe-social/vybe/internal/domain"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.author_id, c.post_id, c.loop_id, c.body, c.created_at,
		u.id, u.username, u.name, u.profile_img
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, author_id, post_id, loop_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.AuthorID, comment.PostID, comment.LoopID,
		comment.Body, comment.CreatedAt,
	)
	return err
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`
	var c domain.Comment
	var author domain.UserSummary
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.AuthorID, &c.PostID, &c.LoopID, &c.Body, &c.CreatedAt,
		&author.ID, &author.Username, &author.Name, &author.ProfileImg,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Author = &author
	return &c, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	query := commentSelect + ` WHERE c.post_id = $1 ORDER BY c.created_at ASC`
	return r.list(ctx, query, postID)
}

func (r *CommentRepo) ListByLoop(ctx context.Context, loopID uuid.UUID) ([]domain.Comment, error) {
	query := commentSelect + ` WHERE c.loop_id = $1 ORDER BY c.created_at ASC`
	return r.list(ctx, query, loopID)
}

func (r *CommentRepo) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.UserSummary
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &c.PostID, &c.LoopID, &c.Body, &c.CreatedAt,
			&author.ID, &author.Username, &author.Name, &author.ProfileImg,
		); err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
