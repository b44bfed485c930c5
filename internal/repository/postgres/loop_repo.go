package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybe-social/vybe/internal/domain"
)

type LoopRepo struct {
	pool *pgxpool.Pool
}

func NewLoopRepo(pool *pgxpool.Pool) *LoopRepo {
	return &LoopRepo{pool: pool}
}

const loopSelect = `
	SELECT l.id, l.author_id, l.caption, l.media_url, l.created_at,
		u.id, u.username, u.name, u.profile_img,
		COALESCE(array_agg(ll.user_id) FILTER (WHERE ll.user_id IS NOT NULL), '{}')
	FROM loops l
	JOIN users u ON u.id = l.author_id
	LEFT JOIN loop_likes ll ON ll.loop_id = l.id`

const loopGroup = ` GROUP BY l.id, u.id, u.username, u.name, u.profile_img`

func (r *LoopRepo) Create(ctx context.Context, loop *domain.Loop) error {
	query := `
		INSERT INTO loops (id, author_id, caption, media_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		loop.ID, loop.AuthorID, loop.Caption, loop.MediaURL, loop.CreatedAt,
	)
	return err
}

func (r *LoopRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loop, error) {
	query := loopSelect + ` WHERE l.id = $1` + loopGroup
	var l domain.Loop
	var author domain.UserSummary
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.AuthorID, &l.Caption, &l.MediaURL, &l.CreatedAt,
		&author.ID, &author.Username, &author.Name, &author.ProfileImg,
		&l.Likes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.Author = &author
	return &l, nil
}

func (r *LoopRepo) List(ctx context.Context) ([]domain.Loop, error) {
	query := loopSelect + loopGroup + ` ORDER BY l.created_at DESC`
	return r.list(ctx, query)
}

func (r *LoopRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Loop, error) {
	query := loopSelect + ` WHERE l.author_id = $1` + loopGroup + ` ORDER BY l.created_at DESC`
	return r.list(ctx, query, authorID)
}

func (r *LoopRepo) list(ctx context.Context, query string, args ...any) ([]domain.Loop, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loops []domain.Loop
	for rows.Next() {
		var l domain.Loop
		var author domain.UserSummary
		if err := rows.Scan(
			&l.ID, &l.AuthorID, &l.Caption, &l.MediaURL, &l.CreatedAt,
			&author.ID, &author.Username, &author.Name, &author.ProfileImg,
			&l.Likes,
		); err != nil {
			return nil, err
		}
		l.Author = &author
		loops = append(loops, l)
	}
	return loops, rows.Err()
}

func (r *LoopRepo) Update(ctx context.Context, loop *domain.Loop) error {
	query := `UPDATE loops SET caption = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, loop.Caption, loop.ID)
	return err
}

func (r *LoopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM loops WHERE id = $1`, id)
	return err
}

func (r *LoopRepo) Like(ctx context.Context, loopID, userID uuid.UUID) error {
	query := `INSERT INTO loop_likes (loop_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, loopID, userID)
	return err
}

func (r *LoopRepo) Unlike(ctx context.Context, loopID, userID uuid.UUID) error {
	query := `DELETE FROM loop_likes WHERE loop_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, loopID, userID)
	return err
}

func (r *LoopRepo) HasLiked(ctx context.Context, loopID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM loop_likes WHERE loop_id = $1 AND user_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, loopID, userID).Scan(&exists)
	return exists, err
}
