package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybe-social/vybe/internal/domain"
)

type StoryRepo struct {
	pool *pgxpool.Pool
}

func NewStoryRepo(pool *pgxpool.Pool) *StoryRepo {
	return &StoryRepo{pool: pool}
}

const storySelect = `
	SELECT s.id, s.author_id, s.caption, s.media_url, s.media_type, s.created_at,
		u.id, u.username, u.name, u.profile_img
	FROM stories s
	JOIN users u ON u.id = s.author_id`

func (r *StoryRepo) Create(ctx context.Context, story *domain.Story) error {
	query := `
		INSERT INTO stories (id, author_id, caption, media_url, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		story.ID, story.AuthorID, story.Caption, story.MediaURL, story.MediaType, story.CreatedAt,
	)
	return err
}

func (r *StoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	query := storySelect + ` WHERE s.id = $1`
	var s domain.Story
	var author domain.UserSummary
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AuthorID, &s.Caption, &s.MediaURL, &s.MediaType, &s.CreatedAt,
		&author.ID, &author.Username, &author.Name, &author.ProfileImg,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Author = &author
	return &s, nil
}

// ListActive returns stories younger than the TTL. Expired rows are simply
// never selected; physical cleanup is a storage concern, not ours.
func (r *StoryRepo) ListActive(ctx context.Context) ([]domain.Story, error) {
	query := storySelect + ` WHERE s.created_at > now() - interval '24 hours' ORDER BY s.created_at DESC`
	return r.list(ctx, query)
}

func (r *StoryRepo) ListActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Story, error) {
	query := storySelect + ` WHERE s.author_id = $1 AND s.created_at > now() - interval '24 hours' ORDER BY s.created_at DESC`
	return r.list(ctx, query, authorID)
}

func (r *StoryRepo) list(ctx context.Context, query string, args ...any) ([]domain.Story, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		var author domain.UserSummary
		if err := rows.Scan(
			&s.ID, &s.AuthorID, &s.Caption, &s.MediaURL, &s.MediaType, &s.CreatedAt,
			&author.ID, &author.Username, &author.Name, &author.ProfileImg,
		); err != nil {
			return nil, err
		}
		s.Author = &author
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stories {
		viewers, err := r.listViewers(ctx, stories[i].ID)
		if err != nil {
			return nil, err
		}
		stories[i].Viewers = viewers
	}
	return stories, nil
}

func (r *StoryRepo) listViewers(ctx context.Context, storyID uuid.UUID) ([]domain.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.name, u.profile_img
		FROM story_views sv
		JOIN users u ON u.id = sv.user_id
		WHERE sv.story_id = $1`
	rows, err := r.pool.Query(ctx, query, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSummaries(rows)
}

func (r *StoryRepo) Update(ctx context.Context, story *domain.Story) error {
	query := `UPDATE stories SET caption = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, story.Caption, story.ID)
	return err
}

func (r *StoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	return err
}

func (r *StoryRepo) AddView(ctx context.Context, storyID, userID uuid.UUID) error {
	query := `INSERT INTO story_views (story_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, storyID, userID)
	return err
}
