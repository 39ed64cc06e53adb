package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"burger-blog/pkg/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
)

// Connect opens the postgres pool behind the comment store.
func Connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}

// CommentStore reads and writes reader comments, joining each row against
// the author's profile.
type CommentStore struct {
	db *sqlx.DB
}

func NewCommentStore(db *sqlx.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns the comments for a post, newest first.
func (s *CommentStore) ListByPost(ctx context.Context, postSlug string) ([]models.Comment, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var comments []dbComment
	if err := conn.SelectContext(ctx, &comments,
		`SELECT c.id, c.content, c.created_at, p.name AS author_name, p.avatar_url AS author_image
		 FROM comments c
		 LEFT JOIN profiles p ON p.id = c.user_id
		 WHERE c.post_slug = $1
		 ORDER BY c.created_at DESC`,
		postSlug,
	); err != nil {
		return nil, err
	}

	return lo.Map(comments, func(comment dbComment, _ int) models.Comment {
		return comment.toModel()
	}), nil
}

// Add inserts a comment and returns it with the author profile resolved.
func (s *CommentStore) Add(ctx context.Context, postSlug, userID, content string) (models.Comment, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return models.Comment{}, err
	}
	defer conn.Close()

	var comment dbComment
	row := conn.QueryRowxContext(ctx,
		`INSERT INTO comments (post_slug, user_id, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, content, created_at`,
		postSlug,
		userID,
		content,
		time.Now().UTC(),
	)
	if err := row.StructScan(&comment); err != nil {
		return models.Comment{}, err
	}

	if err := conn.QueryRowxContext(ctx,
		`SELECT name, avatar_url FROM profiles WHERE id = $1`,
		userID,
	).Scan(&comment.AuthorName, &comment.AuthorImage); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, err
	}

	return comment.toModel(), nil
}

// Internal row type mapping onto the comments/profiles join.
type dbComment struct {
	ID          int64          `db:"id"`
	Content     string         `db:"content"`
	CreatedAt   time.Time      `db:"created_at"`
	AuthorName  sql.NullString `db:"author_name"`
	AuthorImage sql.NullString `db:"author_image"`
}

func (c dbComment) toModel() models.Comment {
	author := models.CommentAuthor{Name: "Anonymous"}
	if c.AuthorName.Valid && c.AuthorName.String != "" {
		author.Name = c.AuthorName.String
	}
	if c.AuthorImage.Valid {
		image := c.AuthorImage.String
		author.Image = &image
	}

	return models.Comment{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User:      author,
	}
}
