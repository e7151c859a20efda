package postgres

import (
	"context"
	"errors"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newPostRepo(db *pgxpool.Pool, logger *zap.Logger) repository.Post {
	return &postRepo{
		db:     db,
		logger: logger,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, user_id, name, avatar, text, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		post.ID,
		post.UserID,
		post.Name,
		post.Avatar,
		post.Text,
		post.CreatedAt,
	); err != nil {
		return nil, err
	}

	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return findPost(ctx, r.db, id)
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT p.id, p.user_id, p.name, p.avatar, p.text, p.created_at FROM posts p ORDER BY p.created_at DESC, p.seq DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	postsMap := make(map[uuid.UUID]*model.Post)
	var ids []uuid.UUID
	for rows.Next() {
		post := model.Post{
			Likes:    []model.Like{},
			Comments: []model.Comment{},
		}
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Name,
			&post.Avatar,
			&post.Text,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
		postsMap[post.ID] = &post
		ids = append(ids, post.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return posts, nil
	}

	likeRows, err := r.db.Query(
		ctx,
		"SELECT l.post_id, l.id, l.user_id FROM post_likes l WHERE l.post_id = ANY($1) ORDER BY l.seq DESC",
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var (
			postID uuid.UUID
			like   model.Like
		)
		if err := likeRows.Scan(&postID, &like.ID, &like.UserID); err != nil {
			return nil, err
		}
		postsMap[postID].Likes = append(postsMap[postID].Likes, like)
	}

	if err := likeRows.Err(); err != nil {
		return nil, err
	}

	commentRows, err := r.db.Query(
		ctx,
		`SELECT c.post_id, c.id, c.user_id, c.name, c.avatar, c.text, c.created_at
		FROM post_comments c
		WHERE c.post_id = ANY($1)
		ORDER BY c.seq DESC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var (
			postID  uuid.UUID
			comment model.Comment
		)
		if err := commentRows.Scan(
			&postID,
			&comment.ID,
			&comment.UserID,
			&comment.Name,
			&comment.Avatar,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		postsMap[postID].Comments = append(postsMap[postID].Comments, comment)
	}

	if err := commentRows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// inTx runs fn inside a transaction that holds a share lock on the post row,
// so the post cannot be deleted while its likes or comments change.
func (r *postRepo) inTx(ctx context.Context, postID uuid.UUID, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Sugar().Errorf("failed to rollback transaction for post(%s): %s", postID.String(), err.Error())
		}
	}()

	var id uuid.UUID
	if err := tx.QueryRow(ctx, "SELECT id FROM posts WHERE id = $1 FOR SHARE", postID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func findPost(ctx context.Context, q querier, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := q.QueryRow(
		ctx,
		"SELECT p.id, p.user_id, p.name, p.avatar, p.text, p.created_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.UserID,
		&post.Name,
		&post.Avatar,
		&post.Text,
		&post.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	likes, err := findLikes(ctx, q, id)
	if err != nil {
		return nil, err
	}
	post.Likes = likes

	comments, err := findComments(ctx, q, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return &post, nil
}
