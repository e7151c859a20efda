package postgres

import (
	"context"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *postRepo) AddComment(ctx context.Context, postID uuid.UUID, comment model.Comment) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.inTx(ctx, postID, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_comments(id, post_id, user_id, name, avatar, text, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
			comment.ID,
			postID,
			comment.UserID,
			comment.Name,
			comment.Avatar,
			comment.Text,
			comment.CreatedAt,
		); err != nil {
			return err
		}

		var err error
		comments, err = findComments(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *postRepo) DeleteComment(ctx context.Context, postID uuid.UUID, commentID uuid.UUID, authorID uuid.UUID) (*model.Post, error) {
	var post *model.Post
	err := r.inTx(ctx, postID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			"DELETE FROM post_comments WHERE id = $1 AND post_id = $2 AND user_id = $3",
			commentID,
			postID,
			authorID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNoMatch
		}

		post, err = findPost(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

func findComments(ctx context.Context, q querier, postID uuid.UUID) ([]model.Comment, error) {
	rows, err := q.Query(
		ctx,
		`SELECT c.id, c.user_id, c.name, c.avatar, c.text, c.created_at
		FROM post_comments c
		WHERE c.post_id = $1
		ORDER BY c.seq DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.Name,
			&comment.Avatar,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
