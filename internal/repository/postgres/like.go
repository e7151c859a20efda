package postgres

import (
	"context"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *postRepo) AddLike(ctx context.Context, postID uuid.UUID, like model.Like) ([]model.Like, error) {
	var likes []model.Like
	err := r.inTx(ctx, postID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			"INSERT INTO post_likes(id, post_id, user_id) VALUES($1, $2, $3) ON CONFLICT (post_id, user_id) DO NOTHING",
			like.ID,
			postID,
			like.UserID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrAlreadyExists
		}

		likes, err = findLikes(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return likes, nil
}

func (r *postRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) ([]model.Like, error) {
	var likes []model.Like
	err := r.inTx(ctx, postID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNoMatch
		}

		likes, err = findLikes(ctx, tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return likes, nil
}

func findLikes(ctx context.Context, q querier, postID uuid.UUID) ([]model.Like, error) {
	rows, err := q.Query(
		ctx,
		"SELECT l.id, l.user_id FROM post_likes l WHERE l.post_id = $1 ORDER BY l.seq DESC",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []model.Like{}
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.ID, &like.UserID); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return likes, nil
}
