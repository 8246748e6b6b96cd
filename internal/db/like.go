package db

import (
	"context"
	"fmt"
)

// ToggleLike flips the like state of a song for the user and returns
// the new state.
func (d *DB) ToggleLike(ctx context.Context, userID string, songID int64) (bool, error) {
	tag, err := d.pool.Exec(ctx, insertLikeQuery, userID, songID)
	if err != nil {
		return false, fmt.Errorf("error liking song %d: %w", songID, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Already liked (or the song does not exist); unlike covers both.
	if _, err := d.pool.Exec(ctx, deleteLikeQuery, userID, songID); err != nil {
		return false, fmt.Errorf("error unliking song %d: %w", songID, err)
	}
	return false, nil
}

func (d *DB) LikedSongs(ctx context.Context, userID string) ([]Song, error) {
	rows, err := d.pool.Query(ctx, likedSongsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying liked songs: %w", err)
	}
	defer rows.Close()
	return scanSongs(rows)
}
