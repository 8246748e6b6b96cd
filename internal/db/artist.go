package db

import (
	"context"
	"fmt"
)

// GetOrCreateArtist returns the id of the user's artist row with this
// name, creating it on first sight. The no-op conflict update makes the
// insert return the existing id instead of nothing.
func (d *DB) GetOrCreateArtist(ctx context.Context, userID, name string) (int64, error) {
	var id int64
	err := d.pool.QueryRow(ctx, getOrCreateArtistQuery, userID, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error upserting artist %q: %w", name, err)
	}
	return id, nil
}

func (d *DB) UserArtists(ctx context.Context, userID string) ([]Artist, error) {
	rows, err := d.pool.Query(ctx, userArtistsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying artists: %w", err)
	}
	defer rows.Close()

	artists := []Artist{}
	for rows.Next() {
		var artist Artist
		if err := rows.Scan(&artist.ID, &artist.Name); err != nil {
			return nil, fmt.Errorf("error scanning artist: %w", err)
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}
