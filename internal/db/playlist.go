package db

import (
	"context"
	"fmt"
)

func (d *DB) CreatePlaylist(ctx context.Context, userID, name string) (*Playlist, error) {
	var playlist Playlist
	err := d.pool.QueryRow(ctx, createPlaylistQuery, userID, name).
		Scan(&playlist.ID, &playlist.Name, &playlist.CoverURL, &playlist.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating playlist %q: %w", name, err)
	}
	return &playlist, nil
}

func (d *DB) UserPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := d.pool.Query(ctx, userPlaylistsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying playlists: %w", err)
	}
	defer rows.Close()

	playlists := []Playlist{}
	for rows.Next() {
		var playlist Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.CoverURL, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	return playlists, rows.Err()
}

func (d *DB) SetPlaylistCover(ctx context.Context, userID string, playlistID int64, coverURL string) error {
	tag, err := d.pool.Exec(ctx, setPlaylistCoverQuery, userID, playlistID, coverURL)
	if err != nil {
		return fmt.Errorf("error setting cover for playlist %d: %w", playlistID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("playlist %d not found", playlistID)
	}
	return nil
}

func (d *DB) DeletePlaylist(ctx context.Context, userID string, playlistID int64) error {
	tag, err := d.pool.Exec(ctx, deletePlaylistQuery, userID, playlistID)
	if err != nil {
		return fmt.Errorf("error deleting playlist %d: %w", playlistID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("playlist %d not found", playlistID)
	}
	return nil
}

// AddSongToPlaylist appends a song at the end of the playlist. Both the
// playlist and the song must belong to the user; adding a song twice is
// a no-op.
func (d *DB) AddSongToPlaylist(ctx context.Context, userID string, playlistID, songID int64) error {
	_, err := d.pool.Exec(ctx, addSongToPlaylistQuery, userID, playlistID, songID)
	if err != nil {
		return fmt.Errorf("error adding song %d to playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

func (d *DB) RemoveSongFromPlaylist(ctx context.Context, userID string, playlistID, songID int64) error {
	_, err := d.pool.Exec(ctx, removeSongFromPlaylistQuery, userID, playlistID, songID)
	if err != nil {
		return fmt.Errorf("error removing song %d from playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

func (d *DB) PlaylistSongs(ctx context.Context, userID string, playlistID int64) ([]Song, error) {
	rows, err := d.pool.Query(ctx, playlistSongsQuery, userID, playlistID)
	if err != nil {
		return nil, fmt.Errorf("error querying playlist songs: %w", err)
	}
	defer rows.Close()
	return scanSongs(rows)
}
