package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertSong writes one song row keyed on (user, drive file) and reports
// whether the row is new. Repeated scans of an unchanged library update
// in place and report created = false.
func (d *DB) UpsertSong(ctx context.Context, song SongUpsert) (bool, error) {
	var created bool
	err := d.pool.QueryRow(ctx, upsertSongQuery,
		song.UserID,
		song.DriveFileID,
		song.Name,
		song.Title,
		song.TrackNumber,
		song.MimeType,
		song.ArtistID,
		song.AlbumID,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("error upserting song %q: %w", song.Name, err)
	}
	return created, nil
}

// SongFileIDs snapshots the drive file ids already catalogued for the
// user. Quick scans use it to skip known files.
func (d *DB) SongFileIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := d.pool.Query(ctx, songFileIDsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying song file ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var fileID string
		if err := rows.Scan(&fileID); err != nil {
			return nil, fmt.Errorf("error scanning song file id: %w", err)
		}
		ids[fileID] = true
	}
	return ids, rows.Err()
}

func (d *DB) AlbumSongs(ctx context.Context, userID string, albumID int64) ([]Song, error) {
	rows, err := d.pool.Query(ctx, albumSongsQuery, userID, albumID)
	if err != nil {
		return nil, fmt.Errorf("error querying album songs: %w", err)
	}
	defer rows.Close()
	return scanSongs(rows)
}

func (d *DB) SongByID(ctx context.Context, userID string, songID int64) (*Song, error) {
	row := d.pool.QueryRow(ctx, songByIDQuery, userID, songID)
	song, err := scanSong(row)
	if err != nil {
		return nil, fmt.Errorf("error getting song %d: %w", songID, err)
	}
	return song, nil
}

func scanSong(row pgx.Row) (*Song, error) {
	var song Song
	err := row.Scan(&song.ID, &song.DriveFileID, &song.Name, &song.Title, &song.TrackNumber,
		&song.MimeType, &song.ArtistID, &song.ArtistName, &song.AlbumID, &song.AlbumName, &song.Liked)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func scanSongs(rows pgx.Rows) ([]Song, error) {
	songs := []Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning song: %w", err)
		}
		songs = append(songs, *song)
	}
	return songs, rows.Err()
}
