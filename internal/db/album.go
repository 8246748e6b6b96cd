package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (d *DB) GetOrCreateAlbum(ctx context.Context, userID string, artistID int64, name string) (int64, error) {
	var id int64
	err := d.pool.QueryRow(ctx, getOrCreateAlbumQuery, userID, artistID, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error upserting album %q: %w", name, err)
	}
	return id, nil
}

func (d *DB) ArtistAlbums(ctx context.Context, userID string, artistID int64) ([]Album, error) {
	rows, err := d.pool.Query(ctx, artistAlbumsQuery, userID, artistID)
	if err != nil {
		return nil, fmt.Errorf("error querying albums: %w", err)
	}
	defer rows.Close()
	return scanAlbums(rows)
}

func (d *DB) AlbumByID(ctx context.Context, userID string, albumID int64) (*Album, error) {
	row := d.pool.QueryRow(ctx, albumByIDQuery, userID, albumID)
	var album Album
	err := row.Scan(&album.ID, &album.ArtistID, &album.ArtistName, &album.Name, &album.CoverFileID)
	if err != nil {
		return nil, fmt.Errorf("error getting album %d: %w", albumID, err)
	}
	return &album, nil
}

// SetAlbumCover records a cover file against every album of the user
// with this name and reports how many rows changed. Matching by name
// mirrors how covers are discovered: by the folder the art sits in.
func (d *DB) SetAlbumCover(ctx context.Context, userID, albumName, coverFileID string) (int64, error) {
	tag, err := d.pool.Exec(ctx, setAlbumCoverQuery, userID, albumName, coverFileID)
	if err != nil {
		return 0, fmt.Errorf("error setting cover for album %q: %w", albumName, err)
	}
	return tag.RowsAffected(), nil
}

func (d *DB) AlbumsMissingCover(ctx context.Context, userID string) ([]Album, error) {
	rows, err := d.pool.Query(ctx, albumsMissingCoverQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying albums missing covers: %w", err)
	}
	defer rows.Close()
	return scanAlbums(rows)
}

func scanAlbums(rows pgx.Rows) ([]Album, error) {
	albums := []Album{}
	for rows.Next() {
		var album Album
		if err := rows.Scan(&album.ID, &album.ArtistID, &album.ArtistName, &album.Name, &album.CoverFileID); err != nil {
			return nil, fmt.Errorf("error scanning album: %w", err)
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}
