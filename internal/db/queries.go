package db

// SQL statements for catalog operations.
const (
	upsertUserQuery = `
		INSERT INTO app_user (id, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = EXCLUDED.display_name
	`

	getRootFolderQuery = `
		SELECT root_folder_id FROM app_user WHERE id = $1
	`

	setRootFolderQuery = `
		UPDATE app_user SET root_folder_id = $2 WHERE id = $1
	`

	getCredentialQuery = `
		SELECT token_json FROM google_credential WHERE user_id = $1
	`

	saveCredentialQuery = `
		INSERT INTO google_credential (user_id, token_json, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET token_json = EXCLUDED.token_json,
		    updated_at = NOW()
	`

	getOrCreateArtistQuery = `
		INSERT INTO artist (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO UPDATE
		SET name = EXCLUDED.name
		RETURNING id
	`

	userArtistsQuery = `
		SELECT id, name FROM artist
		WHERE user_id = $1
		ORDER BY name
	`

	getOrCreateAlbumQuery = `
		INSERT INTO album (user_id, artist_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, artist_id, name) DO UPDATE
		SET name = EXCLUDED.name
		RETURNING id
	`

	artistAlbumsQuery = `
		SELECT al.id, al.artist_id, ar.name, al.name, al.cover_file_id
		FROM album al
		JOIN artist ar ON ar.id = al.artist_id
		WHERE al.user_id = $1 AND al.artist_id = $2
		ORDER BY al.name
	`

	albumByIDQuery = `
		SELECT al.id, al.artist_id, ar.name, al.name, al.cover_file_id
		FROM album al
		JOIN artist ar ON ar.id = al.artist_id
		WHERE al.user_id = $1 AND al.id = $2
	`

	setAlbumCoverQuery = `
		UPDATE album SET cover_file_id = $3
		WHERE user_id = $1 AND name = $2
	`

	albumsMissingCoverQuery = `
		SELECT al.id, al.artist_id, ar.name, al.name, al.cover_file_id
		FROM album al
		JOIN artist ar ON ar.id = al.artist_id
		WHERE al.user_id = $1 AND al.cover_file_id IS NULL
		ORDER BY al.name
	`

	upsertSongQuery = `
		INSERT INTO song (user_id, drive_file_id, name, title, track_number, mime_type, artist_id, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, drive_file_id) DO UPDATE
		SET name = EXCLUDED.name,
		    title = EXCLUDED.title,
		    track_number = EXCLUDED.track_number,
		    mime_type = EXCLUDED.mime_type,
		    artist_id = EXCLUDED.artist_id,
		    album_id = EXCLUDED.album_id,
		    updated_at = NOW()
		RETURNING (xmax = 0) AS created
	`

	songFileIDsQuery = `
		SELECT drive_file_id FROM song WHERE user_id = $1
	`

	albumSongsQuery = `
		SELECT s.id, s.drive_file_id, s.name, s.title, s.track_number, s.mime_type,
		       s.artist_id, ar.name, s.album_id, al.name,
		       EXISTS (SELECT 1 FROM song_like l WHERE l.user_id = s.user_id AND l.song_id = s.id) AS liked
		FROM song s
		JOIN artist ar ON ar.id = s.artist_id
		JOIN album al ON al.id = s.album_id
		WHERE s.user_id = $1 AND s.album_id = $2
		ORDER BY s.track_number NULLS LAST, s.name
	`

	songByIDQuery = `
		SELECT s.id, s.drive_file_id, s.name, s.title, s.track_number, s.mime_type,
		       s.artist_id, ar.name, s.album_id, al.name,
		       EXISTS (SELECT 1 FROM song_like l WHERE l.user_id = s.user_id AND l.song_id = s.id) AS liked
		FROM song s
		JOIN artist ar ON ar.id = s.artist_id
		JOIN album al ON al.id = s.album_id
		WHERE s.user_id = $1 AND s.id = $2
	`

	createPlaylistQuery = `
		INSERT INTO playlist (user_id, name)
		VALUES ($1, $2)
		RETURNING id, name, cover_url, created_at
	`

	userPlaylistsQuery = `
		SELECT id, name, cover_url, created_at FROM playlist
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	setPlaylistCoverQuery = `
		UPDATE playlist SET cover_url = $3 WHERE user_id = $1 AND id = $2
	`

	deletePlaylistQuery = `
		DELETE FROM playlist WHERE user_id = $1 AND id = $2
	`

	addSongToPlaylistQuery = `
		INSERT INTO playlist_song (playlist_id, song_id, position)
		SELECT p.id, s.id, COALESCE((SELECT MAX(position) + 1 FROM playlist_song WHERE playlist_id = p.id), 0)
		FROM playlist p, song s
		WHERE p.id = $2 AND p.user_id = $1 AND s.id = $3 AND s.user_id = $1
		ON CONFLICT (playlist_id, song_id) DO NOTHING
	`

	removeSongFromPlaylistQuery = `
		DELETE FROM playlist_song ps
		USING playlist p
		WHERE ps.playlist_id = p.id AND p.user_id = $1 AND ps.playlist_id = $2 AND ps.song_id = $3
	`

	playlistSongsQuery = `
		SELECT s.id, s.drive_file_id, s.name, s.title, s.track_number, s.mime_type,
		       s.artist_id, ar.name, s.album_id, al.name,
		       EXISTS (SELECT 1 FROM song_like l WHERE l.user_id = s.user_id AND l.song_id = s.id) AS liked
		FROM playlist_song ps
		JOIN playlist p ON p.id = ps.playlist_id
		JOIN song s ON s.id = ps.song_id
		JOIN artist ar ON ar.id = s.artist_id
		JOIN album al ON al.id = s.album_id
		WHERE p.user_id = $1 AND p.id = $2
		ORDER BY ps.position, ps.date_added
	`

	insertLikeQuery = `
		INSERT INTO song_like (user_id, song_id)
		SELECT $1, id FROM song WHERE id = $2 AND user_id = $1
		ON CONFLICT (user_id, song_id) DO NOTHING
	`

	deleteLikeQuery = `
		DELETE FROM song_like WHERE user_id = $1 AND song_id = $2
	`

	likedSongsQuery = `
		SELECT s.id, s.drive_file_id, s.name, s.title, s.track_number, s.mime_type,
		       s.artist_id, ar.name, s.album_id, al.name,
		       TRUE AS liked
		FROM song_like l
		JOIN song s ON s.id = l.song_id
		JOIN artist ar ON ar.id = s.artist_id
		JOIN album al ON al.id = s.album_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`
)
