package db

import "time"

type AppUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	RootFolderID string    `json:"root_folder_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID          int64   `json:"id"`
	ArtistID    int64   `json:"artist_id"`
	ArtistName  string  `json:"artist_name"`
	Name        string  `json:"name"`
	CoverFileID *string `json:"cover_file_id"`
}

type Song struct {
	ID          int64  `json:"id"`
	DriveFileID string `json:"drive_file_id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	TrackNumber *int   `json:"track_number"`
	MimeType    string `json:"mime_type"`
	ArtistID    int64  `json:"artist_id"`
	ArtistName  string `json:"artist_name"`
	AlbumID     int64  `json:"album_id"`
	AlbumName   string `json:"album_name"`
	Liked       bool   `json:"liked"`
}

// SongUpsert is the write-side shape of a song row. The scanner fills
// one per audio file.
type SongUpsert struct {
	UserID      string
	DriveFileID string
	Name        string
	Title       string
	TrackNumber *int
	MimeType    string
	ArtistID    int64
	AlbumID     int64
}

type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CoverURL  *string   `json:"cover_url"`
	CreatedAt time.Time `json:"created_at"`
}
