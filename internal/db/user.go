package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SaveUser creates or refreshes the user's profile row.
func (d *DB) SaveUser(ctx context.Context, user *AppUser) error {
	_, err := d.pool.Exec(ctx, upsertUserQuery, user.ID, user.Email, user.DisplayName)
	if err != nil {
		return fmt.Errorf("error saving user: %w", err)
	}
	return nil
}

func (d *DB) RootFolderID(ctx context.Context, userID string) (string, error) {
	var rootFolderID string
	err := d.pool.QueryRow(ctx, getRootFolderQuery, userID).Scan(&rootFolderID)
	if err != nil {
		return "", fmt.Errorf("error getting root folder for user %s: %w", userID, err)
	}
	return rootFolderID, nil
}

func (d *DB) SetRootFolder(ctx context.Context, userID, folderID string) error {
	tag, err := d.pool.Exec(ctx, setRootFolderQuery, userID, folderID)
	if err != nil {
		return fmt.Errorf("error setting root folder for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

func (d *DB) UserCredential(ctx context.Context, userID string) (string, error) {
	var tokenJSON string
	err := d.pool.QueryRow(ctx, getCredentialQuery, userID).Scan(&tokenJSON)
	if err != nil {
		return "", fmt.Errorf("error getting credential for user %s: %w", userID, err)
	}
	return tokenJSON, nil
}

func (d *DB) SaveCredential(ctx context.Context, userID, tokenJSON string) error {
	_, err := d.pool.Exec(ctx, saveCredentialQuery, userID, tokenJSON)
	if err != nil {
		return fmt.Errorf("error saving credential for user %s: %w", userID, err)
	}
	return nil
}

// DisconnectLibrary removes the user's credential, root folder setting
// and every catalog row in one transaction. Foreign keys cascade from
// artist down through album, song, playlist membership and likes.
func (d *DB) DisconnectLibrary(ctx context.Context, userID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting disconnect transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM google_credential WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting credential: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM playlist WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting playlists: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM artist WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting catalog: %w", err)
	}
	if _, err := tx.Exec(ctx, setRootFolderQuery, userID, ""); err != nil {
		return fmt.Errorf("error clearing root folder: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing disconnect: %w", err)
	}
	d.logger.Info("library disconnected", zap.String("userId", userID))
	return nil
}
