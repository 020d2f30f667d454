package database

import (
	"database/sql"
	"fmt"

	"plant-care-service/models"
)

// GetUserProfile returns the account record for a user
func (d *Database) GetUserProfile(userID string) (*models.UserProfile, error) {
	query := `
	SELECT id, email, full_name, avatar_url, created_at, updated_at
	FROM user_profiles
	WHERE id = ?`

	var p models.UserProfile
	err := d.db.QueryRow(query, userID).Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}

	return &p, nil
}

// UpsertUserProfile creates the profile on first sign-in and refreshes
// the mutable fields afterwards.
func (d *Database) UpsertUserProfile(profile *models.UserProfile) error {
	query := `
	INSERT INTO user_profiles (id, email, full_name, avatar_url)
	VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		email = VALUES(email),
		full_name = VALUES(full_name),
		avatar_url = VALUES(avatar_url)`

	_, err := d.db.Exec(query, profile.ID, profile.Email, profile.FullName, profile.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %s: %w", profile.ID, err)
	}

	return nil
}

// UpdateUserAvatar updates only the avatar URL for a user
func (d *Database) UpdateUserAvatar(userID, avatarURL string) error {
	query := `UPDATE user_profiles SET avatar_url = ?, updated_at = NOW() WHERE id = ?`

	result, err := d.db.Exec(query, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar for user %s: %w", userID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("profile for user %s not found", userID)
	}

	return nil
}
