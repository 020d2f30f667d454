package database

import (
	"fmt"

	"plant-care-service/models"
)

// SaveChatMessage persists one conversation turn and fills in the
// generated id.
func (d *Database) SaveChatMessage(msg *models.ChatMessage) error {
	query := `
	INSERT INTO chat_messages (session_id, user_id, role, content, image_url)
	VALUES (?, ?, ?, ?, ?)`

	result, err := d.db.Exec(query, msg.SessionID, msg.UserID, msg.Role, msg.Content, msg.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read chat message id: %w", err)
	}
	msg.ID = id

	return nil
}

// GetChatHistory returns the conversation for a session in insertion
// order, capped at limit messages.
func (d *Database) GetChatHistory(sessionID string, limit int) ([]models.ChatMessage, error) {
	query := `
	SELECT id, session_id, user_id, role, content, image_url, created_at
	FROM chat_messages
	WHERE session_id = ?
	ORDER BY id ASC
	LIMIT ?`

	rows, err := d.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(
			&m.ID,
			&m.SessionID,
			&m.UserID,
			&m.Role,
			&m.Content,
			&m.ImageURL,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// DeleteChatSession removes every message stored for a session
func (d *Database) DeleteChatSession(sessionID string) error {
	query := `DELETE FROM chat_messages WHERE session_id = ?`

	if _, err := d.db.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to delete chat session %s: %w", sessionID, err)
	}

	return nil
}
