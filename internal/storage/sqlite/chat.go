package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skitownrace/racereg/internal/models"
)

// SaveChatMessage persists one chat message with a server-assigned timestamp.
func (s *SQLiteStore) SaveChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (account_id, message_text, from_assistant, created_at)
		VALUES (?, ?, ?, ?)
	`, msg.AccountID, msg.Text, msg.FromAssistant, msg.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}

	msg.ID, _ = res.LastInsertId()
	return nil
}

// ListChatMessages returns the account's chat transcript, oldest first.
func (s *SQLiteStore) ListChatMessages(ctx context.Context, accountID int64) ([]models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, message_text, from_assistant, created_at
		FROM chat_messages
		WHERE account_id = ?
		ORDER BY created_at, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.AccountID, &msg.Text, &msg.FromAssistant, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.CreatedAt = time.Unix(createdAt, 0).UTC()
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	return messages, nil
}

// CreateDocument stores extracted document text for assistant search.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (filename, content, created_at)
		VALUES (?, ?, ?)
	`, doc.Filename, doc.Content, doc.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to create document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read document id: %w", err)
	}
	doc.ID = id
	return id, nil
}

// SearchDocuments returns up to limit documents whose content contains the
// query, case-insensitively.
func (s *SQLiteStore) SearchDocuments(ctx context.Context, query string, limit int) ([]models.Document, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, content, created_at
		FROM documents
		WHERE content IS NOT NULL AND LOWER(content) LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		var createdAt int64
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.CreatedAt = time.Unix(createdAt, 0).UTC()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}
