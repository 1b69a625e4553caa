package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type ChatType string

const (
	SupportChat     ChatType = "support"
	SiteManagerChat ChatType = "site_manager"
)

type ChatMessage struct {
	ChatMessageID int64         `json:"-"`
	AccountID     sql.NullInt64 `json:"-"`
	ChatType      ChatType      `json:"-"`
	Role          string        `json:"role"`
	Content       string        `json:"content"`
	CreatedOn     time.Time     `json:"created_on"`
}

type ChatStore interface {
	CreateChatExchange(context.Context, *int64, ChatType, string, string) error
	ListChatMessages(context.Context, int64, ChatType, int) ([]*ChatMessage, error)
}

type ChatSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewChatSQLStore(rdb, rwdb *sql.DB) *ChatSQLStore {
	return &ChatSQLStore{rdb, rwdb}
}

// CreateChatExchange stores a user message and the assistant's reply.
func (store *ChatSQLStore) CreateChatExchange(
	ctx context.Context,
	accountID *int64,
	chatType ChatType,
	userMessage, reply string,
) error {
	var account sql.NullInt64
	if accountID != nil {
		account = sql.NullInt64{Int64: *accountID, Valid: true}
	}
	tx, err := store.rwdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `insert into chat_messages (account_id, chat_type, role, content)
	values ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, account, chatType, "user", userMessage); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, account, chatType, "assistant", reply); err != nil {
		return err
	}
	return tx.Commit()
}

// ListChatMessages returns the latest limit messages of an account in
// chronological order.
func (store *ChatSQLStore) ListChatMessages(
	ctx context.Context,
	accountID int64,
	chatType ChatType,
	limit int,
) ([]*ChatMessage, error) {
	messages := make([]*ChatMessage, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &messages,
		`select * from (
			select * from chat_messages
			where account_id = $1 and chat_type = $2
			order by chat_message_id desc
			limit $3
		) latest
		order by chat_message_id`,
		accountID, chatType, limit,
	)
	return messages, err
}
