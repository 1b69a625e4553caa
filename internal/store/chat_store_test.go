package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/stretchr/testify/assert"
)

func TestChatSQLStore(t *testing.T) {
	t.Run("success - latest messages are returned in order", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		for i := range 3 {
			err := chatStore.CreateChatExchange(
				ctx, &a.AccountID, SupportChat, fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i),
			)
			assert.NoError(t, err)
		}

		// act
		messages, err := chatStore.ListChatMessages(ctx, a.AccountID, SupportChat, 4)

		// assert
		assert.NoError(t, err)
		assert.Len(t, messages, 4)
		assert.Equal(t, "question 1", messages[0].Content)
		assert.Equal(t, "user", messages[0].Role)
		assert.Equal(t, "answer 2", messages[3].Content)
		assert.Equal(t, "assistant", messages[3].Role)
	})
	t.Run("success - chat types are kept apart", func(t *testing.T) {
		ctx := context.Background()
		a := createTestAccount(t, access.JuniorAdmin)
		_ = chatStore.CreateChatExchange(ctx, &a.AccountID, SiteManagerChat, "add a product", "done")

		messages, err := chatStore.ListChatMessages(ctx, a.AccountID, SupportChat, 10)

		assert.NoError(t, err)
		assert.Empty(t, messages)
	})
	t.Run("success - anonymous exchange is stored", func(t *testing.T) {
		err := chatStore.CreateChatExchange(context.Background(), nil, SupportChat, "hello", "hi")
		assert.NoError(t, err)
	})
}
