package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketsim/internal/models"
)

func chatUser() *models.User {
	return &models.User{UserID: "u-1", DisplayName: "Alice", Role: models.RoleTester}
}

func TestPostAndRead(t *testing.T) {
	svc := NewChatService(nil, nil)
	user := chatUser()

	msg, err := svc.Post(context.Background(), user, "  hello world  ", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", msg.Text)
	assert.Equal(t, "Alice", msg.DisplayName)
	assert.NotEmpty(t, msg.ID)

	msgs, total, err := svc.Messages(1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, msg.ID, msgs[0].ID)
}

func TestPostValidation(t *testing.T) {
	svc := NewChatService(nil, nil)
	user := chatUser()

	_, err := svc.Post(context.Background(), user, "   ", time.Time{})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Post(context.Background(), user, strings.Repeat("x", 2001), time.Time{})
	assert.ErrorContains(t, err, "2000")

	// Exactly at the limit is fine.
	_, err = svc.Post(context.Background(), user, strings.Repeat("x", 2000), time.Time{})
	assert.NoError(t, err)
}

func TestMessagesNewestFirst(t *testing.T) {
	svc := NewChatService(nil, nil)
	user := chatUser()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Post(context.Background(), user, text, time.Time{})
		require.NoError(t, err)
	}

	msgs, total, err := svc.Messages(1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, "third", msgs[0].Text)
	assert.Equal(t, "first", msgs[2].Text)
}

func TestMessagesPagination(t *testing.T) {
	svc := NewChatService(nil, nil)
	user := chatUser()

	for i := 0; i < 5; i++ {
		_, err := svc.Post(context.Background(), user, strings.Repeat("m", i+1), time.Time{})
		require.NoError(t, err)
	}

	page1, total, err := svc.Messages(1, 2)
	require.NoError(t, err)
	page2, _, err := svc.Messages(2, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	assert.EqualValues(t, 5, total) // the full count, not the page size
	assert.Equal(t, "mmmmm", page1[0].Text)
	assert.Equal(t, "mmm", page2[0].Text)

	// Pages past the end are empty, not an error, and still report the total.
	page9, total, err := svc.Messages(9, 2)
	require.NoError(t, err)
	assert.Empty(t, page9)
	assert.EqualValues(t, 5, total)
}

func TestMessagesLimitClamp(t *testing.T) {
	svc := NewChatService(nil, nil)
	user := chatUser()
	for i := 0; i < 120; i++ {
		_, err := svc.Post(context.Background(), user, "msg", time.Time{})
		require.NoError(t, err)
	}

	msgs, total, err := svc.Messages(1, 500)
	require.NoError(t, err)
	assert.Len(t, msgs, 100)
	assert.EqualValues(t, 120, total)

	msgs, _, err = svc.Messages(1, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 50)
}
