package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

func TestMessageListPagesNewestFirst(t *testing.T) {
	messages := &fakeMessageRepo{}
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		messages.messages = append(messages.messages, &entity.Message{
			ID:        fmt.Sprintf("m%d", i),
			SenderID:  "s1",
			Text:      fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	uc := usecase.NewMessageUseCase(messages)
	out, err := uc.List("", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Total)
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "m4", out.Messages[0].ID)
	assert.Equal(t, "m3", out.Messages[1].ID)

	out, err = uc.List("", 2, 4)
	require.NoError(t, err)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "m0", out.Messages[0].ID)
}

func TestMessageListFiltersByConversation(t *testing.T) {
	messages := &fakeMessageRepo{}
	messages.messages = append(messages.messages,
		&entity.Message{ID: "m1", ConversationID: "conv-a", Text: "hello"},
		&entity.Message{ID: "m2", ConversationID: "conv-b", Text: "world"},
	)

	uc := usecase.NewMessageUseCase(messages)
	out, err := uc.List("conv-a", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "m1", out.Messages[0].ID)
}
