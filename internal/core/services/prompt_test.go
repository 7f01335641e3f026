package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

func TestBuildPromptNoContexts(t *testing.T) {
	history := []domain.Turn{{Role: domain.RoleUser, Content: "Hi"}}

	messages := BuildPrompt("", history, nil, "Hello?", 0)

	require.Len(t, messages, 3)
	assert.Equal(t, driven.ChatRoleSystem, messages[0].Role)
	assert.Equal(t, driven.ChatRoleUser, messages[1].Role)
	assert.Equal(t, "Hi", messages[1].Content)
	assert.Equal(t, driven.ChatRoleUser, messages[2].Role)
	assert.Equal(t, "Question: Hello?\nAnswer:", messages[2].Content)
}

func TestBuildPromptSystemPrompt(t *testing.T) {
	messages := BuildPrompt("", nil, nil, "q", 0)
	require.NotEmpty(t, messages)
	assert.Equal(t, DefaultSystemPrompt, messages[0].Content)

	// The default keeps the plain-formatting preference.
	assert.Contains(t, messages[0].Content, "asterisks")

	messages = BuildPrompt("You are a pirate.", nil, nil, "q", 0)
	assert.Equal(t, "You are a pirate.", messages[0].Content)
}

func TestBuildPromptContextBlocks(t *testing.T) {
	contexts := []string{"The sky is blue.", "The grass is green."}

	messages := BuildPrompt("", nil, contexts, "What color is the sky?", 0)

	require.Len(t, messages, 2)
	want := "Use the following context to answer the question in Markdown:\n\n" +
		"Context 1: The sky is blue.\n\n" +
		"Context 2: The grass is green.\n\n" +
		"Question: What color is the sky?\nAnswer:"
	assert.Equal(t, want, messages[1].Content)
}

func TestBuildPromptRoleMapping(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "first question"},
		{Role: domain.RoleAssistant, Content: "first answer"},
	}

	messages := BuildPrompt("", history, nil, "second question", 0)

	require.Len(t, messages, 4)
	assert.Equal(t, driven.ChatRoleUser, messages[1].Role)
	assert.Equal(t, driven.ChatRoleAssistant, messages[2].Role)
	assert.Equal(t, "first answer", messages[2].Content)
}

func TestBuildPromptHistoryLimit(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "q1"},
		{Role: domain.RoleAssistant, Content: "a1"},
		{Role: domain.RoleUser, Content: "q2"},
		{Role: domain.RoleAssistant, Content: "a2"},
	}

	messages := BuildPrompt("", history, nil, "q3", 2)

	// System, the two newest turns, and the final question.
	require.Len(t, messages, 4)
	assert.Equal(t, "q2", messages[1].Content)
	assert.Equal(t, "a2", messages[2].Content)
}

func TestBuildPromptZeroLimitKeepsAll(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "q1"},
		{Role: domain.RoleAssistant, Content: "a1"},
		{Role: domain.RoleUser, Content: "q2"},
	}

	messages := BuildPrompt("", history, nil, "q3", 0)
	assert.Len(t, messages, 5)
}
