package assistant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/adapters/providers/assistant"
	"github.com/voyara/backend/internal/domain/entities"
)

func TestScriptedProvider_Chat(t *testing.T) {
	ctx := context.Background()
	provider := assistant.NewScriptedProvider()

	t.Run("answers budget questions", func(t *testing.T) {
		reply, err := provider.Chat(ctx, &entities.AssistantContext{
			Message: "How should I split my BUDGET?",
		})

		require.NoError(t, err)
		assert.Contains(t, reply.Reply, "Accommodation")
	})

	t.Run("answers packing questions", func(t *testing.T) {
		reply, err := provider.Chat(ctx, &entities.AssistantContext{
			Message: "any luggage tips?",
		})

		require.NoError(t, err)
		assert.Contains(t, reply.Reply, "packing")
	})

	t.Run("greets back", func(t *testing.T) {
		reply, err := provider.Chat(ctx, &entities.AssistantContext{Message: "hello there"})

		require.NoError(t, err)
		assert.Contains(t, reply.Reply, "Vega")
	})

	t.Run("falls back to the default reply", func(t *testing.T) {
		reply, err := provider.Chat(ctx, &entities.AssistantContext{
			Message: "tell me about visas",
		})

		require.NoError(t, err)
		assert.Contains(t, reply.Reply, "What specific aspect of your trip")
	})

	t.Run("earlier rules win when several match", func(t *testing.T) {
		reply, err := provider.Chat(ctx, &entities.AssistantContext{
			Message: "what is the price of activities there?",
		})

		require.NoError(t, err)
		assert.Contains(t, reply.Reply, "Accommodation")
	})
}

func TestSoftRules(t *testing.T) {
	t.Run("country pack rules", func(t *testing.T) {
		rules := assistant.SoftRules("Japan", nil)
		assert.Equal(t, []string{"Prefer public transport", "Avoid late-night activities"}, rules)
	})

	t.Run("preference rules stack onto country rules", func(t *testing.T) {
		rules := assistant.SoftRules("france", []string{"relaxed", "food"})
		assert.Equal(t, []string{
			"Prefer walkable activities",
			"Include cultural experiences",
			"Avoid tightly packed schedules",
			"Include food-related experiences",
		}, rules)
	})

	t.Run("unknown country yields no country rules", func(t *testing.T) {
		rules := assistant.SoftRules("Atlantis", nil)
		assert.Empty(t, rules)
	})
}
