package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{Provider: ProviderOpenAI})
	assert.Error(t, err)

	_, err = NewClient(Config{Provider: ProviderGroq})
	assert.Error(t, err)
}

func Test_NewClient_OllamaNeedsNoKey(t *testing.T) {
	c, err := NewClient(Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, c.Provider())
}

func Test_NewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "bedrock"})
	assert.Error(t, err)
}

func Test_NewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{Provider: ProviderGroq, APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, "llama-3.1-70b-versatile", c.model)
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.Equal(t, defaultTemperature, c.temperature)
	assert.Equal(t, int64(defaultMaxTokens), c.maxTokens)
}

func Test_NewClient_ZeroTemperature(t *testing.T) {
	temp := 0.0
	c, err := NewClient(Config{Provider: ProviderOllama, Temperature: &temp})
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.temperature)
}
