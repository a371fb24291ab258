package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpCatalogQuery, 10*time.Millisecond)
	c.RecordTiming(OpCatalogQuery, 30*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.CatalogQuery)
	assert.Equal(t, int64(2), snap.CatalogQuery.Count)
	assert.Equal(t, int64(40), snap.CatalogQuery.TotalTimeMs)
	assert.Equal(t, int64(10), snap.CatalogQuery.MinTimeMs)
	assert.Equal(t, int64(30), snap.CatalogQuery.MaxTimeMs)
	assert.Nil(t, snap.CatalogQuery.TotalInputTokens)
}

func TestRecordLLMUsage(t *testing.T) {
	c := NewCollector()
	c.RecordLLMUsage(OpLLMChat, 100*time.Millisecond, 200, 50)
	c.RecordLLMUsage(OpLLMChat, 200*time.Millisecond, 400, 150)

	snap := c.Snapshot()
	require.NotNil(t, snap.LLMChat)
	assert.Equal(t, int64(2), snap.LLMChat.Count)
	require.NotNil(t, snap.LLMChat.TotalInputTokens)
	assert.Equal(t, int64(600), *snap.LLMChat.TotalInputTokens)
	assert.Equal(t, int64(200), *snap.LLMChat.TotalOutputTokens)
	assert.Equal(t, float64(300), *snap.LLMChat.AvgInputTokens)
	assert.Equal(t, int64(200), *snap.LLMChat.MinInputTokens)
	assert.Equal(t, int64(400), *snap.LLMChat.MaxInputTokens)
}

func TestSnapshotEmptyOps(t *testing.T) {
	snap := NewCollector().Snapshot()
	assert.Nil(t, snap.LLMChat)
	assert.Nil(t, snap.CatalogQuery)
	assert.Nil(t, snap.AgentRun)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}
