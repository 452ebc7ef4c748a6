package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Source:    "https://example.com/job",
		URL:       "https://example.com/job",
		Platform:  "lever",
		Format:    FormatHTML,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), "\n  \"platform\": \"lever\"")

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestComputeHash(t *testing.T) {
	hash := computeHash("test content")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, computeHash("test content"))
	assert.NotEqual(t, hash, computeHash("different content"))
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("test content", "job.txt")

	assert.Equal(t, "job.txt", metadata.Source)
	assert.Empty(t, metadata.URL)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, computeHash("test content"), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
