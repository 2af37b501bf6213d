package filestorage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightmove-parser-service/internal/core/domain"
)

func TestNewAdapterRequiresFilename(t *testing.T) {
	_, err := NewPropertyFileStorageAdapter("")
	assert.Error(t, err)
}

func TestSaveWritesOneJSONLinePerRecord(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.jsonl")
	adapter, err := NewPropertyFileStorageAdapter(file)
	require.NoError(t, err)

	price := "£450,000"
	first := domain.PropertyRecord{
		Source:     "rightmove",
		Price:      &price,
		URL:        "https://www.rightmove.co.uk/properties/111",
		PageNumber: 1,
	}
	location := "1 Test Street, London"
	second := domain.PropertyRecord{
		Source:     "rightmove",
		Location:   &location,
		Features:   []string{"Garden"},
		URL:        "https://www.rightmove.co.uk/properties/222",
		PageNumber: 2,
	}

	require.NoError(t, adapter.Save(context.Background(), first))
	require.NoError(t, adapter.Save(context.Background(), second))

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	var decodedFirst map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decodedFirst))
	assert.Equal(t, "rightmove", decodedFirst["source"])
	assert.Equal(t, "£450,000", decodedFirst["price"])

	// отсутствующие значения сериализуются явными null
	val, present := decodedFirst["location"]
	assert.True(t, present)
	assert.Nil(t, val)

	var decodedSecond map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decodedSecond))
	assert.Equal(t, "https://www.rightmove.co.uk/properties/222", decodedSecond["url"])
	assert.Equal(t, []interface{}{"Garden"}, decodedSecond["features"])
}

func TestSaveAppendsAcrossAdapterInstances(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.jsonl")

	for i := 0; i < 2; i++ {
		adapter, err := NewPropertyFileStorageAdapter(file)
		require.NoError(t, err)
		require.NoError(t, adapter.Save(context.Background(), domain.PropertyRecord{
			Source: "rightmove",
			URL:    "https://www.rightmove.co.uk/properties/111",
		}))
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
