package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadCSVCorpus(t *testing.T) {
	path := writeCorpus(t, `question,answer
What is your refund policy?,Refunds within 30 days.
Do you ship internationally?,"Yes, to select countries."
`)

	pairs, skipped, err := LoadCSVCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, pairs, 2)
	assert.Equal(t, "What is your refund policy?", pairs[0].Question)
	assert.Equal(t, "Refunds within 30 days.", pairs[0].Answer)
	assert.Equal(t, "Yes, to select countries.", pairs[1].Answer)
}

func TestLoadCSVCorpus_NoHeader(t *testing.T) {
	path := writeCorpus(t, `How do I track my order?,Use the tracking link in your email.
`)

	pairs, skipped, err := LoadCSVCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, pairs, 1)
	assert.Equal(t, "How do I track my order?", pairs[0].Question)
}

func TestLoadCSVCorpus_MalformedRowsSkipped(t *testing.T) {
	path := writeCorpus(t, `question,answer
valid question,valid answer
missing answer,
,missing question
only-one-column
another valid,another answer
`)

	pairs, skipped, err := LoadCSVCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, pairs, 2)
	assert.Equal(t, "valid question", pairs[0].Question)
	assert.Equal(t, "another valid", pairs[1].Question)
}

func TestLoadCSVCorpus_MissingFile(t *testing.T) {
	_, _, err := LoadCSVCorpus(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
