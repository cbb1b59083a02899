package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadRejectsPlainHTTP(t *testing.T) {
	_, err := Download(context.Background(), "http://example.com/skill.zip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only https")
}

func TestDownloadRejectsInvalidURL(t *testing.T) {
	_, err := Download(context.Background(), "://not-a-url")
	assert.Error(t, err)
}

func TestDownloadRejectsOtherSchemes(t *testing.T) {
	_, err := Download(context.Background(), "file:///tmp/skill.zip")
	assert.Error(t, err)
}
