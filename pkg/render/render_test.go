package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillsync/pkg/tool"
)

func TestRenderSubstitutesTool(t *testing.T) {
	contents := "Run this inside {{.tool}} only."

	for _, tl := range tool.All() {
		rendered, err := Render(contents, tl)
		require.NoError(t, err)
		assert.Equal(t, "Run this inside "+tl.ID()+" only.", rendered)
	}
}

func TestRenderWithoutPlaceholders(t *testing.T) {
	contents := "No placeholders here."

	rendered, err := Render(contents, tool.Claude)
	require.NoError(t, err)
	assert.Equal(t, contents, rendered)
}

func TestRenderUnknownVariableFails(t *testing.T) {
	_, err := Render("hello {{.nonsense}}", tool.Claude)
	assert.Error(t, err)
}

func TestRenderSyntaxErrorFails(t *testing.T) {
	_, err := Render("broken {{.tool", tool.Claude)
	assert.Error(t, err)
}
