package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	p := NewWithOptions(&out, &errOut, ColorNever)
	return p, &out, &errOut
}

func TestErrorGoesToErrorOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "Push failed")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] Push failed: boom")
}

func TestErrorNilIsSilent(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(nil, "context")
	assert.Empty(t, errOut.String())
}

func TestSuccessAndInfo(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("pushed git-helper")
	p.Info("done")

	assert.Contains(t, out.String(), "✓ pushed git-helper")
	assert.Contains(t, out.String(), "done")
}

func TestQuietSuppressesNonErrors(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	p.Error(errors.New("still shown"), "")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "still shown")
	assert.True(t, p.IsQuiet())
}

func TestSectionUnderlinesTitle(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Skills")

	assert.Contains(t, out.String(), "Skills\n------")
}
