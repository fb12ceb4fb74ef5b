package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	WithOperation(New(&buf, false), "select").Info("hello")
	assert.Contains(t, buf.String(), "operation=select")
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	var buf bytes.Buffer
	New(&buf, false).Info("no error", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, KeyCalendar, Calendar("primary").Key)
	assert.Equal(t, "Standup", Event("Standup").Value.String())
	assert.Equal(t, KeyWhen, When("2026-10-16").Key)
	assert.Equal(t, "silent", Strategy("silent").Value.String())
}
