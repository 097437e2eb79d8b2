package applog

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_FormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("prod", "warn", &buf)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	l.Info("hidden")
	l.WithField("component", "test").Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"test"`)

	assert.Equal(t, logrus.InfoLevel, New("dev", "nonsense", &buf).GetLevel())
}
