package slrlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Log_TagsSeverity(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf)

	Infof("table built with %d states", 12)

	out := buf.String()
	assert.True(t, strings.Contains(out, "[INFO]"))
	assert.True(t, strings.Contains(out, "table built with 12 states"))
}

func Test_Log_Helpers(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf)

	Debugf("d")
	Warnf("w")
	Errorf("e")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[DEBUG] d"))
	assert.True(t, strings.Contains(out, "[WARN] w"))
	assert.True(t, strings.Contains(out, "[ERROR] e"))
}

func Test_GetWriter_NilBeforeInit(t *testing.T) {
	l = nil
	assert.Nil(t, GetWriter())
}
