package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Emitter_monotonicCounters(t *testing.T) {
	assert := assert.New(t)

	e := New()
	assert.Equal("t0", e.NewTemp())
	assert.Equal("t1", e.NewTemp())
	assert.Equal("l0", e.NewLabel())
	assert.Equal("t2", e.NewTemp())
	assert.Equal("l1", e.NewLabel())
}

func Test_GenIf_format(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("IF t0 != 0 THEN l0 ELSE l1;\n", GenIf("t0", "!=", "0", "l0", "l1"))
}

func Test_NewParams_reverseOrder(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("PAR t1;\nPAR t0;\n", NewParams([]string{"t0", "t1"}))
}
