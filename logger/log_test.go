package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	assert := assert.New(t)
	defer SetFilter("")

	out := filterOutput("hello from bench %d", time.Now().UnixNano())
	assert.Contains(out, "bench")

	err := SetFilter("voi")
	assert.Nil(err)
	out = filterOutput("hello from bench %d", time.Now().UnixNano())
	assert.NotContains(out, "bench")
	out = filterOutput("Voi from bench %d", time.Now().UnixNano())
	assert.NotContains(out, "bench")
	out = filterOutput("voi from bench %d", time.Now().UnixNano())
	assert.Contains(out, "bench")

	err = SetFilter("(?i)voi|Bench")
	assert.Nil(err)
	out = filterOutput("hello from bench %d", time.Now().UnixNano())
	assert.Contains(out, "bench")
	out = filterOutput("Voi from bench %d", time.Now().UnixNano())
	assert.Contains(out, "bench")
	out = filterOutput("circl or consensus %d", time.Now().UnixNano())
	assert.Equal("", out)

	err = SetFilter("(unclosed")
	assert.NotNil(err)
}

func TestLimiter(t *testing.T) {
	assert := assert.New(t)
	defer SetLimiter(0)

	la := limiterAvailable("hello from bench")
	assert.True(la)
	SetLimiter(10)
	for i := 0; i < 10; i++ {
		la := limiterAvailable("hello from limiter")
		assert.True(la)
	}
	la = limiterAvailable("hello from limiter")
	assert.False(la)
	la = limiterAvailable("hello from limiter again")
	assert.True(la)
}

func TestLevel(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(INFO)

	SetLevel(INFO)
	Printf("info line %d", 1)
	Verbosef("verbose line %d", 1)
	Errorf("error line %d", 1)
	assert.Contains(buf.String(), "info line 1")
	assert.NotContains(buf.String(), "verbose line 1")
	assert.Contains(buf.String(), "ERROR error line 1")

	buf.Reset()
	SetLevel(DEBUG)
	Verbosef("verbose line %d", 2)
	Debugf("debug line %d", 2)
	assert.Contains(buf.String(), "verbose line 2")
	assert.Contains(buf.String(), "debug line 2")
}

func TestLimitf(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(INFO)
	defer SetLimiter(0)

	SetLevel(INFO)
	Limitf("TestLimitf quiet", "unit %d failed", 0)
	assert.Equal("", buf.String())

	SetLevel(VERBOSE)
	SetLimiter(3)
	for i := 1; i <= 10; i++ {
		Limitf("TestLimitf verify(64)", "unit %d failed", i)
	}
	Limitf("TestLimitf sign(1)", "unit %d failed", 11)
	out := buf.String()
	assert.Contains(out, "unit 1 failed")
	assert.Contains(out, "unit 3 failed")
	assert.NotContains(out, "unit 4 failed")
	assert.NotContains(out, "unit 10 failed")
	assert.Contains(out, "unit 11 failed")
}
