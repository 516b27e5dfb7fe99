package core

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoRunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	Go(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	assert.True(t, ran)
}

func TestCleanupRunsOnce(t *testing.T) {
	calls := 0
	SetCrashCleanup(func() { calls++ })
	runCleanup()
	runCleanup()
	assert.Equal(t, 1, calls)
}

func TestHandleCrashNil(t *testing.T) {
	HandleCrash(nil)
}

func TestReportFormat(t *testing.T) {
	var b strings.Builder
	report(&b, "boom", []byte("goroutine 1"))
	assert.Contains(t, b.String(), "luna crashed: boom")
	assert.Contains(t, b.String(), "goroutine 1\r\n")
}
