package boundary

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardReturnsValue(t *testing.T) {
	got := Guard("test.value", uint32(0), func() (uint32, error) {
		return 3, nil
	})
	assert.Equal(t, uint32(3), got)
}

func TestGuardErrorYieldsFallback(t *testing.T) {
	got := Guard("test.error", false, func() (bool, error) {
		return true, NullPointer("info")
	})
	assert.False(t, got)
}

func TestGuardPanicYieldsFallback(t *testing.T) {
	assert.NotPanics(t, func() {
		got := Guard("test.panic", uint32(0), func() (uint32, error) {
			panic("implementation bug")
		})
		assert.Equal(t, uint32(0), got)
	})
}

func TestDoContainsPanic(t *testing.T) {
	ran := false
	assert.NotPanics(t, func() {
		Do("test.do", func() error {
			ran = true
			var m map[string]int
			m["boom"] = 1
			return nil
		})
	})
	assert.True(t, ran)
}

func TestNullPointerError(t *testing.T) {
	err := NullPointer("clap_audio_port_info")
	assert.True(t, errors.Is(err, ErrNullPointer))
	assert.Equal(t, "null pointer: clap_audio_port_info", err.Error())

	var npe *NullPointerError
	assert.True(t, errors.As(err, &npe))
	assert.Equal(t, "clap_audio_port_info", npe.Name)
}

// lastEntry emits one Info line through l and returns what logrus recorded.
func lastEntry(t *testing.T, l *Logger) *logrus.Entry {
	t.Helper()
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)
	l.Info("entry")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	return entry
}

func TestLoggerBaseFields(t *testing.T) {
	entry := lastEntry(t, NewLogger("boundary", "TestLoggerBaseFields").WithField("k", 1))
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "boundary", entry.Data["package"])
	assert.Equal(t, "TestLoggerBaseFields", entry.Data["function"])
	assert.Equal(t, 1, entry.Data["k"])
}

func TestLoggerWithCaller(t *testing.T) {
	entry := lastEntry(t, NewLogger("boundary", "TestLoggerWithCaller").WithCaller())
	assert.Contains(t, entry.Data["caller"], "guard_test.go")
	assert.Equal(t, "boundary.TestLoggerWithCaller", entry.Data["caller_func"])
}

func TestLoggerWithFieldsAndError(t *testing.T) {
	entry := lastEntry(t, NewLogger("boundary", "op").
		WithFields(logrus.Fields{"a": 1, "b": "two"}).
		WithError(ErrPanic, "scan"))
	assert.Equal(t, 1, entry.Data["a"])
	assert.Equal(t, "two", entry.Data["b"])
	assert.Equal(t, ErrPanic.Error(), entry.Data["error"])
	assert.Equal(t, "scan", entry.Data["operation"])
}

func TestGuardErrorLogRecordsCaller(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	Guard("test.caller", 0, func() (int, error) { return 1, ErrNullPointer })

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Data["caller"], "guard_test.go")
	assert.Equal(t, "test.caller", entry.Data["function"])
}
