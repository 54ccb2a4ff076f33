package clipboard

import (
	"os"
	"testing"

	"github.com/zhubert/parley/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

func TestReadWriteText(t *testing.T) {
	var store []byte
	restore := SetBackend(
		func() []byte { return store },
		func(b []byte) { store = b },
	)
	defer restore()

	if got, err := ReadText(); err != nil || got != "" {
		t.Fatalf("empty clipboard: %q, %v", got, err)
	}

	tests := []string{"hello", "multi\nline", "ünïcødé 🎉"}
	for _, text := range tests {
		if err := WriteText(text); err != nil {
			t.Fatalf("WriteText: %v", err)
		}
		got, err := ReadText()
		if err != nil {
			t.Fatalf("ReadText: %v", err)
		}
		if got != text {
			t.Errorf("ReadText() = %q, want %q", got, text)
		}
	}
}
