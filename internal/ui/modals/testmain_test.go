package modals

import (
	"os"
	"testing"

	"github.com/zhubert/parley/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the debug log
	logger.Reset()
	logger.Init(os.DevNull)

	ModalWidth = 80
	ModalWidthWide = 120
	ModalInputWidth = 72
	ModalInputCharLimit = 256

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
