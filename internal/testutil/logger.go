package testutil

import (
	"io"

	"github.com/Gi2009/cod-back/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
