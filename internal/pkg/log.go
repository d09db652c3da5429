package pkg

import (
	"io"
	"os"
	"path/filepath"

	"github.com/powerman/structlog"
)

func InitLog() {
	structlog.DefaultLogger.
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(
			structlog.KeyStack,
		).
		SetSuffixKeys(structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		})
}

// LogTee duplicates the output of log and the default logger into w until
// restore is called.
func LogTee(log *structlog.Logger, w io.Writer) (restore func()) {
	out := io.MultiWriter(os.Stderr, w)
	structlog.DefaultLogger.SetOutput(out)
	log.SetOutput(out)
	return func() {
		structlog.DefaultLogger.SetOutput(os.Stderr)
		log.SetOutput(os.Stderr)
	}
}
