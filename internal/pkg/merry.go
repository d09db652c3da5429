package pkg

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

// PrintMerryStacktrace logs the stack captured by merry for e, one frame
// per line. Errors without a stack print nothing.
func PrintMerryStacktrace(log *structlog.Logger, e error) {
	if s := FormatMerryStacktrace(e, "\n\t"); s != "" {
		log.PrintErr("\t" + s)
	}
}

func FormatMerryStacktrace(e error, sep string) string {
	var frames []string
	for _, fp := range merry.Stack(e) {
		fnc := runtime.FuncForPC(fp)
		if fnc == nil {
			continue
		}
		name := filepath.Base(fnc.Name())
		if name == "runtime.goexit" {
			continue
		}
		file, line := fnc.FileLine(fp)
		frames = append(frames, fmt.Sprintf("%s:%d %s", filepath.ToSlash(file), line, name))
	}
	return strings.Join(frames, sep)
}
