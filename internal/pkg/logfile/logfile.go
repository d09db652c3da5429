package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ansel1/merry"
)

// New opens today's log file in dir for appending, creating dir if needed.
func New(dir, filenameSuffix string) (*os.File, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	filename := Filename(dir, daytime(time.Now()), filenameSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	return f, nil
}

func Filename(dir string, t time.Time, suffix string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.log", t.Format("2006-01-02"), suffix))
}

func daytime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func ensureDir(dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(dir, os.ModePerm)
	}
	return merry.Wrap(err)
}
