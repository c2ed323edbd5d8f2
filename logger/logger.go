// Package logger provides leveled console logging for the repair shop app.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const moduleName = "repair-shop"

var log *logging.Logger

func init() {
	// Default backend so packages can log before main configures a level.
	Init("info")
}

// Init configures the console logging backend with the given level.
// Unknown level strings fall back to INFO.
func Init(levelStr string) {
	level, err := logging.LogLevel(levelStr)
	if err != nil {
		level = logging.INFO
	}

	newLogger := logging.MustGetLogger(moduleName)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter("%{time:2006/01/02 15:04:05} %{level} - %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveled.SetLevel(level, moduleName)
	newLogger.SetBackend(leveled)
	log = newLogger
}

func Debug(args ...any) {
	log.Debug(args...)
}

func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func Info(args ...any) {
	log.Info(args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warning(args ...any) {
	log.Warning(args...)
}

func Warningf(format string, args ...any) {
	log.Warningf(format, args...)
}

func Error(args ...any) {
	log.Error(args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
