package log

import (
	"fmt"
	"os"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

var level atomic.Int32

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:             true,
		TimestampFormat:           "2006-01-02T15:04:05.999999999Z07:00",
		EnvironmentOverrideColors: true,
	})
	level.Store(int32(INFO))
}

func Infoln(format string, v ...any) {
	print(INFO, format, v...)
}

func Warnln(format string, v ...any) {
	print(WARNING, format, v...)
}

func Errorln(format string, v ...any) {
	print(ERROR, format, v...)
}

func Debugln(format string, v ...any) {
	print(DEBUG, format, v...)
}

func Fatalln(format string, v ...any) {
	log.Fatalf(format, v...)
}

func Level() LogLevel {
	return LogLevel(level.Load())
}

func SetLevel(newLevel LogLevel) {
	level.Store(int32(newLevel))
}

func print(l LogLevel, format string, v ...any) {
	if l < Level() {
		return
	}

	payload := fmt.Sprintf(format, v...)
	switch l {
	case INFO:
		log.Infoln(payload)
	case WARNING:
		log.Warnln(payload)
	case ERROR:
		log.Errorln(payload)
	case DEBUG:
		log.Debugln(payload)
	}
}
