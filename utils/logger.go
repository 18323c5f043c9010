package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

type LogLevel int

// LogFile adds the caller file:line to every record
var LogFile bool

const (
	LogLevelError = LogLevel(1 << iota)
	LogLevelInfo
	LogLevelNotice
	LogLevelDebug
)

var GlobalLogLevel = LogLevelError | LogLevelInfo

var logBufPool sync.Pool

//nolint:gochecknoinits
func init() {
	logBufPool.New = func() any {
		return make([]byte, 0, 512)
	}
}

func getLogBuf() []byte {
	//nolint:forcetypeassert
	return logBufPool.Get().([]byte)[:0]
}

func returnLogBuf(buf []byte) {
	//nolint:staticcheck
	logBufPool.Put(buf)
}

func Panicf(format string, v ...any) {
	buf := getLogBuf()
	defer returnLogBuf(buf)
	buf = AppendfNoEscape(logHeader(buf, "", "PANIC"), format, v...)
	logPrintln(buf)
	panic(string(buf))
}

func Fatalf(format string, v ...any) {
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(AppendfNoEscape(logHeader(buf, "", "FATAL"), format, v...))
	//nolint:revive,gocritic
	os.Exit(1)
}

func Error(v ...any) {
	if GlobalLogLevel&LogLevelError == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(fmt.Append(logHeader(buf, "", "ERROR"), v...))
}

func Errorf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelError == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(AppendfNoEscape(logHeader(buf, prefix, "ERROR"), format, v...))
}

func Print(v ...any) {
	if GlobalLogLevel&LogLevelInfo == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(fmt.Append(logHeader(buf, "", "INFO"), v...))
}

func Logf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelInfo == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(AppendfNoEscape(logHeader(buf, prefix, "INFO"), format, v...))
}

func Noticef(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelNotice == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(AppendfNoEscape(logHeader(buf, prefix, "NOTICE"), format, v...))
}

func IsLogLevelDebug() bool {
	return GlobalLogLevel&LogLevelDebug > 0
}

func Debugf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelDebug == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	logPrintln(AppendfNoEscape(logHeader(buf, prefix, "DEBUG"), format, v...))
}

// LogWriter is where records go, os.Stdout unless redirected at startup.
// Not safe to swap while logging is underway.
var LogWriter io.Writer = os.Stdout

func logPrintln(buf []byte) {
	buf = bytes.TrimSpace(buf)
	buf = append(buf, '\n')

	_, _ = LogWriter.Write(buf)
}

func logHeader(buf []byte, prefix, class string) []byte {
	buf = time.Now().UTC().AppendFormat(buf, "2006-01-02 15:04:05.000")
	if LogFile {
		_, file, line, ok := runtime.Caller(2)
		if !ok {
			file = "???"
			line = 0
		}
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		buf = AppendfNoEscape(buf, " %s:%d [%s] %s ", short, line, prefix, class)
	} else {
		buf = AppendfNoEscape(buf, " [%s] %s ", prefix, class)
	}
	return buf
}
