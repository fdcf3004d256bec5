// Package logger prefixes log lines with the name of the object that produced them.
package logger

import (
	"fmt"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

const objWidth = 20

type stringer interface {
	String() string
}

var std = logrus.StandardLogger()

func objToString(obj any) (objStr string) {
	switch o := obj.(type) {
	case nil:
		objStr = "NIL"
	case stringer:
		objStr = o.String()
	case string:
		objStr = o
	default:
		objStr = reflect.TypeOf(obj).Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

func Init(lvl logrus.Level) {
	std.SetLevel(lvl)
	std.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

// SetOutput redirects log lines to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Enabled reports whether messages of the given level are logged.
func Enabled(lvl logrus.Level) bool {
	return std.IsLevelEnabled(lvl)
}

func log(lvl logrus.Level, object any, message string) {
	if !std.IsLevelEnabled(lvl) {
		return
	}
	std.Logf(lvl, "|%20s|%-100s", objToString(object), message)
}

func Trace(object any, message string) {
	log(logrus.TraceLevel, object, message)
}

func Tracef(object any, message string, args ...any) {
	if Enabled(logrus.TraceLevel) {
		log(logrus.TraceLevel, object, fmt.Sprintf(message, args...))
	}
}

func Debug(object any, message string) {
	log(logrus.DebugLevel, object, message)
}

func Debugf(object any, message string, args ...any) {
	if Enabled(logrus.DebugLevel) {
		log(logrus.DebugLevel, object, fmt.Sprintf(message, args...))
	}
}

func Info(object any, message string) {
	log(logrus.InfoLevel, object, message)
}

func Infof(object any, message string, args ...any) {
	if Enabled(logrus.InfoLevel) {
		log(logrus.InfoLevel, object, fmt.Sprintf(message, args...))
	}
}

func Warning(object any, message string) {
	log(logrus.WarnLevel, object, message)
}

func Warningf(object any, message string, args ...any) {
	if Enabled(logrus.WarnLevel) {
		log(logrus.WarnLevel, object, fmt.Sprintf(message, args...))
	}
}

func Error(object any, message string) {
	log(logrus.ErrorLevel, object, message)
}

func Errorf(object any, message string, args ...any) {
	if Enabled(logrus.ErrorLevel) {
		log(logrus.ErrorLevel, object, fmt.Sprintf(message, args...))
	}
}

func Fatal(object any, message string) {
	std.Fatalf("|%20s|%-100s", objToString(object), message)
}

func Fatalf(object any, message string, args ...any) {
	std.Fatalf("|%20s|%-100s", objToString(object), fmt.Sprintf(message, args...))
}
