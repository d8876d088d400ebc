package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// ParseLevel đổi "debug" / "info" / "error" sang Level, mặc định InfoLevel
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger implement Logger interface sử dụng log package
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger tạo một instance mới của DefaultLogger, ghi ra stderr
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewWriterLogger(level, os.Stderr)
}

// NewWriterLogger ghi log ra w
func NewWriterLogger(level Level, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewFileLogger ghi log vào dir/app-YYYY-MM-DD.log, đồng thời ra stderr
func NewFileLogger(level Level, dir string) (*DefaultLogger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}

	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriterLogger(level, io.MultiWriter(os.Stderr, f)), f, nil
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		l.out.Output(2, fmt.Sprintf("[INFO] "+format, v...))
	}
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		l.out.Output(2, fmt.Sprintf("[ERROR] "+format, v...))
	}
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		l.out.Output(2, fmt.Sprintf("[DEBUG] "+format, v...))
	}
}

// Discard bỏ qua mọi log, dùng trong test
type Discard struct{}

func (Discard) Info(string, ...interface{})  {}
func (Discard) Error(string, ...interface{}) {}
func (Discard) Debug(string, ...interface{}) {}
