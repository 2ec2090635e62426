package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Logger writes structured JSON lines. Fields are passed as variadic
// key/value pairs; an odd trailing value is dropped rather than reported.
type Logger struct {
	output io.Writer
	base   map[string]interface{}
}

type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	File      string                 `json:"file,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func NewLogger() *Logger {
	return &Logger{output: os.Stdout}
}

// WithFields returns a derived logger that attaches the given key/value
// pairs to every entry it writes.
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	base := make(map[string]interface{}, len(l.base)+len(fields)/2)
	for k, v := range l.base {
		base[k] = v
	}
	collectFields(base, fields)
	return &Logger{output: l.output, base: base}
}

func collectFields(into map[string]interface{}, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			into[key] = fields[i+1]
		}
	}
}

func (l *Logger) log(level, msg string, fields ...interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
		File:      file,
		Line:      line,
	}

	if len(l.base) > 0 || len(fields) > 1 {
		fieldMap := make(map[string]interface{}, len(l.base)+len(fields)/2)
		for k, v := range l.base {
			fieldMap[k] = v
		}
		collectFields(fieldMap, fields)
		entry.Fields = fieldMap
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling log entry: %v\n", err)
		return
	}

	fmt.Fprintln(l.output, string(jsonData))
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log("DEBUG", msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log("INFO", msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log("WARN", msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log("ERROR", msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.log("FATAL", msg, fields...)
	os.Exit(1)
}
