package common

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Logger provides basic logging functionality to the .cforge folder
type Logger struct {
	logFile   *os.File
	logger    *log.Logger
	sessionID string
}

// newSessionID returns a short unique identifier for this process run.
// Log lines from the same invocation share one session ID so interleaved
// runs can be told apart in the shared log file.
func newSessionID() string {
	result := ""
	if id, err := uuid.NewV7(); err == nil {
		result = id.String()
	}
	if result == "" {
		result = fmt.Sprintf("run_%d", time.Now().UnixMicro())
	}
	return result
}

// NewLogger creates a new logger instance that writes to ~/.cforge/cforge.log
func NewLogger() (*Logger, error) {
	// Get user home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	// Create .cforge directory if it doesn't exist
	cforgeDir := filepath.Join(homeDir, ".cforge")
	if err := os.MkdirAll(cforgeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .cforge directory: %w", err)
	}

	// Open log file (create if doesn't exist, append if exists)
	logPath := filepath.Join(cforgeDir, "cforge.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Create logger with timestamp and per-run session ID
	logger := log.New(logFile, "", log.LstdFlags)

	return &Logger{
		logFile:   logFile,
		logger:    logger,
		sessionID: newSessionID(),
	}, nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

// SessionID returns the unique identifier of this logger's process run.
func (l *Logger) SessionID() string {
	return l.sessionID
}

func (l *Logger) printf(level, message string, args ...interface{}) {
	l.logger.Printf("["+level+"] ["+l.sessionID+"] "+message, args...)
}

// Info logs an info message
func (l *Logger) Info(message string, args ...interface{}) {
	l.printf("INFO", message, args...)
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	l.printf("ERROR", message, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	l.printf("DEBUG", message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, args ...interface{}) {
	l.printf("WARN", message, args...)
}

// LogOperation logs the start and completion of an operation
func (l *Logger) LogOperation(operation string, fn func() error) error {
	l.Info("Starting operation: %s", operation)
	start := time.Now()

	err := fn()
	duration := time.Since(start)

	if err != nil {
		l.Error("Operation failed: %s (duration: %v) - %v", operation, duration, err)
	} else {
		l.Info("Operation completed: %s (duration: %v)", operation, duration)
	}

	return err
}

// Global logger instance
var globalLogger *Logger

// InitializeLogger initializes the global logger
func InitializeLogger() error {
	var err error
	globalLogger, err = NewLogger()
	return err
}

// CloseLogger closes the global logger
func CloseLogger() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// LogInfo logs an info message using the global logger
func LogInfo(message string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(message, args...)
	}
}

// LogError logs an error message using the global logger
func LogError(message string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(message, args...)
	}
}

// LogWarn logs a warning message using the global logger
func LogWarn(message string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(message, args...)
	}
}

// LogOperation logs an operation using the global logger
func LogOperation(operation string, fn func() error) error {
	if globalLogger != nil {
		return globalLogger.LogOperation(operation, fn)
	}
	return fn()
}
