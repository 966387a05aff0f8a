package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debugLogger = zap.NewNop().Sugar()
	mu          sync.Mutex
	isSetup     bool
)

// SetupLogger initializes the debug logger with the specified log file
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	// Check if logger is already set up
	if isSetup {
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{logFilePath}
	cfg.ErrorOutputPaths = []string{logFilePath}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger = logger.Sugar()
	debugLogger.Infof("--- printsize debug log started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger flushes the log file and reverts to the no-op logger
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if !isSetup {
		return
	}
	debugLogger.Infof("--- printsize debug log closed at %s ---", time.Now().Format(time.RFC3339))
	_ = debugLogger.Sync()
	debugLogger = zap.NewNop().Sugar()
	isSetup = false
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return debugLogger
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// LogImageProcessed logs when an image is read or written
func LogImageProcessed(path string, success bool, errMsg string) {
	l := current()
	if success {
		l.Infow("PROCESSED", "path", path)
	} else {
		l.Errorw("FAILED", "path", path, "error", errMsg)
	}
}
