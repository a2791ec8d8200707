// Package utils hosts shared infrastructure for logging and configuration loading.
package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
)

// LogLevel identifies a supported logging verbosity.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat identifies a supported log encoding.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerOutputs bundles the loggers produced for one configuration.
type LoggerOutputs struct {
	// DiagnosticLogger records structured lifecycle events.
	DiagnosticLogger *zap.Logger
	// ConsoleLogger renders human-facing event messages; it is a no-op for structured output.
	ConsoleLogger *zap.Logger
}

// LoggerFactory builds zap loggers from configured level and format values.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() LoggerFactory {
	return LoggerFactory{}
}

// CreateLoggerOutputs builds loggers writing to standard error for the requested level and format.
func (factory LoggerFactory) CreateLoggerOutputs(requestedLevel LogLevel, requestedFormat LogFormat) (LoggerOutputs, error) {
	zapLevel, levelError := resolveLevel(requestedLevel)
	if levelError != nil {
		return LoggerOutputs{}, levelError
	}

	writeSyncer := zapcore.Lock(os.Stderr)

	switch requestedFormat {
	case LogFormatStructured:
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		diagnosticCore := zapcore.NewCore(encoder, writeSyncer, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.NewNop(),
		}, nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.TimeKey = zapcore.OmitKey
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder := zapcore.NewConsoleEncoder(encoderConfiguration)
		diagnosticCore := zapcore.NewCore(encoder, writeSyncer, zapLevel)
		consoleCore := zapcore.NewCore(encoder, writeSyncer, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.New(consoleCore),
		}, nil
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, string(requestedFormat))
	}
}

func resolveLevel(requestedLevel LogLevel) (zapcore.Level, error) {
	switch requestedLevel {
	case LogLevelDebug:
		return zap.DebugLevel, nil
	case LogLevelInfo:
		return zap.InfoLevel, nil
	case LogLevelWarn:
		return zap.WarnLevel, nil
	case LogLevelError:
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(requestedLevel))
	}
}
