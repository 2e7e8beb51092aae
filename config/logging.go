package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging points the standard logger at stdout and, when LOG_FILE is set,
// a size-rotated log file as well. The returned closer flushes the file.
func SetupLogging(cfg *Config) (io.Closer, error) {
	log.SetFlags(log.LstdFlags)
	if cfg.LogFile == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB, // MB
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	log.Printf("[INFO] Logging to %s", cfg.LogFile)
	return writer, nil
}
