package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/config"
)

// InitLogger configures the standard logrus logger from cfg.
// When cfg.File is set, output is tee'd into a daily rotated file.
func InitLogger(cfg config.Log) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	if cfg.File == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}

	rotator, err := rotatelogs.New(
		cfg.File+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.File),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return nil
}
