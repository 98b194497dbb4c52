package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logFile *os.File

/*
Init configures the global charmbracelet logger. Output always goes to
stderr, because stdout carries the JSON result of a command. When
logFilePath is set, every line is also appended to that file.
*/
func Init(level, logFilePath string) error {
	var out io.Writer = os.Stderr

	if logFilePath != "" {
		var err error

		logFile, err = os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
		}

		out = io.MultiWriter(os.Stderr, logFile)
	}

	lvl, err := log.ParseLevel(level)

	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetReportTimestamp(true)
	log.SetReportCaller(lvl == log.DebugLevel)

	log.Debug("logging initialized", "level", lvl, "file", logFilePath)
	return nil
}

// Close closes the log file.
func Close() {
	if logFile != nil {
		log.Debug("closing log file")
		log.SetOutput(os.Stderr)
		logFile.Close()
		logFile = nil
	}
}
