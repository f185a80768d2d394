package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/lixenwraith/rdk/constant"
)

const (
	logDir      = constant.LogDir
	logFileName = constant.LogFileName
)

// maxLogSize is set from -log-max before logging starts
var maxLogSize = int64(constant.MaxLogSize)

// setLogLimit applies -log-max; zero keeps appending to one file forever
func setLogLimit(size datasize.ByteSize) {
	maxLogSize = int64(size.Bytes())
}

// setupLogging sends the standard logger to logs/rdk.log when debug is set and discards it otherwise.
// The terminal belongs to the task, so nothing is ever logged to stdout or stderr.
// A previous log larger than a non-zero maxLogSize is renamed with a timestamp before the new file is opened.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && maxLogSize > 0 && info.Size() > maxLogSize {
		base := strings.TrimSuffix(logFileName, filepath.Ext(logFileName))
		rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
