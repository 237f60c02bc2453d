/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: manager.go
Description: Log file management for Akaylee Sentinel. Keeps the log directory bounded
by removing the oldest scan logs and reports simple statistics about the files on disk.
*/

package logging

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LogManager bounds the number and size of scan log files on disk
type LogManager struct {
	logDir   string
	maxFiles int
	maxSize  int64
}

// LogFileStats summarizes the log files currently on disk
type LogFileStats struct {
	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
}

// NewLogManager creates a log manager for the given directory
func NewLogManager(logDir string, maxFiles int, maxSize int64) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
		maxSize:  maxSize,
	}
}

// CleanupOldLogs removes the oldest log files beyond the configured maximum
func (m *LogManager) CleanupOldLogs() error {
	files, err := filepath.Glob(filepath.Join(m.logDir, "akaylee-sentinel_*.log"))
	if err != nil {
		return err
	}
	if len(files) <= m.maxFiles {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return modTimeOrZero(files[i]).Before(modTimeOrZero(files[j]))
	})

	for i := 0; i < len(files)-m.maxFiles; i++ {
		if err := os.Remove(files[i]); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// modTimeOrZero returns the file's modification time, or the zero time when
// the file vanished between listing and stat
func modTimeOrZero(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// GetLogStats returns statistics about the log files on disk
func (m *LogManager) GetLogStats() (*LogFileStats, error) {
	files, err := filepath.Glob(filepath.Join(m.logDir, "akaylee-sentinel_*.log"))
	if err != nil {
		return nil, err
	}

	stats := &LogFileStats{TotalFiles: len(files)}
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			stats.TotalBytes += info.Size()
		}
	}
	return stats, nil
}
