/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Result artifact writer for the Akaylee Sentinel scan engine. Serializes the
final analysis result as a stable-path JSON document, written through a temp file and
rename so the overwrite is atomic from a reader's point of view.
*/

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/kleascm/akaylee-sentinel/pkg/core"
)

// ArtifactName is the well-known result file name the presentation layer
// consumes
const ArtifactName = "analysis_result.json"

// ArtifactWriter writes analysis results into a fixed output directory
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates a writer targeting the given directory
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{outputDir: outputDir}
}

// Path returns the stable artifact path
func (w *ArtifactWriter) Path() string {
	return filepath.Join(w.outputDir, ArtifactName)
}

// Write serializes the result and replaces any previous artifact. The tally
// shape is a flat ip-to-count object; the sentinel shape is a single-key
// message object. Map keys are sorted so identical scans produce identical
// bytes.
func (w *ArtifactWriter) Write(result *core.AnalysisResult) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	var payload interface{}
	if result.IsSentinel() {
		message := result.Message
		if message == "" {
			message = core.NoResultsMessage
		}
		payload = map[string]string{"message": message}
	} else {
		payload = result.Tally
	}

	// ConfigStd sorts map keys like encoding/json
	data, err := sonic.ConfigStd.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(w.outputDir, ".analysis_result-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to set artifact mode: %w", err)
	}

	path := w.Path()
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to publish artifact: %w", err)
	}
	return path, nil
}
