// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package convert turns rendered .docx files into PDFs by shelling out to a
LibreOffice binary in headless mode.

The conversion is synchronous and carries no internal deadline: callers
bound it through the context, which kills the subprocess on expiry.
*/
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/metrics"
)

const (
	inputName  = "document.docx"
	outputName = "document.pdf"
)

// LibreOffice converts office documents via the soffice binary.
type LibreOffice struct {
	binary  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLibreOffice constructs a converter around the given soffice path.
func NewLibreOffice(binary string, metrics *metrics.Metrics, logger *slog.Logger) *LibreOffice {
	return &LibreOffice{
		binary:  binary,
		metrics: metrics,
		logger:  logger,
	}
}

/*
ToPDF converts .docx bytes into PDF bytes.

Description: The input is written to a private temp directory, converted by
a one-shot soffice subprocess, and read back. The subprocess inherits the
context: callers impose the timeout, and expiry kills the process.

Parameters:
  - context: context.Context (bounds the subprocess lifetime)
  - docx: Raw .docx bytes

Returns:
  - []byte: PDF bytes
  - err: apperr.ServiceUnavailable when the converter fails
*/
func (converter *LibreOffice) ToPDF(context context.Context, docx []byte) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "docx2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("convert_tempdir_failed: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, inputName)
	if err := os.WriteFile(inputPath, docx, 0o600); err != nil {
		return nil, fmt.Errorf("convert_write_failed: %w", err)
	}

	// A dedicated profile dir keeps parallel conversions from fighting
	// over the shared LibreOffice lock file.
	command := exec.CommandContext(context, converter.binary,
		"--headless",
		"--norestore",
		"-env:UserInstallation=file://"+filepath.Join(workDir, "profile"),
		"--convert-to", "pdf",
		"--outdir", workDir,
		inputPath,
	)

	output, err := command.CombinedOutput()
	if err != nil {
		converter.metrics.ConversionsTotal.WithLabelValues("error").Inc()
		converter.logger.Error("pdf conversion failed",
			slog.String("error", err.Error()),
			slog.String("output", string(output)))
		return nil, apperr.ServiceUnavailable("PDF conversion is unavailable")
	}

	pdf, err := os.ReadFile(filepath.Join(workDir, outputName))
	if err != nil {
		converter.metrics.ConversionsTotal.WithLabelValues("error").Inc()
		converter.logger.Error("pdf conversion produced no output",
			slog.String("output", string(output)))
		return nil, apperr.ServiceUnavailable("PDF conversion is unavailable")
	}

	converter.metrics.ConversionsTotal.WithLabelValues("ok").Inc()
	return pdf, nil
}
