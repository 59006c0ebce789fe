// Package s3 uploads files to pre-signed object storage URLs.
package s3

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/specialistvlad/circuitgo/modules/http_request"
)

const defaultTimeout = 5 * time.Minute

// Module implements the registry.Module interface for this package.
type Module struct {
	Client *http.Client
	Logger *slog.Logger
}

// Register registers s3.upload.
func (m *Module) Register(r *registry.Registry) error {
	client := m.Client
	if client == nil {
		client = http_request.NewClient()
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return r.Register(Upload(client, logger))
}

// Upload PUTs a local file to a pre-signed URL. source_path and upload_url
// are read from inputs first and fall back to config of the same name.
func Upload(client *http.Client, logger *slog.Logger) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "s3.upload",
			Name:        "S3 Upload",
			Description: "Upload a file to a pre-signed URL",
			Inputs: []block.PortDefinition{
				block.Port("source_path", "string", false),
				block.Port("upload_url", "string", false),
			},
			Outputs: []block.PortDefinition{
				block.Port("success", "boolean", true),
				block.Port("status", "string", true),
				block.Port("size", "number", true),
			},
			ConfigSchema: map[string]string{
				"source_path":     "string",
				"upload_url":      "string",
				"content_type":    "string",
				"timeout_seconds": "number",
			},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			return upload(ctx, client, logger)
		},
	}
}

// param prefers the input over the config entry with the same name.
func param(ctx *block.ExecutionContext, name string) (string, error) {
	if _, ok := ctx.Input(name); ok {
		return ctx.Text(name)
	}
	s, err := ctx.ConfigString(name, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: '%s' must be given as an input or config", block.ErrInvalidInput, name)
	}
	return s, nil
}

func upload(ctx *block.ExecutionContext, client *http.Client, logger *slog.Logger) (value.Map, error) {
	sourcePath, err := param(ctx, "source_path")
	if err != nil {
		return nil, err
	}
	uploadURL, err := param(ctx, "upload_url")
	if err != nil {
		return nil, err
	}
	contentType, err := ctx.ConfigString("content_type", mime.TypeByExtension(filepath.Ext(sourcePath)))
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	timeout, err := http_request.TimeoutSeconds(ctx, "timeout_seconds", defaultTimeout)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, block.Failf("failed to open source file '%s': %v", sourcePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, block.Failf("failed to get file stats for '%s': %v", sourcePath, err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPut, uploadURL, file)
	if err != nil {
		return nil, block.Failf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	logger.Info("Uploading file.", "source", sourcePath, "size", stat.Size(), "content_type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return nil, block.Failf("failed to execute upload request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, block.Failf("upload failed with status: %s", resp.Status)
	}
	logger.Info("Uploaded file.", "status", resp.Status)

	return value.Map{
		"success": value.Bool(true),
		"status":  value.String(resp.Status),
		"size":    value.Int(stat.Size()),
	}, nil
}
