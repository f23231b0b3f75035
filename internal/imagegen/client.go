// Package imagegen implements the image-generation collaborator backed by
// the pollinations.ai prompt-to-image service.
package imagegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"echo/internal/config"
)

// Result describes a generated image written under the captures directory.
type Result struct {
	Filename string
	URLPath  string
}

// Client generates images from text prompts and stores them locally.
type Client struct {
	httpClient  *http.Client
	log         *slog.Logger
	baseURL     string
	capturesDir string
	width       int
	height      int
}

// NewClient creates an image-generation client writing into capturesDir.
func NewClient(cfg config.ImageGenConfig, capturesDir string, log *slog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         log.With("component", "imagegen_client"),
		baseURL:     cfg.BaseURL,
		capturesDir: capturesDir,
		width:       cfg.Width,
		height:      cfg.Height,
	}
}

// Generate requests an image for prompt, saves it as
// captures/generated_<timestamp>.png, and returns its relative URL path.
func (c *Client) Generate(ctx context.Context, prompt string) (Result, error) {
	endpoint := fmt.Sprintf("%s/prompt/%s?width=%d&height=%d&nologo=true",
		c.baseURL, url.PathEscape(prompt), c.width, c.height)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build image request: %w", err)
	}

	c.log.DebugContext(ctx, "Generating image", "prompt", prompt)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("image generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("image service returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.capturesDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create captures directory: %w", err)
	}

	filename := fmt.Sprintf("generated_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(c.capturesDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return Result{}, fmt.Errorf("failed to write image file: %w", err)
	}

	c.log.InfoContext(ctx, "Image generated", "file", filename)
	return Result{
		Filename: filename,
		URLPath:  "/captures/" + filename,
	}, nil
}
