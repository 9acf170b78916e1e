package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/wishwall/core/internal/config"
	"go.uber.org/zap"
)

// cloudinaryBackend uploads through Cloudinary's unsigned upload endpoint
// (preset-based) and deletes through the signed destroy endpoint.
type cloudinaryBackend struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadPreset string
	httpClient   *http.Client
	logger       *zap.Logger

	// swapped in tests
	uploadEndpoint  string
	destroyEndpoint string
}

func newCloudinary(cfg config.CloudinaryConfig, logger *zap.Logger) *cloudinaryBackend {
	base := "https://api.cloudinary.com/v1_1/" + cfg.CloudName
	return &cloudinaryBackend{
		cloudName:       cfg.CloudName,
		apiKey:          cfg.APIKey,
		apiSecret:       cfg.APISecret,
		uploadPreset:    cfg.UploadPreset,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		logger:          logger,
		uploadEndpoint:  base + "/image/upload",
		destroyEndpoint: base + "/image/destroy",
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (b *cloudinaryBackend) Upload(ctx context.Context, data []byte, fileName, mimeType, folder string) (UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: build form: %w", err)
	}
	_ = form.WriteField("upload_preset", b.uploadPreset)
	_ = form.WriteField("folder", folder)
	if err := form.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.uploadEndpoint, &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadResult{}, fmt.Errorf("cloudinary: upload failed with status %d: %s", resp.StatusCode, snippet)
	}

	var parsed cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary: decode response: %w", err)
	}
	return UploadResult{URL: parsed.SecureURL, Key: parsed.PublicID}, nil
}

func (b *cloudinaryBackend) Delete(ctx context.Context, key string) bool {
	timestamp := time.Now().Unix()
	signature := signDestroy(key, timestamp, b.apiSecret)

	payload, err := json.Marshal(map[string]any{
		"public_id": key,
		"timestamp": timestamp,
		"signature": signature,
		"api_key":   b.apiKey,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.destroyEndpoint, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Warn("cloudinary: destroy failed", zap.String("key", key), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (b *cloudinaryBackend) URL(key string) string {
	return "https://res.cloudinary.com/" + b.cloudName + "/image/upload/" + key
}

// signDestroy computes the SHA-1 signature Cloudinary expects for destroy
// calls: hex(sha1("public_id=<key>&timestamp=<ts><secret>")).
func signDestroy(key string, timestamp int64, secret string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("public_id=%s&timestamp=%d%s", key, timestamp, secret)))
	return hex.EncodeToString(sum[:])
}
