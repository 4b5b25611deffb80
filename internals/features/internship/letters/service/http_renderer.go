package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"kerjapraktik_backend/internals/configs"
)

// HTTPLetterRenderer mendelegasikan pembuatan dokumen ke layanan renderer
// fakultas (LETTER_RENDERER_URL) lewat POST JSON; balasannya bytes dokumen.
type HTTPLetterRenderer struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPLetterRendererFromEnv() (*HTTPLetterRenderer, error) {
	base := configs.LetterRendererURL
	if base == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "LETTER_RENDERER_URL belum dikonfigurasi")
	}
	return &HTTPLetterRenderer{
		BaseURL: base,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

var _ LetterRenderer = (*HTTPLetterRenderer)(nil)

// UnboundRenderer dipasang saat LETTER_RENDERER_URL kosong: penerbitan surat
// gagal dengan error bertipe, fitur lain tetap jalan.
type UnboundRenderer struct{}

func (UnboundRenderer) Render(ctx context.Context, data LetterData) ([]byte, string, error) {
	return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Renderer surat belum dikonfigurasi")
}

func (r *HTTPLetterRenderer) Render(ctx context.Context, data LetterData) ([]byte, string, error) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadGateway, "Layanan renderer surat tidak dapat dihubungi")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fiber.NewError(fiber.StatusBadGateway,
			fmt.Sprintf("Renderer surat menolak permintaan (%d): %s", resp.StatusCode, string(body)))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return content, contentType, nil
}
