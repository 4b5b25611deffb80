package oss

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk service/controller.

- UploadDocument: berkas pengajuan (pdf/doc/docx) apa adanya, return juga
  objectKey untuk disimpan di DB.
- UploadBytes: hasil render surat pengantar (byte) dari collaborator.
- UploadAvatar: foto profil, di-recompress ke WebP dulu.
- DeleteByPublicURL: hapus object berdasarkan URL publiknya.
*/
type BlobService interface {
	UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, objectKey, contentType string, err error)
	UploadBytes(ctx context.Context, dir, fileName string, data []byte, contentType string) (publicURL, objectKey string, err error)
	UploadAvatar(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv membuat instance dari ENV. Binding bucket yang
// absen adalah error 500 bertipe — tidak boleh diam-diam sukses.
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Storage binding tidak tersedia: %v", err))
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	if fh == nil {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(key), key, ct, nil
}

func (b *OSSBlobService) UploadBytes(ctx context.Context, dir, fileName string, data []byte, contentType string) (string, string, error) {
	key, err := b.svc.UploadBytesToDir(ctx, dir, fileName, data, contentType)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(key), key, nil
}

func (b *OSSBlobService) UploadAvatar(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer src.Close()

	webpData, err := ConvertToWebP(src, fh.Filename)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (pakai jpg/png/webp)")
	}

	base := fh.Filename
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	key, err := b.svc.UploadBytesToDir(ctx, dir, base+".webp", webpData, "image/webp")
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(key), nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	if err := b.svc.DeleteByPublicURL(ctx, publicURL); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Gagal hapus object: %v", err))
	}
	return nil
}

// --------------------------------------------------
// Fallback saat binding bucket absen
// --------------------------------------------------

var errStorageUnbound = fiber.NewError(fiber.StatusInternalServerError, "Storage binding tidak tersedia")

// UnboundBlobService menolak semua operasi dengan error bertipe. Dipakai
// saat ENV OSS tidak lengkap supaya endpoint unggah gagal jelas, bukan diam.
type UnboundBlobService struct{}

func NewUnboundBlobService() UnboundBlobService { return UnboundBlobService{} }

func (UnboundBlobService) UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	return "", "", "", errStorageUnbound
}

func (UnboundBlobService) UploadBytes(ctx context.Context, dir, fileName string, data []byte, contentType string) (string, string, error) {
	return "", "", errStorageUnbound
}

func (UnboundBlobService) UploadAvatar(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	return "", errStorageUnbound
}

func (UnboundBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	return errStorageUnbound
}

// --------------------------------------------------
// Mock untuk test / dev tanpa OSS
// --------------------------------------------------

type MockBlobService struct {
	Uploaded []string
	Deleted  []string
	FailNext bool
}

func (m *MockBlobService) UploadDocument(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	if m.FailNext {
		m.FailNext = false
		return "", "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	name := "file"
	if fh != nil {
		name = fh.Filename
	}
	key := strings.Trim(dir, "/") + "/" + slugify(name)
	m.Uploaded = append(m.Uploaded, key)
	return "https://mock-bucket.local/" + key, key, "application/octet-stream", nil
}

func (m *MockBlobService) UploadBytes(ctx context.Context, dir, fileName string, data []byte, contentType string) (string, string, error) {
	if m.FailNext {
		m.FailNext = false
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	key := strings.Trim(dir, "/") + "/" + slugify(fileName)
	m.Uploaded = append(m.Uploaded, key)
	return "https://mock-bucket.local/" + key, key, nil
}

func (m *MockBlobService) UploadAvatar(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	url, _, _, err := m.UploadDocument(ctx, dir, fh)
	return url, err
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.FailNext {
		m.FailNext = false
		return fiber.NewError(fiber.StatusBadGateway, "Gagal hapus object")
	}
	m.Deleted = append(m.Deleted, publicURL)
	return nil
}
