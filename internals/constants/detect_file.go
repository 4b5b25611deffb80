package constants

import (
	"path/filepath"
	"strings"
)

// Ekstensi dokumen yang diizinkan untuk berkas pengajuan KP.
var AllowedDocumentExts = []string{".pdf", ".doc", ".docx"}

// Ekstensi khusus surat balasan perusahaan (hanya PDF).
var AllowedResponseLetterExts = []string{".pdf"}

const (
	MaxDocumentSizeMB       = 10
	MaxResponseLetterSizeMB = 10
)

func DetectFileTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".doc", ".docx":
		return "DOCX"
	case ".pdf":
		return "PDF"
	case ".png", ".jpg", ".jpeg", ".webp":
		return "IMAGE"
	default:
		return "UNKNOWN"
	}
}

// IsAllowedExt: cek ekstensi nama file terhadap allow-list.
func IsAllowedExt(filename string, allowList []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowList {
		if ext == a {
			return true
		}
	}
	return false
}
