package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationMap mengubah error validator menjadi map field -> daftar pesan,
// siap dikirim lewat JsonValidationError.
func ValidationMap(err error) map[string][]string {
	out := make(map[string][]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], "validasi gagal pada aturan '"+fe.Tag()+"'")
	}
	return out
}
