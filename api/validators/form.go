package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

const defaultFormMemory = 32 << 20

// FormFile is one uploaded file read fully into memory.
type FormFile struct {
	Name string
	Data []byte
}

// ParseMultipartForm parses the request form, capping the total body size.
func ParseMultipartForm(r *http.Request, maxBytes int64) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(defaultFormMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// FormString returns the trimmed form value, empty when absent.
func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormOptionalString returns nil for absent or blank form values.
func FormOptionalString(r *http.Request, key string) *string {
	value := FormString(r, key)
	if value == "" {
		return nil
	}
	return &value
}

// FormFlagTrue reports whether the form value is the literal "true".
func FormFlagTrue(r *http.Request, key string) bool {
	return r.FormValue(key) == "true"
}

// FormUint parses a required unsigned identifier field.
func FormUint(r *http.Request, key string) (uint, error) {
	raw := FormString(r, key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s must be a positive integer", key))
	}
	return uint(value), nil
}

// DecodeFormJSON decodes a JSON-encoded form field into dest. Absent or blank
// fields leave dest untouched.
func DecodeFormJSON(r *http.Request, key string, dest any) error {
	raw := FormString(r, key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err,
			fmt.Sprintf("%s must be valid JSON", key)).
			WithDetails(map[string]any{"field": key})
	}
	return nil
}

// FormFiles reads every uploaded file under the given field into memory.
func FormFiles(r *http.Request, key string) ([]FormFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[key]
	files := make([]FormFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "failed to open uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "failed to read uploaded file")
		}
		files = append(files, FormFile{Name: header.Filename, Data: data})
	}
	return files, nil
}
