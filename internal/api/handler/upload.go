package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mcoot/fantasta/internal/api/apierr"
)

// MaxUploadSize caps workbook uploads
const MaxUploadSize = 32 << 20

// readUpload reads a workbook either from a multipart "file" field or from
// the raw request body. The whole body is read before the session is
// touched.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	var (
		body io.Reader = r.Body
		name           = r.URL.Query().Get("name")
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", uploadError(err)
		}
		defer func() { _ = file.Close() }()
		body = file
		name = header.Filename
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", uploadError(err)
	}
	if len(data) == 0 {
		return nil, "", apierr.NewInvalidRequestError("empty upload")
	}
	if name == "" {
		name = "upload"
	}
	return data, name, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apierr.NewPayloadTooLargeError()
	}
	return apierr.NewInvalidRequestError("could not read upload: " + err.Error())
}
