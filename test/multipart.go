package test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Multipart encodes the fields and an optional file as multipart form.
//
// The body is returned as a buffer together with a map for the HTTP request headers
func Multipart(t *testing.T, fields map[string]string, fileField, fileName string, file []byte) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			assert.FailNow(t, err.Error())
		}
	}

	if file != nil {
		w, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			assert.FailNow(t, err.Error())
		}

		if _, err := w.Write(file); err != nil {
			assert.FailNow(t, err.Error())
		}
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
