package controllers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
)

type uploadedFile struct {
	multipart.File
	Name string
}

// openValidatedImage pulls the "file" part out of a multipart form and
// checks it against the upload policy before anything touches disk.
func openValidatedImage(ctx echo.Context, cfg config.UploadConfig) (*uploadedFile, error) {
	header, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "missing file part", err, nil)
	}

	if header.Size > cfg.MaxSizeMB<<20 {
		return nil, apperrors.NewHttpError(
			http.StatusRequestEntityTooLarge,
			"file exceeds the size limit",
			nil,
			map[string]interface{}{"max_size_mb": cfg.MaxSizeMB},
		)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(cfg.AllowedExtensions, ext) {
		return nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			"file extension is not allowed",
			nil,
			map[string]interface{}{"allowed_extensions": cfg.AllowedExtensions},
		)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !contains(cfg.AllowedMimeTypes, contentType) {
		return nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			"file type is not allowed",
			nil,
			map[string]interface{}{"allowed_mime_types": cfg.AllowedMimeTypes},
		)
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "failed to open uploaded file", err, nil)
	}
	return &uploadedFile{File: file, Name: header.Filename}, nil
}

func contains(values []string, v string) bool {
	for _, known := range values {
		if known == v {
			return true
		}
	}
	return false
}
