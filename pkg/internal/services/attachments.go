package services

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// SaveImageFromBase64 decodes a "data:image/...;base64,..." payload into the
// configured attachment directory and returns the stored file name.
func SaveImageFromBase64(data string) (string, error) {
	header, payload, found := strings.Cut(data, ",")
	if !found || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return "", &ValidationError{Field: "image", Reason: "must be a base64 encoded data uri of an image"}
	}

	ext := strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	if idx := strings.Index(ext, "+"); idx >= 0 {
		ext = ext[:idx]
	}
	if len(ext) == 0 {
		ext = "png"
	}

	blob, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", &ValidationError{Field: "image", Reason: "contains malformed base64 data"}
	}

	basepath := viper.GetString("attachments.path")
	if err := os.MkdirAll(basepath, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(basepath, name), blob, 0644); err != nil {
		return "", err
	}

	return name, nil
}

// DeleteAttachment removes a stored file; a file that is already gone is not
// an error.
func DeleteAttachment(name string) error {
	if len(name) == 0 {
		return nil
	}
	err := os.Remove(filepath.Join(viper.GetString("attachments.path"), name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
