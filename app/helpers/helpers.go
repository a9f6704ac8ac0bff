package helpers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rakhshan/go-storefront/app/models"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

// CurrentUser pulls the authenticated user out of the request context.
// Returns nil for anonymous requests.
func CurrentUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "Storefront"
	}
	if _, exists := pageSpecificData["IsLoggedIn"]; !exists {
		pageSpecificData["IsLoggedIn"] = false
	}
	if _, exists := pageSpecificData["IsAdmin"]; !exists {
		pageSpecificData["IsAdmin"] = false
	}
	if _, exists := pageSpecificData["User"]; !exists {
		pageSpecificData["User"] = nil
	}

	if user := CurrentUser(r); user != nil {
		pageSpecificData["User"] = user
		pageSpecificData["IsLoggedIn"] = true
		pageSpecificData["IsAdmin"] = user.IsAdmin()
	}

	pageSpecificData["MessageStatus"] = r.URL.Query().Get("status")
	pageSpecificData["Message"] = r.URL.Query().Get("message")

	return pageSpecificData
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips any path components and squashes characters that
// are unsafe in a filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

// SaveUploadedFile writes a multipart upload into dir under a sanitized name
// and returns the stored filename.
func SaveUploadedFile(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	defer file.Close()

	filename := SanitizeFilename(header.Filename)
	if filename == "" {
		return "", fmt.Errorf("upload has no usable filename")
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("SaveUploadedFile: failed to write %s: %v", filename, err)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return filename, nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("Validation %s failed on field %s.", err.Tag(), err.Field())
		}
	}
	return errorMessages
}
