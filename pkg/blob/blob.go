// Package blob is the port to public file storage (avatars).
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrExists      = errors.New("blob already exists")
	ErrInvalidPath = errors.New("invalid blob path")
)

// Object is a file to upload.
type Object struct {
	Path        string
	Body        io.Reader
	Size        int64
	ContentType string
}

// Store uploads files and hands out their public URLs.
type Store interface {
	// Upload returns ErrExists when overwrite is false and the path is taken.
	Upload(ctx context.Context, obj Object, overwrite bool) error
	// Delete removes p; a missing object is not an error.
	Delete(ctx context.Context, p string) error
	PublicURL(p string) string
}

// CleanPath rejects absolute paths and parent references.
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return clean, nil
}

// avatarTypes are the sniffed content types accepted as avatars.
var avatarTypes = []struct{ contentType, ext string }{
	{"image/png", "png"},
	{"image/jpeg", "jpg"},
	{"image/gif", "gif"},
	{"image/webp", "webp"},
}

// AvatarExt maps a sniffed content type to the stored extension.
func AvatarExt(contentType string) (string, bool) {
	for _, t := range avatarTypes {
		if t.contentType == contentType {
			return t.ext, true
		}
	}
	return "", false
}

// NormalizeExt lower-cases ext, drops the dot and folds "jpeg" into "jpg".
func NormalizeExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// AvatarPath is the storage path of an owner's avatar.
func AvatarPath(ownerID, ext string) string {
	ext = NormalizeExt(ext)
	if ext == "" {
		return ownerID
	}
	return ownerID + "." + ext
}

// StaleAvatarPaths lists the owner's avatar paths other than the one with keepExt.
func StaleAvatarPaths(ownerID, keepExt string) []string {
	keepExt = NormalizeExt(keepExt)
	var out []string
	for _, t := range avatarTypes {
		if t.ext != keepExt {
			out = append(out, AvatarPath(ownerID, t.ext))
		}
	}
	return out
}
