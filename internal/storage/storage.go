// Package storage stores uploaded files under the media root. Files are
// kept in a subdirectory per kind with generated names; the returned path
// is relative to the root and is what the database records.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind of upload; decides the target subdirectory and allowed extensions.
type Kind string

const (
	KindTeamImage  Kind = "team"
	KindResume     Kind = "resumes"
	KindAvatar     Kind = "avatars"
	KindUserResume Kind = "user_resumes"
	KindLogo       Kind = "company"
)

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
var resumeExts = []string{".pdf", ".doc", ".docx"}

var allowedExts = map[Kind][]string{
	KindTeamImage:  imageExts,
	KindResume:     resumeExts,
	KindAvatar:     imageExts,
	KindUserResume: resumeExts,
	KindLogo:       imageExts,
}

// AllowedExt reports whether filename carries an extension accepted for kind.
func AllowedExt(kind Kind, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range allowedExts[kind] {
		if ext == e {
			return true
		}
	}
	return false
}

// ExtList returns the accepted extensions for kind, without dots, for error
// messages.
func ExtList(kind Kind) string {
	exts := make([]string, 0, len(allowedExts[kind]))
	for _, e := range allowedExts[kind] {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return strings.Join(exts, ", ")
}

// Store writes files under a media root directory.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Save stores the content of r under the kind's subdirectory with a
// generated name keeping the original extension. Returns the path relative
// to the media root.
func (s *Store) Save(kind Kind, filename string, r io.Reader) (string, error) {
	if !AllowedExt(kind, filename) {
		return "", fmt.Errorf("file extension %q is not allowed for %s", filepath.Ext(filename), kind)
	}

	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dst := filepath.Join(dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write media file: %w", err)
	}

	return string(kind) + "/" + name, nil
}

// Remove deletes a stored file by its relative path. Missing files are not
// an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Root returns the media root directory.
func (s *Store) Root() string { return s.root }
