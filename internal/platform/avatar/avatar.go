// Package avatar はプロフィール画像の公開パスを解決します。アップロードは扱いません。
package avatar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL prefix under which the avatar directory is served.
const PublicPrefix = "/perfil/imagens"

// Locator resolves the public path of a user's avatar.
type Locator interface {
	Locate(userID uint) *string
}

// FileLocator looks for <Dir>/<id>.<Ext> on the local filesystem.
type FileLocator struct {
	Dir string
	Ext string
}

var _ Locator = FileLocator{}

// NewFileLocator creates a FileLocator. A leading dot in ext is ignored.
func NewFileLocator(dir, ext string) FileLocator {
	return FileLocator{Dir: dir, Ext: strings.TrimPrefix(ext, ".")}
}

func (l FileLocator) fileName(userID uint) string {
	return fmt.Sprintf("%d.%s", userID, l.Ext)
}

// Locate returns "/perfil/imagens/<id>.<ext>" when the file exists, or nil.
func (l FileLocator) Locate(userID uint) *string {
	if l.Dir == "" || userID == 0 {
		return nil
	}
	name := l.fileName(userID)
	info, err := os.Stat(filepath.Join(l.Dir, name))
	if err != nil || info.IsDir() {
		return nil
	}
	p := PublicPrefix + "/" + name
	return &p
}
