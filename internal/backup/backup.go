// Package backup keeps a copy of a file before it is rewritten in place.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// DefaultSuffix is appended to the original path.
const DefaultSuffix = ".backup"

// Create copies path to the first free name among path+suffix,
// path+suffix+".1", path+suffix+".2", ... and returns it. Existing backups
// are never overwritten, so the oldest content stays at path+suffix.
// The copy keeps the permission bits of the original.
func Create(path, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}

	base := path + suffix
	for n := 0; ; n++ {
		target := base
		if n > 0 {
			target = base + "." + strconv.Itoa(n)
		}
		// O_EXCL: параллельный запуск не перезапишет чужую копию
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("backup %s: %w", path, err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			os.Remove(target)
			return "", fmt.Errorf("backup %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(target)
			return "", fmt.Errorf("backup %s: %w", path, err)
		}
		return target, nil
	}
}
