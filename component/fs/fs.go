package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const UserRead os.FileMode = 0o400

var ErrNoWritePermission = errors.New("no write permission")

// AddPermission ORs perm into the file's mode bits.
func AddPermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode&perm == perm {
		return nil
	}
	return os.Chmod(path, mode|perm)
}

// Touch creates an empty file if path does not exist.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// CheckWritable fails with ErrNoWritePermission when the current user may
// not write to path.
func CheckWritable(path string) error {
	if err := access(path); err != nil {
		return fmt.Errorf("%w for %s: %w", ErrNoWritePermission, path, err)
	}
	return nil
}

// WriteAtomic writes through a temporary file in the target directory and
// renames it over path, so path holds either the old or the new content.
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
