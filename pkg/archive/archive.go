// Package archive packages skill directories into ZIP files for sharing and
// imports them back, including size-capped HTTPS downloads.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/skill"
)

// Info describes a skill archive's contents.
type Info struct {
	// Name is the skill name from the archived SKILL.md frontmatter.
	Name string
	// RootDir is the top-level directory inside the archive.
	RootDir string
	// Files lists the archived file paths relative to the root.
	Files []string
}

// Pack zips a skill directory (SKILL.md plus any supporting files) into
// outputPath, rooted under the skill name. Returns the archive size in bytes
// and the packed file list.
func Pack(skillDir, name, outputPath string) (int64, []string, error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "failed to create archive %s", outputPath)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	var files []string

	walkErr := filepath.WalkDir(skillDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(skillDir, filePath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		entry, err := writer.Create(path.Join(name, rel))
		if err != nil {
			return err
		}

		file, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer file.Close()

		if _, err := io.Copy(entry, file); err != nil {
			return err
		}

		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		writer.Close()
		return 0, nil, errors.Wrapf(walkErr, "failed to pack skill directory %s", skillDir)
	}

	if err := writer.Close(); err != nil {
		return 0, nil, errors.Wrapf(err, "failed to finalize archive %s", outputPath)
	}

	info, err := out.Stat()
	if err != nil {
		return 0, files, nil
	}

	sort.Strings(files)
	return info.Size(), files, nil
}

// Inspect reads a skill archive and returns its name, root directory, and
// file list. The archive must contain exactly one top-level directory with a
// SKILL.md carrying valid frontmatter.
func Inspect(data []byte) (*Info, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read archive")
	}

	rootDir := ""
	var files []string
	var skillContents []byte

	for _, file := range reader.File {
		cleaned := path.Clean(file.Name)
		if strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
			return nil, errors.Errorf("archive contains unsafe path %q", file.Name)
		}

		parts := strings.SplitN(cleaned, "/", 2)
		if len(parts) < 2 {
			continue
		}
		if rootDir == "" {
			rootDir = parts[0]
		} else if parts[0] != rootDir {
			return nil, errors.New("archive must contain a single top-level skill directory")
		}

		if file.FileInfo().IsDir() {
			continue
		}
		files = append(files, parts[1])

		if parts[1] == skill.FileName {
			rc, err := file.Open()
			if err != nil {
				return nil, errors.Wrap(err, "failed to read SKILL.md from archive")
			}
			skillContents, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, errors.Wrap(err, "failed to read SKILL.md from archive")
			}
		}
	}

	if skillContents == nil {
		return nil, errors.New("archive does not contain a SKILL.md")
	}

	metadata, err := skill.ParseFrontmatter(string(skillContents))
	if err != nil {
		return nil, errors.Wrap(err, "invalid SKILL.md in archive")
	}

	sort.Strings(files)
	return &Info{Name: metadata.Name, RootDir: rootDir, Files: files}, nil
}

// Extract unpacks the archive's root directory into targetDir.
func Extract(data []byte, rootDir, targetDir string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.Wrap(err, "failed to read archive")
	}

	for _, file := range reader.File {
		cleaned := path.Clean(file.Name)
		if strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
			return errors.Errorf("archive contains unsafe path %q", file.Name)
		}

		rel := strings.TrimPrefix(cleaned, rootDir+"/")
		if rel == cleaned || rel == "" {
			continue
		}

		dest := filepath.Join(targetDir, filepath.FromSlash(rel))

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", dest)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", filepath.Dir(dest))
		}

		rc, err := file.Open()
		if err != nil {
			return errors.Wrapf(err, "failed to read %s from archive", file.Name)
		}

		out, err := os.Create(dest)
		if err != nil {
			rc.Close()
			return errors.Wrapf(err, "failed to write %s", dest)
		}

		_, copyErr := io.Copy(out, rc)
		rc.Close()
		closeErr := out.Close()
		if copyErr != nil {
			return errors.Wrapf(copyErr, "failed to write %s", dest)
		}
		if closeErr != nil {
			return errors.Wrapf(closeErr, "failed to write %s", dest)
		}
	}

	return nil
}
