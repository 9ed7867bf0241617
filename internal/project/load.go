package project

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/scrapec/internal/ctxlog"
)

// ArchiveMember is the name of the project document inside a .sb3 archive.
const ArchiveMember = "project.json"

var (
	// ErrInvalidProject is returned when the document does not have the
	// expected shape.
	ErrInvalidProject = errors.New("invalid project")
	// ErrMissingMember is returned when an archive has no project.json.
	ErrMissingMember = errors.New("archive does not contain " + ArchiveMember)
)

// Options controls how Load interprets the input file.
type Options struct {
	// RawJSON treats the file as a bare project.json instead of an archive.
	RawJSON bool
}

// Load reads and decodes the project at path.
func Load(ctx context.Context, path string, opts Options) (*Project, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)

	var (
		data []byte
		err  error
	)
	if opts.RawJSON {
		logger.Debug("Reading raw project document.")
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read project %q: %w", path, err)
		}
	} else {
		logger.Debug("Reading project archive.")
		data, err = readArchive(path)
		if err != nil {
			return nil, err
		}
	}

	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load project %q: %w", path, err)
	}
	logger.Debug("Project decoded.", "targets", len(p.Targets))
	return p, nil
}

func readArchive(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", path, err)
	}
	defer zr.Close()

	data, err := ReadMember(&zr.Reader)
	if err != nil {
		return nil, fmt.Errorf("archive %q: %w", path, err)
	}
	return data, nil
}

// ReadMember returns the contents of project.json from an opened archive.
func ReadMember(zr *zip.Reader) ([]byte, error) {
	f, err := zr.Open(ArchiveMember)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMissingMember
		}
		return nil, fmt.Errorf("open %s: %w", ArchiveMember, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ArchiveMember, err)
	}
	return data, nil
}

// Decode validates data against the project schema and decodes it.
func Decode(data []byte) (*Project, error) {
	var doc any
	if err := decodeJSON(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	p := &Project{}
	if err := decodeJSON(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	return p, nil
}
