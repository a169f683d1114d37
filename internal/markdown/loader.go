package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// DefaultPattern selects Markdown files during directory discovery.
const DefaultPattern = "*.md"

// LoaderConfig configures file discovery.
type LoaderConfig struct {
	// Pattern limits discovered files to base names matching the glob.
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Source is a Markdown file split into frontmatter and body.
type Source struct {
	Path        string
	FrontMatter interfaces.FrontMatter
	Body        []byte
	Modified    time.Time
	// Checksum is the SHA-256 digest of the raw file.
	Checksum []byte
}

// Loader reads Markdown sources from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Loader{fs: filesystem, pattern: pattern, recursive: cfg.Recursive}
}

// LoadFile reads and splits a single file. Paths are slash separated and
// relative to the loader filesystem.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	sum := sha256.Sum256(data)
	return &Source{
		Path:        name,
		FrontMatter: fm,
		Body:        body,
		Modified:    info.ModTime(),
		Checksum:    sum[:],
	}, nil
}

// LoadDirectory loads every matching file below dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Source, error) {
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	var sources []*Source
	err := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if name != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if match, _ := path.Match(l.pattern, path.Base(name)); !match {
			return nil
		}
		src, err := l.LoadFile(ctx, name)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(sources, func(a, b *Source) int {
		return strings.Compare(a.Path, b.Path)
	})
	return sources, nil
}
