package pack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirSource serves packages from a directory of <testcode>.json files.
// The filename match is case-insensitive, so "t1" finds "T1.json".
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource over dir. The directory does not have
// to exist yet; a missing directory just means no packages.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Load reads, validates, and decodes the package for testCode.
func (s *DirSource) Load(ctx context.Context, testCode string) (*Package, error) {
	if testCode == "" {
		return nil, ErrPackageNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("read package dir: %w", err)
	}

	want := strings.ToLower(testCode) + ".json"
	var path string
	for _, e := range entries {
		if !e.IsDir() && strings.ToLower(e.Name()) == want {
			path = filepath.Join(s.dir, e.Name())
			break
		}
	}
	if path == "" {
		return nil, ErrPackageNotFound
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package %s: %w", path, err)
	}
	if err := validatePackage(raw); err != nil {
		return nil, fmt.Errorf("package %s: %w", filepath.Base(path), err)
	}

	var pkg Package
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return nil, fmt.Errorf("decode package %s: %w", path, err)
	}
	return &pkg, nil
}

// List returns the test codes of all readable, valid packages in the
// directory with their question counts, sorted by code.
func (s *DirSource) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read package dir: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		code := strings.TrimSuffix(name, filepath.Ext(name))
		pkg, err := s.Load(ctx, code)
		if err != nil {
			infos = append(infos, Info{TestCode: code, Err: err})
			continue
		}
		infos = append(infos, Info{TestCode: pkg.TestCode, Questions: len(pkg.Questions)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].TestCode < infos[j].TestCode })
	return infos, nil
}

// Info summarizes one package file for listings.
type Info struct {
	TestCode  string
	Questions int
	Err       error // set when the file exists but fails validation
}
