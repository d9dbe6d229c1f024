// Package pack loads question packages: the ordered question sets a test
// code selects. Packages are read-only from the session's perspective.
package pack

import (
	"context"
	"errors"

	"github.com/prasetya/ujian/internal/exam"
)

// PackageVersion is the envelope version this build reads and serves.
const PackageVersion = 1

// ErrPackageNotFound means no package exists for the requested test code.
var ErrPackageNotFound = errors.New("question package not found")

// Package is the versioned envelope around a question set. Questions live
// under a named field so the contract is explicit, not positional.
type Package struct {
	Version   int             `json:"version"`
	TestCode  string          `json:"test_code"`
	Questions []exam.Question `json:"questions"`
}

// Source resolves a test code to its question package.
type Source interface {
	Load(ctx context.Context, testCode string) (*Package, error)
}
