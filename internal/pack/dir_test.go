package pack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPackage = `{
  "version": 1,
  "test_code": "T1",
  "questions": [
    {
      "id": "q1",
      "scenario": "A patient presents with chest pain.",
      "question": "What is the first step?",
      "option_a": "Call for help",
      "option_b": "Start compressions",
      "option_c": "Check the airway",
      "option_d": "Administer aspirin",
      "option_e": "Record an ECG",
      "correct_answer": "A",
      "subtopic_list_id": "st-1",
      "competence": "triage"
    }
  ]
}`

func writePackage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "T1.json", validPackage)

	pkg, err := NewDirSource(dir).Load(context.Background(), "T1")
	require.NoError(t, err)

	assert.Equal(t, PackageVersion, pkg.Version)
	assert.Equal(t, "T1", pkg.TestCode)
	require.Len(t, pkg.Questions, 1)
	assert.Equal(t, "q1", pkg.Questions[0].ID)
	assert.Equal(t, "A", pkg.Questions[0].CorrectAnswer)
	assert.Equal(t, "Call for help", pkg.Questions[0].Option("A"))
}

func TestDirSourceMatchIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "UKMPPD01.json", validPackage)

	_, err := NewDirSource(dir).Load(context.Background(), "ukmppd01")
	assert.NoError(t, err)
}

func TestDirSourceNotFound(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "T1.json", validPackage)
	src := NewDirSource(dir)

	_, err := src.Load(context.Background(), "T2")
	assert.ErrorIs(t, err, ErrPackageNotFound)

	_, err = src.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestDirSourceMissingDir(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "nope"))

	_, err := src.Load(context.Background(), "T1")
	assert.ErrorIs(t, err, ErrPackageNotFound)

	infos, err := src.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, infos)
}

func TestDirSourceRejectsInvalidPackages(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{"version": 1,`},
		{"wrong version", `{"version": 2, "test_code": "T1", "questions": [{"id": "q", "question": "?", "option_a": "", "option_b": "", "option_c": "", "option_d": "", "option_e": "", "correct_answer": "A"}]}`},
		{"empty questions", `{"version": 1, "test_code": "T1", "questions": []}`},
		{"bad correct answer", `{"version": 1, "test_code": "T1", "questions": [{"id": "q", "question": "?", "option_a": "", "option_b": "", "option_c": "", "option_d": "", "option_e": "", "correct_answer": "F"}]}`},
		{"missing option", `{"version": 1, "test_code": "T1", "questions": [{"id": "q", "question": "?", "option_a": "", "correct_answer": "A"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePackage(t, dir, "T1.json", tt.content)

			_, err := NewDirSource(dir).Load(context.Background(), "T1")
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrPackageNotFound)
		})
	}
}

func TestDirSourceList(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "T1.json", validPackage)
	writePackage(t, dir, "broken.json", `{"version": 1}`)
	writePackage(t, dir, "notes.txt", "not a package")

	infos, err := NewDirSource(dir).List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "T1", infos[0].TestCode)
	assert.Equal(t, 1, infos[0].Questions)
	assert.NoError(t, infos[0].Err)
	assert.Error(t, infos[1].Err)
}
