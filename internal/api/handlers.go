package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/store"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// GetQuestionsHandler serves the question package for ?testCode=.
func GetQuestionsHandler(src pack.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testCode := r.URL.Query().Get("testCode")
		if testCode == "" {
			writeError(w, http.StatusBadRequest, "test code is required")
			return
		}
		pkg, err := src.Load(r.Context(), testCode)
		if err != nil {
			if errors.Is(err, pack.ErrPackageNotFound) {
				writeError(w, http.StatusNotFound, "question package not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "error reading question package")
			return
		}
		writeJSON(w, http.StatusOK, pkg)
	}
}

type submitResponse struct {
	Success bool `json:"success"`
}

// SubmitTestHandler accepts a submission record, validates it, and stores
// the submission plus its derived result. Malformed payloads are rejected
// before anything is written.
func SubmitTestHandler(st store.Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub exam.SubmissionRecord
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := exam.ValidateSubmission(sub); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := st.SaveSubmission(r.Context(), sub); err != nil {
			var verr *exam.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "error saving test data")
			return
		}
		writeJSON(w, http.StatusOK, submitResponse{Success: true})
	}
}

// GetResultHandler looks up the result for ?testCode=&userId=. First-match
// semantics come from the store.
func GetResultHandler(st store.Finder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testCode := r.URL.Query().Get("testCode")
		userID := r.URL.Query().Get("userId")
		if testCode == "" || userID == "" {
			writeError(w, http.StatusBadRequest, "test code and user ID are required")
			return
		}
		rec, err := st.FindResult(r.Context(), testCode, userID)
		if err != nil {
			if errors.Is(err, store.ErrResultNotFound) {
				writeError(w, http.StatusNotFound, "no results found for this user and test code")
				return
			}
			writeError(w, http.StatusInternalServerError, "error reading results")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
