package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/synapt/synapt/internal/logging"
	"github.com/synapt/synapt/internal/questiongen"
)

type handler struct {
	gen     Generator
	maxBody int64
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) generateQuestion(w http.ResponseWriter, r *http.Request) {
	log := logging.WithContext(r.Context())

	var req questiongen.Request
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	env, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"error_kind": questiongen.ErrorKind(err),
			"section":    req.Section,
			"topic":      req.Topic,
		}).Error("question generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.WithFields(logrus.Fields{
		"id":      env.Metadata.ID,
		"section": env.Question.Section,
	}).Info("question generated")
	writeJSON(w, http.StatusOK, env)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.gen.ModelID(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
