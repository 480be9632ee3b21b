package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/decision"
	"github.com/abhisek/agentbrief/internal/enhance"
)

const maxBodyBytes = 1 << 20

type deriveResponse struct {
	Result   decision.Result `json:"result"`
	Document string          `json:"document"`
	Filename string          `json:"filename"`
	Enhanced bool            `json:"enhanced"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeAnswers accepts either an answers file ({"version":..,"answers":{..}})
// or a bare answer set.
func decodeAnswers(data []byte) (answers.Set, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if _, ok := envelope["answers"]; ok {
		return answers.Parse(data)
	}
	var set answers.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if set == nil {
		set = answers.Set{}
	}
	return set, nil
}

func (h *Handler) handleDerive(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	a, err := decodeAnswers(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var e enhance.Enhancer
	if want, _ := strconv.ParseBool(r.URL.Query().Get("enhance")); want {
		e = h.enhancer
	}
	res, doc := enhance.Render(r.Context(), e, a, h.now(), h.logger)

	writeJSON(w, http.StatusOK, deriveResponse{
		Result:   res,
		Document: doc.String(),
		Filename: doc.Filename,
		Enhanced: doc.Enhanced,
	})
}

type skillView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Group       catalog.Group `json:"group"`
	Description string        `json:"description"`
	Path        string        `json:"path"`
}

func (h *Handler) handleSkills(w http.ResponseWriter, _ *http.Request) {
	all := catalog.AllSkills()
	out := make([]skillView, len(all))
	for i, s := range all {
		out[i] = skillView{
			ID:          s.ID,
			Name:        s.Name,
			Group:       s.Group,
			Description: s.Description,
			Path:        catalog.SkillPath(s.ID),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
