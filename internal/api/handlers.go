package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/explore"
	"github.com/forgelab/gamegen-go/internal/pipeline"
	"github.com/forgelab/gamegen-go/internal/spec"
	"github.com/forgelab/gamegen-go/internal/store"
	"github.com/forgelab/gamegen-go/internal/validate"
)

// GenerateResponse wraps a specification with its advisory report.
type GenerateResponse struct {
	Spec     *spec.GameSpecification `json:"spec"`
	Report   validate.Report         `json:"report"`
	Fallback bool                    `json:"fallback,omitempty"`
	Version  string                  `json:"version"`
}

// handleGenerate runs a fresh generation for the posted choice vector and
// stores the result under its seed code.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var cv choices.ChoiceVector
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.generateAndStore(w, cv)
}

// handleScenario accepts raw questionnaire answers keyed by question id,
// normalizes them into a choice vector, and generates from that.
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var answers choices.ScenarioAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.generateAndStore(w, choices.FromScenario(answers))
}

func (s *Server) generateAndStore(w http.ResponseWriter, cv choices.ChoiceVector) {
	res := pipeline.Generate(cv)
	if err := s.db.SaveSpec(res.Spec); err != nil {
		// The caller still gets their game; only persistence is degraded.
		s.log.WithError(err).WithField("code", res.Spec.SeedCode).Error("failed to store spec")
	}

	s.log.WithFields(logrus.Fields{
		"code":     res.Spec.SeedCode,
		"genre":    res.Spec.Genre,
		"chaos":    res.Spec.Chaos.Level,
		"warnings": len(res.Report.Warnings),
	}).Info("spec generated")

	s.writeJSON(w, http.StatusOK, GenerateResponse{
		Spec:    res.Spec,
		Report:  res.Report,
		Version: Version,
	})
}

// handleGetSpec serves a specification by seed code: stored copy first, then
// replay from the code, then the default minimal specification for codes
// that do not decode. The endpoint never 404s a malformed code; sharing a
// mangled link still lands on a playable game.
func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	doc, err := s.db.GetSpecByCode(code)
	if err == nil {
		s.writeJSON(w, http.StatusOK, GenerateResponse{
			Spec:    doc,
			Report:  validate.Check(doc),
			Version: Version,
		})
		return
	}
	if err != store.ErrNotFound {
		s.log.WithError(err).WithField("code", code).Error("spec lookup failed")
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	dec := engine.DecodeSeedCode(code)
	if !dec.OK {
		s.log.WithField("code", code).Info("undecodable seed code, serving fallback")
		fallback := pipeline.DefaultSpec()
		s.writeJSON(w, http.StatusOK, GenerateResponse{
			Spec:     fallback,
			Report:   validate.Check(fallback),
			Fallback: true,
			Version:  Version,
		})
		return
	}

	res := pipeline.GenerateWithSeed(dec.ChoiceVector(), dec.Seed)
	if err := s.db.SaveSpec(res.Spec); err != nil {
		s.log.WithError(err).WithField("code", res.Spec.SeedCode).Error("failed to store replayed spec")
	}

	s.writeJSON(w, http.StatusOK, GenerateResponse{
		Spec:    res.Spec,
		Report:  res.Report,
		Version: Version,
	})
}

// handleListSpecs returns recent generation metadata.
func (s *Server) handleListSpecs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			s.writeError(w, http.StatusBadRequest, "limit must be an integer in [1,100]")
			return
		}
		limit = n
	}

	metas, err := s.db.ListRecent(limit)
	if err != nil {
		s.log.WithError(err).Error("listing failed")
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"specs": metas, "version": Version})
}

// DecodeRequest carries a seed code to inspect.
type DecodeRequest struct {
	Code string `json:"code"`
}

// DecodeResponse is the recovered subset of the choice vector. OK false
// means the code is unreconstructible and replay would use the fallback.
type DecodeResponse struct {
	OK       bool   `json:"ok"`
	Verb     string `json:"verb,omitempty"`
	Gravity  string `json:"gravity,omitempty"`
	Boundary string `json:"boundary,omitempty"`
	Chaos    int    `json:"chaos"`
	WorldKey string `json:"world_key,omitempty"`
	Seed     uint32 `json:"seed"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dec := engine.DecodeSeedCode(req.Code)
	s.writeJSON(w, http.StatusOK, DecodeResponse{
		OK:       dec.OK,
		Verb:     dec.Verb,
		Gravity:  string(dec.Gravity),
		Boundary: string(dec.Boundary),
		Chaos:    dec.Chaos,
		WorldKey: dec.WorldKey,
		Seed:     dec.Seed,
	})
}

// handleExplore runs a bounded seed-range scan.
func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	var req explore.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.TimeoutMs <= 0 {
		req.TimeoutMs = 30000
	}

	result, err := s.scanner.Scan(r.Context(), req)
	if err != nil {
		switch err {
		case explore.ErrBadRange, explore.ErrRangeTooLarge, explore.ErrUnknownMetric, explore.ErrUnknownOp:
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.log.WithError(err).Error("explore failed")
			s.writeError(w, http.StatusInternalServerError, "scan failed")
		}
		return
	}

	s.log.WithFields(logrus.Fields{
		"metric":    req.Metric,
		"evaluated": result.Summary.TotalEvaluated,
		"hits":      result.Summary.HitsFound,
		"timed_out": result.Summary.TimedOut,
	}).Info("explore completed")

	s.writeJSON(w, http.StatusOK, result)
}
