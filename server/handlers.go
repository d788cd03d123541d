package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etnz/club"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClub(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.club.Data())
}

// view parses the "view" query parameter, combined by default.
func (s *Server) view(w http.ResponseWriter, name string) (club.View, bool) {
	v, err := club.ParseView(name)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return v, true
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.club.Data().Select(v))
}

func (s *Server) handleMemberReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.club.MemberReport(chi.URLParam(r, "id"), r.URL.Query().Get("email"))
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

type performanceResponse struct {
	Stats         club.Stats            `json:"stats"`
	AnnualReturns []club.AnnualReturn   `json:"annualReturns"`
	TrackRecord   []club.TrackRecordRow `json:"trackRecord"`
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	history := s.club.Data().PerformanceHistory
	s.writeJSON(w, http.StatusOK, performanceResponse{
		Stats:         club.ComputeStats(history),
		AnnualReturns: club.AnnualReturns(history),
		TrackRecord:   club.TrackRecord(history),
	})
}

type riskResponse struct {
	View          club.View          `json:"view"`
	Concentration club.Concentration `json:"concentration"`
	Weights       []club.Weight      `json:"weights"`
	Stats         club.Stats         `json:"stats"`
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r.URL.Query().Get("view"))
	if !ok {
		return
	}
	d := s.club.Data()
	state := d.Select(v)
	s.writeJSON(w, http.StatusOK, riskResponse{
		View:          v,
		Concentration: club.ComputeConcentration(state.Holdings, state.TotalValue),
		Weights:       club.Weights(state),
		Stats:         club.ComputeStats(d.PerformanceHistory),
	})
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r.URL.Query().Get("view"))
	if !ok {
		return
	}
	state := s.club.Data().Select(v)
	details := s.advisor.ClassifyAssets(r.Context(), club.Tickers(state.Holdings))
	s.writeJSON(w, http.StatusOK, club.ComputeAllocation(state, details))
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var tx club.Transaction
	if err := decode(r, &tx); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid transaction: %w", err))
		return
	}
	tx, err := s.club.AddTransaction(r.Context(), tx)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var m club.Member
	if err := decode(r, &m); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid member: %w", err))
		return
	}
	m, err := s.club.AddMember(r.Context(), m)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, m)
}

type stressRequest struct {
	Scenario club.Scenario `json:"scenario"`
	Percent  *float64      `json:"percent,omitempty"` // the scenario default when missing
	Asset    string        `json:"asset,omitempty"`
	View     string        `json:"view,omitempty"`
}

func (s *Server) handleStress(w http.ResponseWriter, r *http.Request) {
	var req stressRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid stress request: %w", err))
		return
	}
	scenario, err := club.ParseScenario(string(req.Scenario))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	v, ok := s.view(w, req.View)
	if !ok {
		return
	}
	pct := scenario.DefaultPercent()
	if req.Percent != nil {
		pct = *req.Percent
	}
	s.writeJSON(w, http.StatusOK, club.StressTest(s.club.Data().Select(v), scenario, pct, req.Asset))
}

type adviceRequest struct {
	Ticker string `json:"ticker,omitempty"` // market
	Prompt string `json:"prompt,omitempty"` // stock
	View   string `json:"view,omitempty"`   // risk
}

// handleStartAdvice starts the advisory call of a control and answers with its
// pending state. The outcome is read with GET on the same path.
func (s *Server) handleStartAdvice(w http.ResponseWriter, r *http.Request) {
	control := chi.URLParam(r, "control")
	var req adviceRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid advice request: %w", err))
			return
		}
	}

	var fn func(ctx context.Context) (string, error)
	switch control {
	case "market":
		if req.Ticker == "" {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("market analysis requires a ticker"))
			return
		}
		fn = func(ctx context.Context) (string, error) { return s.advisor.MarketAnalysis(ctx, req.Ticker) }
	case "stock":
		if req.Prompt == "" {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("stock analysis requires a prompt"))
			return
		}
		fn = func(ctx context.Context) (string, error) { return s.advisor.StockModelAnalysis(ctx, req.Prompt) }
	case "risk":
		v, ok := s.view(w, req.View)
		if !ok {
			return
		}
		holdings := s.club.Data().Select(v).Holdings
		fn = func(ctx context.Context) (string, error) { return s.advisor.RiskAnalysis(ctx, holdings) }
	case "yield":
		fn = s.advisor.YieldCurveAnalysis
	default:
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown advisory control %q", control))
		return
	}
	s.calls.Start(r.Context(), control, fn)
	result, _ := s.calls.Get(control)
	s.writeJSON(w, http.StatusAccepted, result)
}

func (s *Server) handleGetAdvice(w http.ResponseWriter, r *http.Request) {
	control := chi.URLParam(r, "control")
	result, ok := s.calls.Get(control)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no advisory call for %q", control))
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
