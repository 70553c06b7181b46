// Package server exposes the timeline engine and the loan store over a JSON
// API.
package server

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hoozter/lendpile/internal/config"
	"github.com/hoozter/lendpile/internal/loan"
	"github.com/hoozter/lendpile/internal/store"
	"github.com/hoozter/lendpile/internal/summary"
	"github.com/hoozter/lendpile/internal/timeline"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Server ties the engine, the summary reporter, and the loan repository to
// HTTP routes.
type Server struct {
	logger   *zap.Logger
	engine   *timeline.Engine
	reporter *summary.Reporter
	repo     store.Repository
}

// New constructs a Server.
func New(logger *zap.Logger, repo store.Repository) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := timeline.NewEngine(logger)
	return &Server{
		logger:   logger,
		engine:   engine,
		reporter: summary.NewReporter(logger, engine),
		repo:     repo,
	}
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type timelineRequest struct {
	Loan config.LoanConfig `json:"loan"`
}

type timelineResponse struct {
	Rows     []timeline.Row `json:"rows"`
	Warnings []string       `json:"warnings,omitempty"`
}

type solveRequest struct {
	Loan       config.LoanConfig `json:"loan"`
	TargetDate string            `json:"targetDate"`
}

type solveResponse struct {
	Achievable      bool     `json:"achievable"`
	RequiredPayment float64  `json:"requiredPayment,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

type validateRequest struct {
	Loan         config.LoanConfig    `json:"loan"`
	Payment      config.PaymentConfig `json:"payment"`
	ExcludeIndex *int                 `json:"excludeIndex,omitempty"`
}

type summaryRequest struct {
	Loans   []config.LoanConfig `json:"loans"`
	AsOf    string              `json:"asOf,omitempty"`
	Exclude []string            `json:"exclude,omitempty"`
}

// Handler returns the fasthttp request handler serving all API routes.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case path == "/api/timeline" && method == fasthttp.MethodPost:
			s.handleTimeline(ctx)
		case path == "/api/solve" && method == fasthttp.MethodPost:
			s.handleSolve(ctx)
		case path == "/api/validate" && method == fasthttp.MethodPost:
			s.handleValidate(ctx)
		case path == "/api/summary" && method == fasthttp.MethodPost:
			s.handleSummary(ctx)
		case path == "/api/loans" && method == fasthttp.MethodGet:
			s.handleListLoans(ctx)
		case strings.HasPrefix(path, "/api/loans/"):
			s.handleLoanByID(ctx, strings.TrimPrefix(path, "/api/loans/"), method)
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, "no such route")
		}
	}
}

func (s *Server) handleTimeline(ctx *fasthttp.RequestCtx) {
	var req timelineRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ln, warnings := config.ConvertLoan(req.Loan)
	rows := s.engine.BuildTimeline(&ln)
	s.writeJSON(ctx, fasthttp.StatusOK, timelineResponse{Rows: rows, Warnings: warnings})
}

func (s *Server) handleSolve(ctx *fasthttp.RequestCtx) {
	var req solveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	target, err := datetime.ParseDate(req.TargetDate)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid targetDate: "+err.Error())
		return
	}

	ln, warnings := config.ConvertLoan(req.Loan)
	required, ok := s.engine.RequiredPayment(&ln, target)
	if !ok {
		// Target not after the loan start: a reportable state, not an error.
		s.writeJSON(ctx, fasthttp.StatusOK, solveResponse{Achievable: false, Warnings: warnings})
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, solveResponse{Achievable: true, RequiredPayment: required, Warnings: warnings})
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	var req validateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ln, _ := config.ConvertLoan(req.Loan)
	payment, _ := config.ConvertPayment(ln.Name, len(ln.Payments), req.Payment)
	if payment == nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "payment rule is unusable")
		return
	}

	excludeIndex := -1
	if req.ExcludeIndex != nil {
		excludeIndex = *req.ExcludeIndex
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.engine.ValidatePayment(&ln, *payment, excludeIndex))
}

func (s *Server) handleSummary(ctx *fasthttp.RequestCtx) {
	var req summaryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	asOf := time.Now()
	if req.AsOf != "" {
		parsed, err := datetime.ParseDate(req.AsOf)
		if err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "invalid asOf: "+err.Error())
			return
		}
		asOf = parsed
	}

	loans := make([]loan.Loan, 0, len(req.Loans))
	for _, lc := range req.Loans {
		ln, _ := config.ConvertLoan(lc)
		loans = append(loans, ln)
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.reporter.Compute(loans, asOf, req.Exclude))
}

func (s *Server) handleListLoans(ctx *fasthttp.RequestCtx) {
	loans, err := s.repo.List(ctx)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "listing loans: "+err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, loans)
}

func (s *Server) handleLoanByID(ctx *fasthttp.RequestCtx, id, method string) {
	if id == "" || strings.Contains(id, "/") {
		s.writeError(ctx, fasthttp.StatusNotFound, "no such route")
		return
	}

	switch method {
	case fasthttp.MethodGet:
		ln, err := s.repo.Get(ctx, id)
		if err == store.ErrNotFound {
			s.writeError(ctx, fasthttp.StatusNotFound, "loan not found")
			return
		}
		if err != nil {
			s.writeError(ctx, fasthttp.StatusInternalServerError, "reading loan: "+err.Error())
			return
		}
		s.writeJSON(ctx, fasthttp.StatusOK, ln)

	case fasthttp.MethodPut:
		var lc config.LoanConfig
		if err := json.Unmarshal(ctx.PostBody(), &lc); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		ln, warnings := config.ConvertLoan(lc)
		ln.ID = id

		// Reject records whose scheduled rules already collide with each
		// other; callers must fix the schedule before persisting.
		for i, payment := range ln.Payments {
			if payment.Type != loan.Scheduled {
				continue
			}
			if verdict := s.engine.ValidatePayment(&ln, payment, i); !verdict.Valid {
				s.writeJSON(ctx, fasthttp.StatusUnprocessableEntity, verdict)
				return
			}
		}

		if err := s.repo.Save(ctx, ln); err != nil {
			s.writeError(ctx, fasthttp.StatusInternalServerError, "saving loan: "+err.Error())
			return
		}
		s.logger.Info("saved loan",
			zap.String("id", id),
			zap.Int("payments", len(ln.Payments)),
		)
		s.writeJSON(ctx, fasthttp.StatusOK, timelineResponse{Rows: s.engine.BuildTimeline(&ln), Warnings: warnings})

	case fasthttp.MethodDelete:
		err := s.repo.Delete(ctx, id)
		if err == store.ErrNotFound {
			s.writeError(ctx, fasthttp.StatusNotFound, "loan not found")
			return
		}
		if err != nil {
			s.writeError(ctx, fasthttp.StatusInternalServerError, "deleting loan: "+err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)

	default:
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}
