package http

import (
	"net/http"

	"retiresaveup/internal/core"
	"retiresaveup/internal/log"
)

// handleParse derives ceiling and remanent for raw expenses. Unlike the
// other endpoints it rejects the whole request when any expense is out of
// bounds.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var expenses []core.Expense
	if err := DecodeJSON(w, r, &expenses); err != nil {
		s.badRequest(w, r, log.OpParse, err)
		return
	}
	if err := core.CheckExpenses(expenses); err != nil {
		s.unprocessable(w, r, log.OpParse, err)
		return
	}

	NewJSONResponse().Body(core.Parse(expenses)).Write(w)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var in core.ValidationInput
	if err := DecodeJSON(w, r, &in); err != nil {
		s.badRequest(w, r, log.OpValidate, err)
		return
	}
	if err := core.CheckTransactions(in.Transactions); err != nil {
		s.unprocessable(w, r, log.OpValidate, err)
		return
	}

	NewJSONResponse().Body(core.Validate(in.Wage, in.Transactions)).Write(w)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var in core.FilterInput
	if err := DecodeJSON(w, r, &in); err != nil {
		s.badRequest(w, r, log.OpFilter, err)
		return
	}
	if err := core.CheckPeriods(in.Q, in.P, in.K, in.Transactions); err != nil {
		s.unprocessable(w, r, log.OpFilter, err)
		return
	}

	NewJSONResponse().Body(core.Filter(in)).Write(w)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rejected malformed request body",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
	BadRequestError(err.Error()).Write(w)
}

func (s *Server) unprocessable(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rejected invalid request fields",
		log.NewFields().WithOperation(op).WithError(err).ToSlice()...)
	UnprocessableEntityError(err).Write(w)
}
