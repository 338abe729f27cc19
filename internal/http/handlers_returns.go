package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"retiresaveup/internal/cache"
	"retiresaveup/internal/core"
	"retiresaveup/internal/log"
	"retiresaveup/internal/storage"
)

// handleReturns projects savings for the vehicle named in the path and
// records the calculation in the caller's history.
func (s *Server) handleReturns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	vehicle, err := core.ParseVehicle(mux.Vars(r)["vehicle"])
	if err != nil {
		NotFoundError(err.Error()).Write(w)
		return
	}
	userID, err := UserID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	var in core.ReturnsInput
	if err := DecodeJSON(w, r, &in); err != nil {
		s.badRequest(w, r, log.OpReturns, err)
		return
	}
	if err := core.CheckPeriods(in.Q, in.P, in.K, in.Transactions); err != nil {
		s.unprocessable(w, r, log.OpReturns, err)
		return
	}

	result, cacheHit := s.computeReturns(r, vehicle, in)
	s.structured.LogCalculation(ctx, userID, vehicle.String(), len(in.Transactions), cacheHit)

	rec, err := s.history.Record(ctx, userID, vehicle, in, result)
	if err != nil {
		s.structured.LogError(ctx, "Failed to record calculation", err, log.OpRecord,
			log.NewFields().WithCalculation(userID, vehicle.String(), len(in.Transactions)))
		InternalServerError("failed to record calculation").Write(w)
		return
	}

	logger.DebugContext(ctx, "Calculation stored", log.FieldRecordID, rec.ID)
	NewJSONResponse().Header("Location", s.apiPrefix+"/history/"+rec.ID).Body(result).Write(w)
}

// computeReturns answers from the cache when the same vehicle and payload
// were computed recently.
func (s *Server) computeReturns(r *http.Request, vehicle core.Vehicle, in core.ReturnsInput) (core.ReturnsResult, bool) {
	key, err := cache.ReturnsKey(vehicle, in)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Returns cache key unavailable", log.FieldError, err.Error())
		return core.ComputeReturns(in, vehicle), false
	}
	if res, ok := s.returnsCache.Get(key); ok {
		return res, true
	}
	res := core.ComputeReturns(in, vehicle)
	s.returnsCache.Set(key, res)
	return res, false
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := UserID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	limit, err := ParseLimit(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	recs, err := s.history.List(ctx, userID, limit)
	if err != nil {
		s.structured.LogError(ctx, "Failed to list calculation history", err, log.OpList,
			log.NewFields().WithCalculation(userID, "", 0))
		InternalServerError("failed to load history").Write(w)
		return
	}
	if recs == nil {
		recs = []core.CalculationRecord{}
	}
	NewJSONResponse().Body(recs).Write(w)
}

// handleGetHistory returns one record. Records of other users are reported
// as missing.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := UserID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	id := mux.Vars(r)["id"]
	rec, err := s.history.Get(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		NotFoundError("calculation not found").Write(w)
		return
	case err != nil:
		s.structured.LogError(ctx, "Failed to load calculation", err, log.OpList, log.NewFields().WithRecord(id))
		InternalServerError("failed to load calculation").Write(w)
		return
	case rec.UserID != userID:
		NotFoundError("calculation not found").Write(w)
		return
	}

	NewJSONResponse().Body(rec).Write(w)
}
