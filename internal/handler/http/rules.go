package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/nominahr/nomina-backend-go/internal/handler/http/response"
)

type RulesHandler interface {
	CreateRules(w http.ResponseWriter, r *http.Request)
	ResolveRules(w http.ResponseWriter, r *http.Request)
}

type rulesHandlerImpl struct {
	rulesService rules.Service
}

func NewRulesHandler(rulesService rules.Service) RulesHandler {
	return &rulesHandlerImpl{rulesService: rulesService}
}

func (h *rulesHandlerImpl) CreateRules(w http.ResponseWriter, r *http.Request) {
	var req rules.CreateRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request body")
		return
	}

	result, err := h.rulesService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll rules created", result)
}

func (h *rulesHandlerImpl) ResolveRules(w http.ResponseWriter, r *http.Request) {
	countryCode := r.URL.Query().Get("country")
	yearStr := r.URL.Query().Get("year")

	year, err := strconv.Atoi(yearStr)
	if countryCode == "" || err != nil {
		response.BadRequest(w, "BAD_REQUEST", "country and year query parameters are required")
		return
	}

	result, err := h.rulesService.Resolve(r.Context(), countryCode, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
