package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	inventorySvc service.InventoryService
	validate     *validator.Validate
}

func NewEquipmentHandler(inventorySvc service.InventoryService) *EquipmentHandler {
	return &EquipmentHandler{inventorySvc: inventorySvc, validate: validator.New()}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func queryPage(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}

type equipmentRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	DailyPriceCents int32  `json:"daily_price_cents" validate:"required,gt=0"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	eq := &domain.Equipment{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DailyPriceCents: req.DailyPriceCents,
	}
	if err := h.inventorySvc.CreateEquipment(r.Context(), principalFrom(r), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	eq := &domain.Equipment{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DailyPriceCents: req.DailyPriceCents,
	}
	if err := h.inventorySvc.UpdateEquipment(r.Context(), principalFrom(r), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.inventorySvc.DeleteEquipment(r.Context(), principalFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.inventorySvc.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	list, total, err := h.inventorySvc.ListEquipment(r.Context(), r.URL.Query().Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: list, Total: total})
}

func (h *EquipmentHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	units, err := h.inventorySvc.ListUnits(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

type addUnitsRequest struct {
	Count int32 `json:"count" validate:"required,gt=0"`
}

func (h *EquipmentHandler) AddUnits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req addUnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	units, err := h.inventorySvc.AddUnits(r.Context(), principalFrom(r), id, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, units)
}

type unitStatusRequest struct {
	Status domain.UnitStatus `json:"status" validate:"required"`
}

func (h *EquipmentHandler) SetUnitStatus(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathID(r, "unitId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req unitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.inventorySvc.SetUnitStatus(r.Context(), principalFrom(r), unitID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) RemoveUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathID(r, "unitId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.inventorySvc.RemoveUnit(r.Context(), principalFrom(r), unitID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
