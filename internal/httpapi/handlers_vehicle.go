package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VehicleRegistry/VehicleRegistry/internal/vehicle"
	"gorm.io/gorm"
)

func (a *API) createVehicle(w http.ResponseWriter, r *http.Request) {
	var dto vehicle.DTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if msgs := dto.Validate(); len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	v, err := a.vehicles.Create(r.Context(), dto)
	if err != nil {
		a.serverFault(w, "create vehicle", err)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

func (a *API) listVehicles(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("nome"))

	vehicles, err := a.vehicles.List(r.Context(), pageParam(r), name)
	if err != nil {
		a.serverFault(w, "list vehicles", err)
		return
	}
	if vehicles == nil {
		vehicles = []vehicle.Vehicle{}
	}

	writeJSON(w, http.StatusOK, vehicles)
}

func (a *API) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := a.vehicles.FindByID(r.Context(), id)
	if err == gorm.ErrRecordNotFound {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		a.serverFault(w, "get vehicle", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func (a *API) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	// 先确认存在，再做校验：不存在优先返回 404
	v, err := a.vehicles.FindByID(r.Context(), id)
	if err == gorm.ErrRecordNotFound {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		a.serverFault(w, "get vehicle for update", err)
		return
	}

	var dto vehicle.DTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if msgs := dto.Validate(); len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	if err := a.vehicles.Update(r.Context(), v, dto); err != nil {
		a.serverFault(w, "update vehicle", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func (a *API) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := a.vehicles.FindByID(r.Context(), id)
	if err == gorm.ErrRecordNotFound {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		a.serverFault(w, "get vehicle for delete", err)
		return
	}

	if err := a.vehicles.Delete(r.Context(), v); err != nil {
		a.serverFault(w, "delete vehicle", err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
