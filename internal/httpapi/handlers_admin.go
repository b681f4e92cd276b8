package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/VehicleRegistry/VehicleRegistry/internal/admin"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/auth"
	"gorm.io/gorm"
)

// administratorView 管理员出参（不含密码材料）。
type administratorView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// loggedView 登录成功出参。
type loggedView struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func toAdministratorView(a *admin.Administrator) administratorView {
	return administratorView{ID: a.ID, Email: a.Email, Role: a.Role}
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	adm, err := a.admins.Login(r.Context(), req.Email, req.Password)
	if err == admin.ErrInvalidCredentials {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		a.serverFault(w, "login", err)
		return
	}

	ttl := time.Duration(a.authCfg.TTLHours) * time.Hour
	token, exp, err := auth.GenerateAccessToken(a.authCfg, adm.Email, []string{adm.Role}, ttl)
	if err != nil {
		a.serverFault(w, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, loggedView{
		Email:     adm.Email,
		Role:      adm.Role,
		Token:     token,
		ExpiresAt: exp.Unix(),
	})
}

func (a *API) createAdministrator(w http.ResponseWriter, r *http.Request) {
	var dto admin.DTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if msgs := dto.Validate(); len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	adm, err := a.admins.Create(r.Context(), dto)
	if err != nil {
		a.serverFault(w, "create administrator", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAdministratorView(adm))
}

func (a *API) listAdministrators(w http.ResponseWriter, r *http.Request) {
	admins, err := a.admins.List(r.Context(), pageParam(r))
	if err != nil {
		a.serverFault(w, "list administrators", err)
		return
	}

	views := make([]administratorView, 0, len(admins))
	for i := range admins {
		views = append(views, toAdministratorView(&admins[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) getAdministrator(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	adm, err := a.admins.FindByID(r.Context(), id)
	if err == gorm.ErrRecordNotFound {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		a.serverFault(w, "get administrator", err)
		return
	}

	writeJSON(w, http.StatusOK, toAdministratorView(adm))
}

// serverFault 未分类的存储/内部错误：记日志，对外只回 500。
func (a *API) serverFault(w http.ResponseWriter, op string, err error) {
	if a.log != nil {
		a.log.Errorf("%s: %v", op, err)
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
