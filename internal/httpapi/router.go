package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/VehicleRegistry/VehicleRegistry/internal/admin"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/config"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/logger"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/server"
	"github.com/VehicleRegistry/VehicleRegistry/internal/vehicle"
	"github.com/go-chi/chi/v5"
)

// API 聚合 HTTP 层依赖：领域服务 + 鉴权配置。
type API struct {
	vehicles *vehicle.Service
	admins   *admin.Service
	authCfg  config.AuthConfig
	log      logger.Logger
}

func New(vehicles *vehicle.Service, admins *admin.Service, authCfg config.AuthConfig, log logger.Logger) *API {
	return &API{
		vehicles: vehicles,
		admins:   admins,
		authCfg:  authCfg,
		log:      log,
	}
}

// Router 组装路由。每个受保护分组声明自己的角色集合。
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", a.home)
	r.Get("/healthz", a.healthz)
	r.Post("/administradores/login", a.login)

	r.Group(func(r chi.Router) {
		r.Use(server.JWTAuth(a.authCfg, a.log))

		// 仅 Adm
		r.Group(func(r chi.Router) {
			r.Use(server.RequireRoles(string(admin.RoleAdmin)))
			r.Post("/administradores", a.createAdministrator)
			r.Get("/administradores", a.listAdministrators)
			r.Get("/administradores/{id}", a.getAdministrator)
			r.Put("/veiculos/{id}", a.updateVehicle)
			r.Delete("/veiculos/{id}", a.deleteVehicle)
		})

		// Adm 或 Editor
		r.Group(func(r chi.Router) {
			r.Use(server.RequireRoles(string(admin.RoleAdmin), string(admin.RoleEditor)))
			r.Post("/veiculos", a.createVehicle)
			r.Get("/veiculos", a.listVehicles)
			r.Get("/veiculos/{id}", a.getVehicle)
		})
	})

	return r
}

func (a *API) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "vehicle registry API",
		"health":  "/healthz",
	})
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// pageParam 解析 pagina 查询参数。缺省返回 nil（代表全量）。
func pageParam(r *http.Request) *int {
	raw := strings.TrimSpace(r.URL.Query().Get("pagina"))
	if raw == "" {
		return nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		p = 1
	}
	return &p
}

// idParam 解析路径中的 {id}。
func idParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
