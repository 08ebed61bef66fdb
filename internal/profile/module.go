package profile

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

const (
	clientIDHeader  = "X-Client-ID"
	defaultClientID = "default"
)

// UpdateProfileRequest is the PUT body.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

// Module is the profile bounded context module implementing http.Module.
// It is only mounted when Redis is configured.
type Module struct {
	store *Store
	val   *validator.Validator
}

// NewModule creates the profile module on the given Redis client.
func NewModule(rdb *redis.Client, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{store: NewStore(rdb, log), val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "profile"
}

// RegisterRoutes mounts profile routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/profile")
	group.GET("", m.get)
	group.PUT("", m.put)
}

func (m *Module) get(c *gin.Context) {
	httpkit.OK(c, m.store.Load(c.Request.Context(), clientID(c)))
}

func (m *Module) put(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	p := Profile{Name: req.Name, Email: req.Email}
	if err := m.store.Save(c.Request.Context(), clientID(c), p); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, p)
}

func clientID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(clientIDHeader))
	if id == "" {
		return defaultClientID
	}
	return id
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
