package handler

import (
	"net/http"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/config"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler logs the single configured operator in. There is no
// registration: the shop has one bookkeeper, configured in config.yaml.
type AuthHandler struct {
	Cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.Cfg.PasswordHash == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "auth is not configured, API is open")
		return
	}

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if req.Username != h.Cfg.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.Cfg.PasswordHash), []byte(req.Password)) != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		return
	}

	ttl := time.Duration(h.Cfg.ExpireHours) * time.Hour
	token, err := util.GenerateToken(h.Cfg.JWTSecret, h.Cfg.Username, ttl)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sign token failed")
		return
	}

	util.Success(c, util.Response{
		"token":      token,
		"expires_in": int(ttl.Seconds()),
	})
}
