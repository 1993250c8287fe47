package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/middleware"
)

// AdminSubject is the only token subject; there is a single admin.
const AdminSubject = "admin"

// AuthPublicModule mounts the public login endpoint (/auth/login)
func AuthPublicModule(jwtSecret, passwordHash string) api.Module {
	ctl := &AuthController{jwtSecret: jwtSecret, passwordHash: passwordHash}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.login)
	})
}

type AuthController struct {
	jwtSecret    string
	passwordHash string
}

// POST /api/admin/auth/login
func (a *AuthController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	if !middleware.CheckPassword(a.passwordHash, request.Password) {
		log.Warn().Str("client_ip", ctx.ClientIP()).Msg("admin login rejected")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(AdminSubject, a.jwtSecret)
	if err != nil {
		return nil, api.Internal("could not generate token")
	}

	return packets.TokenResponse{Token: token}, nil
}
