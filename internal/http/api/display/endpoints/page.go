package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api/display/packets"
)

// PageTemplate is the template name rendered at "/".
const PageTemplate = "display.html"

// PageModule mounts the HTML screen and the health check at the root.
func PageModule(d Display) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Raw(http.MethodGet, "/", func(ctx *gin.Context) {
			ctx.HTML(http.StatusOK, PageTemplate, d.View())
		})
		c.PUBLIC_GET("/healthz", func(ctx *gin.Context) (any, *api.APIError) {
			return packets.HealthResponse{Status: "ok", City: d.View().City}, nil
		})
	})
}
