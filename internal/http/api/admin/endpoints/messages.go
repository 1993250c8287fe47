package endpoints

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api/admin/packets"
)

// Messages is the rotating message list of the display.
type Messages interface {
	Messages() []string
	SetMessages(messages []string)
}

// MessagesModule mounts the message endpoints (JWT required)
func MessagesModule(m Messages) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/messages", func(ctx *gin.Context, _ string) (any, *api.APIError) {
			return packets.MessagesResponse{Messages: m.Messages()}, nil
		})
		c.PUT("/messages", func(ctx *gin.Context, subject string) (any, *api.APIError) {
			var request packets.MessagesRequest
			if err := ctx.ShouldBindJSON(&request); err != nil {
				return nil, api.BadRequest(err.Error())
			}
			messages := lo.Compact(lo.Map(request.Messages, func(s string, _ int) string {
				return strings.TrimSpace(s)
			}))
			if len(messages) == 0 {
				return nil, api.BadRequest("at least one message is required")
			}

			m.SetMessages(messages)
			log.Info().Str("subject", subject).Int("count", len(messages)).Msg("display messages replaced")
			return packets.MessagesResponse{Messages: m.Messages()}, nil
		})
	})
}
