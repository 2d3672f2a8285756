package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

// Chat history limits
const (
	MaxChatMessages      = 40
	MaxChatMessageLength = 4000
)

// ChatRequest is the accumulated conversation of one chat widget session
type ChatRequest struct {
	Messages []services.ChatMessage `json:"messages" binding:"required"`
}

// Validate checks roles, content and size of the history
func (r *ChatRequest) Validate() map[string]string {
	fields := make(map[string]string)
	switch {
	case len(r.Messages) == 0:
		fields["messages"] = "at least one message is required"
	case len(r.Messages) > MaxChatMessages:
		fields["messages"] = "conversation is too long, please start a new chat"
	case r.Messages[len(r.Messages)-1].Role != services.ChatRoleUser:
		fields["messages"] = "the last message must come from the user"
	}
	for _, m := range r.Messages {
		if m.Role != services.ChatRoleUser && m.Role != services.ChatRoleAssistant {
			fields["role"] = "role must be user or assistant"
		}
		if trimmed(m.Content) == "" {
			fields["content"] = "messages must not be empty"
		} else if len(m.Content) > MaxChatMessageLength {
			fields["content"] = "message is too long"
		}
	}
	return fields
}

// Chat handles POST /api/v1/chat - relays assistant tokens as server-sent events.
// Gateway 429 and 402 answer with fixed fallback text instead of a stream.
func Chat(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidation(c, "Invalid chat history", fields)
		return
	}

	cfg := config.GetConfig()
	streamer := services.GetChatStreamer()
	if streamer == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "ASSISTANT_UNAVAILABLE", services.FallbackMessage(cfg, services.ErrGatewayNotConfigured))
		return
	}

	stream, err := streamer.OpenStream(c.Request.Context(), req.Messages)
	if err != nil {
		log := utils.Logger.WithError(err).WithField("user_id", userID)
		switch {
		case errors.Is(err, services.ErrGatewayRateLimited):
			log.Warn("Chat gateway rate limited")
			utils.RespondError(c, http.StatusTooManyRequests, "ASSISTANT_BUSY", services.FallbackMessage(cfg, err))
		case errors.Is(err, services.ErrGatewayPaymentRequired):
			log.Error("Chat gateway out of credits")
			utils.RespondError(c, http.StatusPaymentRequired, "ASSISTANT_UNAVAILABLE", services.FallbackMessage(cfg, err))
		case errors.Is(err, services.ErrGatewayNotConfigured):
			utils.RespondError(c, http.StatusServiceUnavailable, "ASSISTANT_UNAVAILABLE", services.FallbackMessage(cfg, err))
		default:
			log.Error("Chat gateway failed")
			utils.RespondError(c, http.StatusBadGateway, "UPSTREAM_ERROR", services.FallbackMessage(cfg, err))
		}
		return
	}
	defer stream.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		token, err := stream.Next()
		if err == io.EOF {
			c.SSEvent("done", gin.H{})
			return false
		}
		if err != nil {
			utils.Logger.WithError(err).WithField("user_id", userID).Warn("Chat stream interrupted")
			c.SSEvent("error", gin.H{"message": services.FallbackMessage(cfg, err)})
			return false
		}
		c.SSEvent("token", gin.H{"content": token})
		return true
	})
}
