package routes

import (
	"github.com/btwitsvirendra/Airavat--Back-end/chatcore"
	chatControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/chat"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
)

// SetupChatRoutes registers the REST side of negotiation. Message sends are
// rate limited per client IP.
func SetupChatRoutes(r *gin.Engine, svc *chatcore.Service) {
	limiter := middleware.NewRateLimiter(5, 10)

	chat := r.Group("/chat")
	chat.Use(middleware.ValidateToken)
	{
		chat.POST("/conversations", chatControllers.GetOrCreateConversation(svc))
		chat.GET("/conversations", chatControllers.GetConversations(svc))
		chat.GET("/conversations/:id/messages", chatControllers.GetMessages(svc))
		chat.PUT("/conversations/:id/read", chatControllers.MarkConversationRead(svc))
		chat.POST("/messages", limiter.Limit(), chatControllers.SendMessage(svc))
		chat.DELETE("/messages/:id", chatControllers.DeleteMessage(svc))
		chat.POST("/orders/create", chatControllers.CreateOrderFromChat(svc))
		chat.POST("/quotations/create", chatControllers.CreateQuoteFromChat(svc))
	}
}
