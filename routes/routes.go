package routes

import (
	"github.com/btwitsvirendra/Airavat--Back-end/chatcore"
	"github.com/btwitsvirendra/Airavat--Back-end/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group and
// the websocket endpoint.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *ws.Hub) {
	svc := chatcore.NewService(db, hub)

	SetupAuthRoutes(r, db)
	SetupBusinessRoutes(r, db)
	SetupProductRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupChatRoutes(r, svc)
	SetupPaymentLinkRoutes(r, db)
	SetupInvoiceRoutes(r, db)
	SetupNotificationRoutes(r, db)

	r.GET("/ws", ws.Handle(hub, svc))
}
