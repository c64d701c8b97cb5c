package ws

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/btwitsvirendra/Airavat--Back-end/chatcore"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handle upgrades the connection after verifying the same bearer token the
// REST layer accepts (query param or Authorization header). The connection
// auto-joins its business and user rooms; conversation rooms require an
// explicit, access-gated join_conversation event.
func Handle(hub *Hub, svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			tokenString = c.GetHeader("Authorization")
		}
		identity, err := middleware.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// The business context is client-asserted; only honor it when the
		// business belongs to the authenticated user.
		var businessID uint64
		if asserted := c.Query("business_id"); asserted != "" {
			id, err := strconv.ParseUint(asserted, 10, 64)
			if err == nil {
				var business models.Business
				if svc.DB.Select("id", "user_id").First(&business, "id = ?", id).Error == nil &&
					business.UserID == identity.UserID {
					businessID = id
				}
			}
			if businessID == 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			hub:        hub,
			conn:       conn,
			Send:       make(chan []byte, 32),
			UserID:     identity.UserID,
			BusinessID: businessID,
			rooms:      map[string]bool{chatcore.UserRoom(identity.UserID): true},
		}
		if businessID != 0 {
			client.rooms[chatcore.BusinessRoom(businessID)] = true
		}

		hub.register <- client
		go client.writePump()
		client.readPump(dispatcher(hub, svc))
	}
}

// dispatcher routes client events to the same chatcore operations the REST
// handlers use.
func dispatcher(hub *Hub, svc *chatcore.Service) func(*Client, Envelope) {
	return func(c *Client, envelope Envelope) {
		switch envelope.Event {
		case "join_conversation":
			conversationID, ok := conversationIDFrom(envelope.Data)
			if !ok {
				c.sendEvent("error", gin.H{"message": "conversation_id is required"})
				return
			}
			if _, err := svc.EnsureParticipant(conversationID, c.BusinessID); err != nil {
				c.sendEvent("error", gin.H{"message": err.Error()})
				return
			}
			hub.Join(c, chatcore.ConversationRoom(conversationID))
			c.sendEvent("joined_conversation", gin.H{"conversation_id": strconv.FormatUint(conversationID, 10)})

		case "leave_conversation":
			conversationID, ok := conversationIDFrom(envelope.Data)
			if !ok {
				return
			}
			hub.Leave(c, chatcore.ConversationRoom(conversationID))
			c.sendEvent("left_conversation", gin.H{"conversation_id": strconv.FormatUint(conversationID, 10)})

		case "send_message":
			var payload struct {
				ConversationID string          `json:"conversation_id"`
				MessageType    string          `json:"message_type"`
				Content        string          `json:"content"`
				Metadata       json.RawMessage `json:"metadata"`
			}
			if err := json.Unmarshal(envelope.Data, &payload); err != nil {
				c.sendEvent("error", gin.H{"message": "malformed send_message payload"})
				return
			}
			conversationID, err := strconv.ParseUint(payload.ConversationID, 10, 64)
			if err != nil || c.BusinessID == 0 {
				c.sendEvent("error", gin.H{"message": "conversation_id and business context are required"})
				return
			}
			_, err = svc.SendMessage(chatcore.SendMessageCmd{
				ConversationID:   conversationID,
				SenderBusinessID: c.BusinessID,
				MessageType:      payload.MessageType,
				Content:          payload.Content,
				Metadata:         payload.Metadata,
			})
			if err != nil {
				c.sendEvent("error", gin.H{"message": err.Error()})
				return
			}
			hub.EmitExcept(chatcore.ConversationRoom(conversationID), "typing_stop",
				gin.H{"business_id": strconv.FormatUint(c.BusinessID, 10)}, c)

		case "typing_start", "typing_stop":
			conversationID, ok := conversationIDFrom(envelope.Data)
			if !ok {
				return
			}
			// Ephemeral; never persisted.
			hub.EmitExcept(chatcore.ConversationRoom(conversationID), envelope.Event,
				gin.H{"business_id": strconv.FormatUint(c.BusinessID, 10)}, c)

		case "mark_read":
			conversationID, ok := conversationIDFrom(envelope.Data)
			if !ok || c.BusinessID == 0 {
				return
			}
			if err := svc.MarkRead(conversationID, c.BusinessID); err != nil {
				c.sendEvent("error", gin.H{"message": err.Error()})
			}

		default:
			c.sendEvent("error", gin.H{"message": "unknown event: " + envelope.Event})
		}
	}
}

func conversationIDFrom(data json.RawMessage) (uint64, bool) {
	var payload struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(payload.ConversationID, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
