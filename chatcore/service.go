// Package chatcore implements the negotiation operations once, transport
// free; the HTTP handlers and the socket dispatcher are thin adapters over
// this service so both entry points stay behaviorally identical.
package chatcore

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB     *gorm.DB
	Events EventSink
}

func NewService(db *gorm.DB, events EventSink) *Service {
	return &Service{DB: db, Events: events}
}

func (s *Service) emit(room, event string, data any) {
	if s.Events != nil {
		s.Events.Emit(room, event, data)
	}
}

// ConversationCmd carries a get-or-create request. CallerBusinessID is the
// client-asserted acting business and must be one of the two parties.
type ConversationCmd struct {
	CallerBusinessID uint64
	BuyerBusinessID  uint64
	SellerBusinessID uint64
	ProductID        *uint64
	InquiryID        *uint64
	OrderID          *uint64
}

// GetOrCreateConversation looks up the active conversation for the
// (buyer, seller, product) key and creates it when absent. The insert runs
// with ON CONFLICT DO NOTHING against the conversation unique index, so two
// racing first-contact requests converge on one row.
func (s *Service) GetOrCreateConversation(cmd ConversationCmd) (*models.Conversation, error) {
	if cmd.BuyerBusinessID == 0 || cmd.SellerBusinessID == 0 {
		return nil, ErrMissingFields
	}
	if cmd.BuyerBusinessID == cmd.SellerBusinessID {
		return nil, ErrSelfConversation
	}
	if cmd.CallerBusinessID != cmd.BuyerBusinessID && cmd.CallerBusinessID != cmd.SellerBusinessID {
		return nil, ErrNotParticipant
	}

	existing, err := s.findActiveConversation(cmd)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation := models.Conversation{
		BuyerBusinessID:  cmd.BuyerBusinessID,
		SellerBusinessID: cmd.SellerBusinessID,
		ProductID:        cmd.ProductID,
		InquiryID:        cmd.InquiryID,
		OrderID:          cmd.OrderID,
		IsActive:         true,
	}
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conversation)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race; the winning row is ours to return.
		return s.findActiveConversation(cmd)
	}
	return s.loadConversation(conversation.ID)
}

func (s *Service) findActiveConversation(cmd ConversationCmd) (*models.Conversation, error) {
	query := s.DB.
		Preload("BuyerBusiness").
		Preload("SellerBusiness").
		Preload("Product").
		Where("buyer_business_id = ? AND seller_business_id = ? AND is_active = ?",
			cmd.BuyerBusinessID, cmd.SellerBusinessID, true)
	if cmd.ProductID != nil {
		query = query.Where("product_id = ?", *cmd.ProductID)
	} else {
		query = query.Where("product_id IS NULL")
	}

	var conversation models.Conversation
	if err := query.First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *Service) loadConversation(id uint64) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.DB.
		Preload("BuyerBusiness").
		Preload("SellerBusiness").
		Preload("Product").
		First(&conversation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Conversations lists a business's active conversations, most recently
// touched first.
func (s *Service) Conversations(businessID uint64) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.DB.
		Preload("BuyerBusiness").
		Preload("SellerBusiness").
		Preload("Product").
		Where("(buyer_business_id = ? OR seller_business_id = ?) AND is_active = ?",
			businessID, businessID, true).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	return conversations, err
}

// EnsureParticipant loads the conversation and verifies the business is one
// of its two parties.
func (s *Service) EnsureParticipant(conversationID, businessID uint64) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.DB.First(&conversation, "id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	if conversation.BuyerBusinessID != businessID && conversation.SellerBusinessID != businessID {
		return nil, ErrNotParticipant
	}
	return &conversation, nil
}

// Messages returns one page of a conversation's history, oldest first. As a
// side effect every message authored by the counter-party is marked read.
func (s *Service) Messages(conversationID, businessID uint64, page, limit int) ([]models.ChatMessage, error) {
	if _, err := s.EnsureParticipant(conversationID, businessID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	// Fetched newest-first so the page window anchors at the latest message.
	var messages []models.ChatMessage
	err := s.DB.
		Preload("SenderBusiness").
		Where("conversation_id = ? AND is_deleted = ?", conversationID, false).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	if err := s.markRead(conversationID, businessID); err != nil {
		return nil, err
	}

	// Reverse to chronological order for the client.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

type SendMessageCmd struct {
	ConversationID   uint64
	SenderBusinessID uint64
	MessageType      string
	Content          string
	Metadata         json.RawMessage
}

// SendMessage persists a message, bumps the conversation, writes the
// counter-party notification, and mirrors everything to the push channel.
func (s *Service) SendMessage(cmd SendMessageCmd) (*models.ChatMessage, error) {
	conversation, err := s.EnsureParticipant(cmd.ConversationID, cmd.SenderBusinessID)
	if err != nil {
		return nil, err
	}

	if cmd.MessageType == "" {
		cmd.MessageType = models.MessageTypeText
	}
	message := models.ChatMessage{
		ConversationID:   cmd.ConversationID,
		SenderBusinessID: cmd.SenderBusinessID,
		MessageType:      cmd.MessageType,
		Content:          cmd.Content,
		Metadata:         []byte(cmd.Metadata),
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.DB.Model(conversation).Update("last_message_at", now).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Preload("SenderBusiness").First(&message, message.ID).Error; err != nil {
		return nil, err
	}

	recipientBusinessID := conversation.BuyerBusinessID
	if cmd.SenderBusinessID == conversation.BuyerBusinessID {
		recipientBusinessID = conversation.SellerBusinessID
	}

	body := cmd.Content
	if body == "" {
		body = "You received a new message"
	}
	notification, err := s.notify(recipientBusinessID, models.NotificationTypeMessage,
		"New Message", body, "/chat/"+strconv.FormatUint(cmd.ConversationID, 10),
		map[string]string{
			"conversation_id":    strconv.FormatUint(cmd.ConversationID, 10),
			"sender_business_id": strconv.FormatUint(cmd.SenderBusinessID, 10),
		})
	if err != nil {
		return nil, err
	}

	s.emit(ConversationRoom(cmd.ConversationID), "new_message", message)
	if notification != nil {
		s.emit(BusinessRoom(recipientBusinessID), "new_notification", notification)
	}
	return &message, nil
}

// MarkRead flips every unread counter-party message in the conversation and
// pushes a read receipt to the conversation room.
func (s *Service) MarkRead(conversationID, businessID uint64) error {
	if _, err := s.EnsureParticipant(conversationID, businessID); err != nil {
		return err
	}
	if err := s.markRead(conversationID, businessID); err != nil {
		return err
	}
	s.emit(ConversationRoom(conversationID), "messages_read", map[string]string{
		"conversation_id": strconv.FormatUint(conversationID, 10),
		"business_id":     strconv.FormatUint(businessID, 10),
	})
	return nil
}

func (s *Service) markRead(conversationID, businessID uint64) error {
	now := time.Now()
	return s.DB.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND sender_business_id <> ? AND is_read = ?",
			conversationID, businessID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// DeleteMessage soft-deletes; only the author may delete and content is never
// edited.
func (s *Service) DeleteMessage(messageID, businessID uint64) error {
	var message models.ChatMessage
	err := s.DB.First(&message, "id = ?", messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMessageNotFound
	}
	if err != nil {
		return err
	}
	if message.SenderBusinessID != businessID {
		return ErrNotAuthor
	}
	return s.DB.Model(&message).Update("is_deleted", true).Error
}

// notify writes a notification row for the owning user of the business.
// Best effort delivery happens via the push channel; the row itself is the
// durable copy.
func (s *Service) notify(businessID uint64, typ, title, body, link string, metadata map[string]string) (*models.Notification, error) {
	var business models.Business
	err := s.DB.Select("id", "user_id").First(&business, "id = ?", businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(metadata)
	notification := models.Notification{
		UserID:     business.UserID,
		BusinessID: &business.ID,
		Type:       typ,
		Title:      title,
		Message:    body,
		Link:       link,
		Metadata:   payload,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}
