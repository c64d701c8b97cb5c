package chatcore

import "errors"

// Sentinel errors; transport adapters translate these to HTTP statuses or
// socket error events.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrNotParticipant       = errors.New("business is not part of this conversation")
	ErrSelfConversation     = errors.New("buyer and seller business must differ")
	ErrNotBuyer             = errors.New("only the buyer can create an order from this conversation")
	ErrNotSeller            = errors.New("only the seller can act on this conversation")
	ErrNotAuthor            = errors.New("only the author can delete a message")
	ErrProductNotSellers    = errors.New("product does not belong to the seller")
	ErrMissingFields        = errors.New("missing required fields")
)
