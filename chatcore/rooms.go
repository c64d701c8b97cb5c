package chatcore

import "fmt"

// EventSink receives the push-channel side of every chat mutation. The ws hub
// implements it; tests plug in a recorder.
type EventSink interface {
	Emit(room, event string, data any)
}

// Room naming shared by the service and the socket layer.
func ConversationRoom(id uint64) string { return fmt.Sprintf("conversation:%d", id) }
func BusinessRoom(id uint64) string     { return fmt.Sprintf("business:%d", id) }
func UserRoom(id uint64) string         { return fmt.Sprintf("user:%d", id) }
