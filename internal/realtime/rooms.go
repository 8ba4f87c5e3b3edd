package realtime

// Room names used by the portfolio backend.
const (
	// RoomPublic carries events any visitor may observe, such as live view counts.
	RoomPublic = "public"
	// RoomAdmin carries dashboard events: new contact messages, comments, analytics.
	RoomAdmin = "admin"
)

// Event names broadcast over the hub.
const (
	EventContactReceived = "contact:received"
	EventContactUpdated  = "contact:updated"
	EventCommentPosted   = "comment:posted"
	EventPageView        = "analytics:page_view"
	EventVisitorCount    = "analytics:visitors"
)
