package api

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/jcallister/backdesk/pkg/domain"
)

// logActivity records one audit-trail entry for a mutating request. A
// failing sink never fails the request that triggered it.
func (h *Handler) logActivity(ctx context.Context, r *http.Request, eventType, description string) {
	if h.activity == nil {
		return
	}

	entry := domain.ActivityEntry{
		EventType:   eventType,
		Description: description,
		IPAddress:   clientIP(r),
	}
	if err := h.activity.Record(ctx, entry); err != nil {
		log.Printf("WARN: Failed to record activity '%s': %v", eventType, err)
	}
}

// clientIP strips the port from the remote address when one is present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
