package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient publishes dashboard events. Database writes already
// trigger Supabase Realtime on the subscribed tables; this wrapper exists
// for the explicit per-channel events the dashboard listens on.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; table changes reach
	// subscribers through Postgres changes. Kept as the single seam for an
	// explicit publish should the REST endpoint be wired in.
	return nil
}

func (r *RealtimeClient) PublishJobEvent(jobID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("job:%s", jobID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("order:%s", orderID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func DeliverySentPayload(jobID uuid.UUID, token string) map[string]interface{} {
	return map[string]interface{}{
		"job_id":         jobID.String(),
		"status":         "delivered",
		"delivery_token": token,
	}
}

func RevisionRequestedPayload(orderID uuid.UUID, remainingRounds, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"order_id":         orderID.String(),
		"status":           "revision_requested",
		"remaining_rounds": remainingRounds,
		"file_count":       fileCount,
	}
}

func CommentPostedPayload(fileID uuid.UUID, authorRole string) map[string]interface{} {
	return map[string]interface{}{
		"file_id":     fileID.String(),
		"event":       "comment_posted",
		"author_role": authorRole,
	}
}

func ReviewSubmittedPayload(jobID uuid.UUID, rating int) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"event":  "review_submitted",
		"rating": rating,
	}
}
