package audit

type EventResponse struct {
	ID         string                 `json:"id"`
	RunID      string                 `json:"run_id"`
	Type       string                 `json:"event_type"`
	OccurredAt string                 `json:"occurred_at"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
}
