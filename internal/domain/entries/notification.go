package entries

// NotificationRequest is the value object handed across the async
// notification boundary. It carries only primitive fields so it can be
// serialized into a job row; the receiving worker re-resolves the range
// from the raw inputs instead of receiving a materialized entry list.
type NotificationRequest struct {
	Recipient  string `json:"recipient" validate:"required,email"`
	StartInput string `json:"start_date" validate:"omitempty"`
	EndInput   string `json:"end_date" validate:"omitempty"`
}
