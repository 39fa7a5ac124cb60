package dto

type CreateBookingRequest struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	TemplateID string `json:"template_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

type AddClassRequest struct {
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ClassType   string `json:"class_type"`
	Instructor  string `json:"instructor"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}
