package response

type UserIDs struct {
	FromEnv     []string `json:"fromEnv"`
	FromWebhook []string `json:"fromWebhook"`
}

type LineUsers struct {
	Success bool    `json:"success"`
	UserIDs UserIDs `json:"userIds"`
	Message string  `json:"message,omitempty"`
}
