package response

import "time"

type Session struct {
	Success   bool      `json:"success"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
	// Token goes into the cookie only.
	Token string `json:"-"`
}
