package request

type AddUser struct {
	UserID string `json:"userId" validate:"required"`
}
