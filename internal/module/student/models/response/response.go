package response

import "booking-portal/internal/module/student/models/entity"

type Students struct {
	Success  bool             `json:"success"`
	Students []entity.Student `json:"students"`
}

type Student struct {
	Success bool           `json:"success"`
	Student entity.Student `json:"student"`
	Message string         `json:"message,omitempty"`
}

type EmailQueued struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}
