package users

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	UserID    int64       `json:"user_id"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      enums.Role  `json:"role"`
	LabID     *int64      `json:"lab_id"`
	Lab       *LabSummary `json:"assigned_lab,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// LabSummary is the reduced laboratory shape embedded in user payloads.
type LabSummary struct {
	LabID    int64  `json:"lab_id"`
	LabName  string `json:"lab_name"`
	Location string `json:"location"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FullName     string
	Email        string
	PasswordHash string
	Role         enums.Role
	LabID        *int64
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		UserID:    u.UserID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		LabID:     u.LabID,
		CreatedAt: u.CreatedAt,
	}
	if u.AssignedLab != nil {
		dto.Lab = LabSummaryFromModel(u.AssignedLab)
	}
	return dto
}

func LabSummaryFromModel(lab *models.Laboratory) *LabSummary {
	if lab == nil {
		return nil
	}
	return &LabSummary{
		LabID:    lab.LabID,
		LabName:  lab.LabName,
		Location: lab.Location,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.RoleCustodian
	}
	return &models.User{
		FullName:     c.FullName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		LabID:        c.LabID,
	}
}
