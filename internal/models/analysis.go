package models

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeExcerpt   string    `gorm:"type:text" json:"resume_excerpt"`
	JobExcerpt      string    `gorm:"type:text" json:"job_excerpt"`
	Industry        string    `gorm:"type:text" json:"industry"`
	ExperienceLevel string    `gorm:"type:text" json:"experience_level"`
	MatchScore      float64   `gorm:"type:decimal(5,2)" json:"match_score"`
	Report          string    `gorm:"type:jsonb" json:"-"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
