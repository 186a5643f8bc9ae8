package model

import "time"

type Question struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SurveyID  uint      `json:"survey_id" gorm:"not null;index"`
	Text      string    `json:"question_text" gorm:"column:question_text;size:200;not null"`
	Position  int       `json:"position" gorm:"not null;default:0"` // order inside the survey
	Choices   []Choice  `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	Rating    *Rating   `json:"rating,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}
