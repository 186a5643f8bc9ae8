package model

// Choice.Votes only grows; increments go through an atomic SQL update.
type Choice struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"choice_text" gorm:"column:choice_text;size:200;not null"`
	Votes      int64  `json:"votes" gorm:"not null;default:0;check:votes >= 0"`
}
