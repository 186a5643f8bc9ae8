package model

import "time"

// Survey is owned by exactly one user. AccessCode is written once on create
// and never updated afterwards.
type Survey struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	AccessCode  string     `json:"access_code" gorm:"<-:create;size:36;not null;uniqueIndex"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:false"`
	Color1      *string    `json:"color_1,omitempty" gorm:"size:7"`
	Color2      *string    `json:"color_2,omitempty" gorm:"size:7"`
	Color3      *string    `json:"color_3,omitempty" gorm:"size:7"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
