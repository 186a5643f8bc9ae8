package repository

import (
	"database/sql"

	"github.com/lshigami/Quorum/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindBySurveyID(surveyID uint) ([]model.Question, error)
	NextPosition(surveyID uint) (int, error)
	UpdateText(id uint, text string) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindBySurveyID returns the survey's questions in authoritative order.
func (r *questionRepository) FindBySurveyID(surveyID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("survey_id = ?", surveyID).Order("position ASC, id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) NextPosition(surveyID uint) (int, error) {
	var maxPos sql.NullInt64
	err := r.db.Model(&model.Question{}).
		Select("MAX(position)").
		Where("survey_id = ?", surveyID).
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func (r *questionRepository) UpdateText(id uint, text string) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Update("question_text", text).Error
}

func (r *questionRepository) Delete(id uint) error {
	return deleteQuestionTree(r.db, "id", id)
}
