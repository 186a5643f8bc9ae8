package repository

import (
	"github.com/lshigami/Quorum/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SurveyRepository interface {
	WithTx(tx *gorm.DB) SurveyRepository
	Create(survey *model.Survey) error
	FindByID(id uint) (*model.Survey, error)
	FindByIDForOwner(id, ownerID uint) (*model.Survey, error)
	FindByIDWithTree(id uint) (*model.Survey, error)
	FindActiveByAccessCode(code string) (*model.Survey, error)
	FindAllByOwnerWithQuestionCount(ownerID uint) ([]SurveyWithCount, error)
	LockByID(id uint) (*model.Survey, error)
	UpdateFields(survey *model.Survey, fields map[string]interface{}) error
	ReplaceQuestions(surveyID uint, questions []model.Question) error
	Delete(id uint) error
}

type SurveyWithCount struct {
	model.Survey
	QuestionCount int
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) WithTx(tx *gorm.DB) SurveyRepository {
	return &surveyRepository{db: tx}
}

func (r *surveyRepository) Create(survey *model.Survey) error {
	// Nested Questions and their Choices are inserted by GORM's association save.
	return r.db.Create(survey).Error
}

func (r *surveyRepository) FindByID(id uint) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByIDForOwner(id, ownerID uint) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.Where("owner_id = ?", ownerID).First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

// withTree preloads questions in survey order with their choices and rating.
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC, questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		Preload("Questions.Rating")
}

func (r *surveyRepository) FindByIDWithTree(id uint) (*model.Survey, error) {
	var survey model.Survey
	if err := withTree(r.db).First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindActiveByAccessCode(code string) (*model.Survey, error) {
	var survey model.Survey
	err := withTree(r.db).
		Where("access_code = ? AND is_active = ?", code, true).
		First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindAllByOwnerWithQuestionCount(ownerID uint) ([]SurveyWithCount, error) {
	var results []SurveyWithCount
	err := r.db.Model(&model.Survey{}).
		Select("surveys.*, (SELECT COUNT(*) FROM questions WHERE questions.survey_id = surveys.id) as question_count").
		Where("surveys.owner_id = ?", ownerID).
		Order("surveys.created_at DESC, surveys.id DESC").
		Scan(&results).Error
	return results, err
}

// LockByID takes a row lock on the survey for the rest of the transaction.
// Vote batches and tree replacement both go through it, so they serialize
// per survey.
func (r *surveyRepository) LockByID(id uint) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) UpdateFields(survey *model.Survey, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(survey).Updates(fields).Error
}

// ReplaceQuestions deletes the current question tree and inserts questions as
// a new generation with fresh ids. Must run inside a transaction.
func (r *surveyRepository) ReplaceQuestions(surveyID uint, questions []model.Question) error {
	if err := deleteQuestionTree(r.db, "survey_id", surveyID); err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].ID = 0
		questions[i].SurveyID = surveyID
		for j := range questions[i].Choices {
			questions[i].Choices[j].ID = 0
			questions[i].Choices[j].Votes = 0
		}
	}
	return r.db.Create(&questions).Error
}

func (r *surveyRepository) Delete(id uint) error {
	if err := deleteQuestionTree(r.db, "survey_id", id); err != nil {
		return err
	}
	return r.db.Delete(&model.Survey{}, id).Error
}

// deleteQuestionTree removes the questions matching column = value together
// with their choices and ratings. Child rows are deleted explicitly so the
// cascade does not depend on the driver enforcing foreign keys.
func deleteQuestionTree(db *gorm.DB, column string, value uint) error {
	questionIDs := func() *gorm.DB {
		return db.Model(&model.Question{}).Select("id").Where(column+" = ?", value)
	}
	if err := db.Where("question_id IN (?)", questionIDs()).Delete(&model.Choice{}).Error; err != nil {
		return err
	}
	if err := db.Where("question_id IN (?)", questionIDs()).Delete(&model.Rating{}).Error; err != nil {
		return err
	}
	return db.Where(column+" = ?", value).Delete(&model.Question{}).Error
}
