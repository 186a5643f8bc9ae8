package repository

import (
	"github.com/lshigami/Quorum/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	WithTx(tx *gorm.DB) RatingRepository
	AddVote(questionID uint, value int) (*model.Rating, error)
	FindByQuestionID(questionID uint) (*model.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) WithTx(tx *gorm.DB) RatingRepository {
	return &ratingRepository{db: tx}
}

// AddVote creates the question's rating row on first use and atomically bumps
// the counter for value.
func (r *ratingRepository) AddVote(questionID uint, value int) (*model.Rating, error) {
	column, err := model.StarsColumn(value)
	if err != nil {
		return nil, err
	}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}},
		DoNothing: true,
	}).Create(&model.Rating{QuestionID: questionID}).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&model.Rating{}).
		Where("question_id = ?", questionID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	if err != nil {
		return nil, err
	}
	return r.FindByQuestionID(questionID)
}

func (r *ratingRepository) FindByQuestionID(questionID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.Where("question_id = ?", questionID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}
