package repository

import (
	"github.com/lshigami/Quorum/internal/model"
	"gorm.io/gorm"
)

type ChoiceRepository interface {
	WithTx(tx *gorm.DB) ChoiceRepository
	Create(choice *model.Choice) error
	FindByID(id uint) (*model.Choice, error)
	FindByIDs(ids []uint) (map[uint]model.Choice, error)
	IncrementVotes(id uint) (int64, error)
	UpdateText(id uint, text string) error
	Delete(id uint) error
}

type choiceRepository struct {
	db *gorm.DB
}

func NewChoiceRepository(db *gorm.DB) ChoiceRepository {
	return &choiceRepository{db: db}
}

func (r *choiceRepository) WithTx(tx *gorm.DB) ChoiceRepository {
	return &choiceRepository{db: tx}
}

func (r *choiceRepository) Create(choice *model.Choice) error {
	return r.db.Create(choice).Error
}

func (r *choiceRepository) FindByID(id uint) (*model.Choice, error) {
	var choice model.Choice
	if err := r.db.First(&choice, id).Error; err != nil {
		return nil, err
	}
	return &choice, nil
}

func (r *choiceRepository) FindByIDs(ids []uint) (map[uint]model.Choice, error) {
	out := make(map[uint]model.Choice, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var choices []model.Choice
	if err := r.db.Where("id IN ?", ids).Find(&choices).Error; err != nil {
		return nil, err
	}
	for _, c := range choices {
		out[c.ID] = c
	}
	return out, nil
}

// IncrementVotes adds one vote in the database (votes = votes + 1), so
// concurrent voters never overwrite each other, and returns the new count.
func (r *choiceRepository) IncrementVotes(id uint) (int64, error) {
	res := r.db.Model(&model.Choice{}).Where("id = ?", id).UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var votes int64
	if err := r.db.Model(&model.Choice{}).Select("votes").Where("id = ?", id).Scan(&votes).Error; err != nil {
		return 0, err
	}
	return votes, nil
}

func (r *choiceRepository) UpdateText(id uint, text string) error {
	return r.db.Model(&model.Choice{}).Where("id = ?", id).Update("choice_text", text).Error
}

func (r *choiceRepository) Delete(id uint) error {
	return r.db.Delete(&model.Choice{}, id).Error
}
