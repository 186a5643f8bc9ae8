package model

import (
	"fmt"
	"time"
)

const (
	MinStars = 1
	MaxStars = 5
)

// Rating aggregates 1-5 star votes for a single question.
type Rating struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	Stars1     int64     `json:"stars_1" gorm:"column:stars_1;not null;default:0"`
	Stars2     int64     `json:"stars_2" gorm:"column:stars_2;not null;default:0"`
	Stars3     int64     `json:"stars_3" gorm:"column:stars_3;not null;default:0"`
	Stars4     int64     `json:"stars_4" gorm:"column:stars_4;not null;default:0"`
	Stars5     int64     `json:"stars_5" gorm:"column:stars_5;not null;default:0"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ValidStars(value int) bool {
	return value >= MinStars && value <= MaxStars
}

// StarsColumn returns the counter column that stores votes for value.
func StarsColumn(value int) (string, error) {
	if !ValidStars(value) {
		return "", fmt.Errorf("rating value %d is outside %d-%d", value, MinStars, MaxStars)
	}
	return fmt.Sprintf("stars_%d", value), nil
}

// AddVote bumps the in-memory counter for value.
func (r *Rating) AddVote(value int) error {
	switch value {
	case 1:
		r.Stars1++
	case 2:
		r.Stars2++
	case 3:
		r.Stars3++
	case 4:
		r.Stars4++
	case 5:
		r.Stars5++
	default:
		return fmt.Errorf("rating value %d is outside %d-%d", value, MinStars, MaxStars)
	}
	return nil
}

// Counts returns the five counters, index 0 holding one-star votes.
func (r Rating) Counts() [5]int64 {
	return [5]int64{r.Stars1, r.Stars2, r.Stars3, r.Stars4, r.Stars5}
}

func (r Rating) Total() int64 {
	var total int64
	for _, c := range r.Counts() {
		total += c
	}
	return total
}

// Average is 0 when nothing has been rated yet.
func (r Rating) Average() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	var sum int64
	for i, c := range r.Counts() {
		sum += int64(i+1) * c
	}
	return float64(sum) / float64(total)
}
