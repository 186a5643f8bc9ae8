package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ChoiceResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Text       string `json:"choice_text"`
	Votes      int64  `json:"votes"`
}

type RatingResponse struct {
	Counts  [5]int64 `json:"counts"`
	Total   int64    `json:"total"`
	Average float64  `json:"average"`
}

type QuestionResponse struct {
	ID       uint             `json:"id"`
	SurveyID uint             `json:"survey_id"`
	Text     string           `json:"question_text"`
	Position int              `json:"position"`
	Choices  []ChoiceResponse `json:"choices"`
	Rating   *RatingResponse  `json:"rating,omitempty"`
}

type SurveyResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	AccessCode  string             `json:"access_code"`
	IsActive    bool               `json:"is_active"`
	Color1      *string            `json:"color_1,omitempty"`
	Color2      *string            `json:"color_2,omitempty"`
	Color3      *string            `json:"color_3,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SurveySummaryDTO is used for the owner's survey list.
type SurveySummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	AccessCode    string    `json:"access_code"`
	IsActive      bool      `json:"is_active"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type VoteResultDTO struct {
	QuestionID   uint  `json:"question_id"`
	ChoiceID     uint  `json:"choice_id"`
	UpdatedVotes int64 `json:"updated_votes"`
}

type SubmitVotesResponse struct {
	SurveyID uint            `json:"survey_id"`
	Results  []VoteResultDTO `json:"results"`
}

type ChoiceVoteResponse struct {
	Status string `json:"status"`
	Votes  int64  `json:"votes"`
}

type RateResultDTO struct {
	QuestionID uint           `json:"question_id"`
	Value      int            `json:"value"`
	Rating     RatingResponse `json:"rating"`
}

type RateResponse struct {
	SurveyID uint            `json:"survey_id"`
	Results  []RateResultDTO `json:"results"`
}

type QuestionResultDTO struct {
	QuestionID uint             `json:"question_id"`
	Text       string           `json:"question_text"`
	TotalVotes int64            `json:"total_votes"`
	Choices    []ChoiceResponse `json:"choices"`
	Rating     RatingResponse   `json:"rating"`
}

type SurveyResultsDTO struct {
	SurveyID  uint                `json:"survey_id"`
	Title     string              `json:"title"`
	IsActive  bool                `json:"is_active"`
	Questions []QuestionResultDTO `json:"questions"`
}
