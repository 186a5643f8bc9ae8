package dto

import "encoding/json"

// RegisterRequest creates an owner account. Password is never echoed back.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChoiceInput is one option of a question inside a survey tree.
type ChoiceInput struct {
	ChoiceText string `json:"choice_text" binding:"required,max=200"`
}

// QuestionInput is one question of a survey tree, with its choices.
type QuestionInput struct {
	QuestionText string        `json:"question_text" binding:"required,max=200"`
	Choices      []ChoiceInput `json:"choices" binding:"omitempty,dive"`
}

// SurveyCreateRequest always produces a draft survey.
type SurveyCreateRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Color1      *string         `json:"color_1" binding:"omitempty,hexcolor"`
	Color2      *string         `json:"color_2" binding:"omitempty,hexcolor"`
	Color3      *string         `json:"color_3" binding:"omitempty,hexcolor"`
	Questions   []QuestionInput `json:"questions" binding:"omitempty,dive"`
}

// SurveyUpdateRequest is a partial update. A non-nil Questions replaces the
// whole question tree, including vote counters.
type SurveyUpdateRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
	Color1      *string          `json:"color_1" binding:"omitempty,hexcolor"`
	Color2      *string          `json:"color_2" binding:"omitempty,hexcolor"`
	Color3      *string          `json:"color_3" binding:"omitempty,hexcolor"`
	Questions   *[]QuestionInput `json:"questions" binding:"omitempty,dive"`
}

type QuestionCreateRequest struct {
	SurveyID     uint          `json:"survey" binding:"required"`
	QuestionText string        `json:"question_text" binding:"required,max=200"`
	Choices      []ChoiceInput `json:"choices" binding:"omitempty,dive"`
}

type QuestionUpdateRequest struct {
	QuestionText string `json:"question_text" binding:"required,max=200"`
}

type ChoiceCreateRequest struct {
	QuestionID uint   `json:"question" binding:"required"`
	ChoiceText string `json:"choice_text" binding:"required,max=200"`
}

type ChoiceUpdateRequest struct {
	ChoiceText string `json:"choice_text" binding:"required,max=200"`
}

// VoteAnswerDTO keeps both ids optional so that incomplete entries can be
// told apart from zero ids and dropped.
type VoteAnswerDTO struct {
	QuestionID *uint `json:"question_id"`
	ChoiceID   *uint `json:"choice_id"`
}

// SubmitVotesRequest keeps answers raw so that a single malformed entry does
// not fail binding of the whole batch.
type SubmitVotesRequest struct {
	Answers        []json.RawMessage `json:"answers" binding:"required"`
	RecaptchaToken string            `json:"recaptcha_token"`
}

// DecodeVoteAnswers decodes every entry that is a JSON object and skips the rest.
func DecodeVoteAnswers(raw []json.RawMessage) []VoteAnswerDTO {
	answers := make([]VoteAnswerDTO, 0, len(raw))
	for _, item := range raw {
		var a VoteAnswerDTO
		if err := json.Unmarshal(item, &a); err != nil {
			continue
		}
		answers = append(answers, a)
	}
	return answers
}

type RateAnswerDTO struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Value      int  `json:"value"`
}

type RateRequest struct {
	Answers []RateAnswerDTO `json:"answers" binding:"required,min=1,max=5,dive"`
}
