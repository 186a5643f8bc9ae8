package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/rs/zerolog/log"
)

func toRatingResponse(r *model.Rating) dto.RatingResponse {
	if r == nil {
		return dto.RatingResponse{}
	}
	return dto.RatingResponse{Counts: r.Counts(), Total: r.Total(), Average: r.Average()}
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		log.Error().Err(err).Uint("questionID", q.ID).Msg("Failed to copy question model to DTO")
	}
	resp.Choices = make([]dto.ChoiceResponse, len(q.Choices))
	for i := range q.Choices {
		if err := copier.Copy(&resp.Choices[i], &q.Choices[i]); err != nil {
			log.Error().Err(err).Uint("choiceID", q.Choices[i].ID).Msg("Failed to copy choice model to DTO")
		}
	}
	if q.Rating != nil {
		rating := toRatingResponse(q.Rating)
		resp.Rating = &rating
	} else {
		resp.Rating = nil
	}
	return resp
}

func toSurveyResponse(s *model.Survey) *dto.SurveyResponse {
	var resp dto.SurveyResponse
	if err := copier.Copy(&resp, s); err != nil {
		log.Error().Err(err).Uint("surveyID", s.ID).Msg("Failed to copy survey model to DTO")
	}
	resp.Questions = make([]dto.QuestionResponse, len(s.Questions))
	for i := range s.Questions {
		resp.Questions[i] = toQuestionResponse(&s.Questions[i])
	}
	return &resp
}

func toQuestionModels(tree []dto.QuestionInput) []model.Question {
	questions := make([]model.Question, len(tree))
	for i, q := range tree {
		questions[i] = model.Question{Text: q.QuestionText, Position: i}
		for _, c := range q.Choices {
			questions[i].Choices = append(questions[i].Choices, model.Choice{Text: c.ChoiceText})
		}
	}
	return questions
}
