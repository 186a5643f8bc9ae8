package service

import (
	"context"
	"fmt"

	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const MaxRatingAnswers = 5

type RatingService interface {
	// Rate records 1-5 star answers for questions of an active survey. The
	// batch is all-or-nothing.
	Rate(ctx context.Context, surveyID uint, answers []dto.RateAnswerDTO, clientIP string) (*dto.RateResponse, error)
}

type ratingService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	ratingRepo   repository.RatingRepository
	gate         AbuseGate
	db           *gorm.DB
}

func NewRatingService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	ratingRepo repository.RatingRepository,
	gate AbuseGate,
	db *gorm.DB,
) RatingService {
	if gate == nil {
		gate = AllowAll
	}
	return &ratingService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		ratingRepo:   ratingRepo,
		gate:         gate,
		db:           db,
	}
}

func (s *ratingService) Rate(ctx context.Context, surveyID uint, answers []dto.RateAnswerDTO, clientIP string) (*dto.RateResponse, error) {
	if len(answers) == 0 {
		return nil, apperror.Validation("at least one rating is required")
	}
	if len(answers) > MaxRatingAnswers {
		return nil, apperror.Validation(fmt.Sprintf("at most %d ratings per request", MaxRatingAnswers))
	}
	for _, a := range answers {
		if !model.ValidStars(a.Value) {
			return nil, apperror.Validation(
				fmt.Sprintf("rating must be between %d and %d", model.MinStars, model.MaxStars),
				fmt.Sprintf("question %d: value %d", a.QuestionID, a.Value),
			)
		}
	}

	if _, err := activeSurvey(s.surveyRepo.WithTx(s.db.WithContext(ctx)), surveyID); err != nil {
		return nil, err
	}
	if ok, reason := s.gate.Verify(ctx, GateRequest{SurveyID: surveyID, ClientIP: clientIP}); !ok {
		return nil, apperror.Rejected(reason)
	}

	results := make([]dto.RateResultDTO, 0, len(answers))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		survey, err := s.surveyRepo.WithTx(tx).LockByID(surveyID)
		if err != nil || !survey.IsActive {
			return surveyNotFound(err, surveyID)
		}
		questions, err := s.questionRepo.WithTx(tx).FindBySurveyID(surveyID)
		if err != nil {
			return fmt.Errorf("failed to load questions of survey %d: %w", surveyID, err)
		}
		known := make(map[uint]struct{}, len(questions))
		for _, q := range questions {
			known[q.ID] = struct{}{}
		}
		for _, a := range answers {
			if _, ok := known[a.QuestionID]; !ok {
				return apperror.NotFound("question not found in survey", fmt.Sprintf("%d", a.QuestionID))
			}
		}

		ratings := s.ratingRepo.WithTx(tx)
		for _, a := range answers {
			rating, err := ratings.AddVote(a.QuestionID, a.Value)
			if err != nil {
				return fmt.Errorf("failed to record rating for question %d: %w", a.QuestionID, err)
			}
			results = append(results, dto.RateResultDTO{QuestionID: a.QuestionID, Value: a.Value, Rating: toRatingResponse(rating)})
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", surveyID).Msg("Rate: Batch rejected")
		return nil, err
	}
	log.Info().Uint("surveyID", surveyID).Int("ratings", len(results)).Msg("Rating batch recorded")
	return &dto.RateResponse{SurveyID: surveyID, Results: results}, nil
}
