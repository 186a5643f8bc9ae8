package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SurveyService owns the survey lifecycle: draft creation, updates with
// full-replace of the question tree, guarded deletion and the public read.
type SurveyService interface {
	CreateSurvey(ctx context.Context, ownerID uint, req dto.SurveyCreateRequest) (*dto.SurveyResponse, error)
	UpdateSurvey(ctx context.Context, ownerID, surveyID uint, req dto.SurveyUpdateRequest) (*dto.SurveyResponse, error)
	ReplaceQuestions(ctx context.Context, ownerID, surveyID uint, tree []dto.QuestionInput) (*dto.SurveyResponse, error)
	DeleteSurvey(ctx context.Context, ownerID, surveyID uint) error
	GetSurvey(ctx context.Context, ownerID, surveyID uint) (*dto.SurveyResponse, error)
	ListSurveys(ctx context.Context, ownerID uint) ([]dto.SurveySummaryDTO, error)
	GetByAccessCode(ctx context.Context, code string) (*dto.SurveyResponse, error)
	GetResults(ctx context.Context, ownerID, surveyID uint) (*dto.SurveyResultsDTO, error)
}

type surveyService struct {
	surveyRepo repository.SurveyRepository
	db         *gorm.DB
}

func NewSurveyService(surveyRepo repository.SurveyRepository, db *gorm.DB) SurveyService {
	return &surveyService{surveyRepo: surveyRepo, db: db}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (s *surveyService) CreateSurvey(ctx context.Context, ownerID uint, req dto.SurveyCreateRequest) (*dto.SurveyResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("survey title is required", "title")
	}
	if err := validateColors(req.Color1, req.Color2, req.Color3); err != nil {
		return nil, err
	}
	if err := validateTree(req.Questions); err != nil {
		return nil, err
	}

	survey := model.Survey{
		OwnerID:     ownerID,
		Title:       title,
		Description: req.Description,
		AccessCode:  uuid.NewString(),
		IsActive:    false,
		Color1:      req.Color1,
		Color2:      req.Color2,
		Color3:      req.Color3,
		Questions:   toQuestionModels(req.Questions),
	}

	if err := s.surveyRepo.WithTx(s.db.WithContext(ctx)).Create(&survey); err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("CreateSurvey: Failed to create survey in database")
		return nil, fmt.Errorf("database error creating survey: %w", err)
	}
	log.Info().Uint("surveyID", survey.ID).Uint("ownerID", ownerID).Int("questions", len(survey.Questions)).Msg("Survey created")

	created, err := s.surveyRepo.WithTx(s.db.WithContext(ctx)).FindByIDWithTree(survey.ID)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", survey.ID).Msg("CreateSurvey: Failed to reload survey, returning in-memory state")
		return toSurveyResponse(&survey), nil
	}
	return toSurveyResponse(created), nil
}

func (s *surveyService) UpdateSurvey(ctx context.Context, ownerID, surveyID uint, req dto.SurveyUpdateRequest) (*dto.SurveyResponse, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("survey title is required", "title")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if err := validateColors(req.Color1, req.Color2, req.Color3); err != nil {
		return nil, err
	}
	for column, value := range map[string]*string{"color1": req.Color1, "color2": req.Color2, "color3": req.Color3} {
		if value != nil {
			fields[column] = *value
		}
	}
	if req.Questions != nil {
		if err := validateTree(*req.Questions); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.surveyRepo.WithTx(tx)
		survey, err := lockOwnedSurvey(repo, ownerID, surveyID)
		if err != nil {
			return err
		}
		if err := repo.UpdateFields(survey, fields); err != nil {
			return fmt.Errorf("failed to update survey fields: %w", err)
		}
		if req.Questions != nil {
			return replaceChildren(tx, repo, surveyID, *req.Questions)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("UpdateSurvey: Transaction failed")
		return nil, err
	}
	return s.reload(ctx, surveyID)
}

// ReplaceQuestions swaps the whole question tree of a survey. Old questions,
// choices, their vote counters and ratings are deleted; new rows get new ids.
func (s *surveyService) ReplaceQuestions(ctx context.Context, ownerID, surveyID uint, tree []dto.QuestionInput) (*dto.SurveyResponse, error) {
	if err := validateTree(tree); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.surveyRepo.WithTx(tx)
		if _, err := lockOwnedSurvey(repo, ownerID, surveyID); err != nil {
			return err
		}
		return replaceChildren(tx, repo, surveyID, tree)
	})
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("ReplaceQuestions: Transaction failed")
		return nil, err
	}
	return s.reload(ctx, surveyID)
}

func replaceChildren(tx *gorm.DB, repo repository.SurveyRepository, surveyID uint, tree []dto.QuestionInput) error {
	var discarded int64
	if err := tx.Model(&model.Choice{}).
		Select("COALESCE(SUM(votes), 0)").
		Where("question_id IN (?)", tx.Model(&model.Question{}).Select("id").Where("survey_id = ?", surveyID)).
		Scan(&discarded).Error; err != nil {
		return fmt.Errorf("failed to count existing votes: %w", err)
	}
	if err := repo.ReplaceQuestions(surveyID, toQuestionModels(tree)); err != nil {
		return fmt.Errorf("failed to replace questions: %w", err)
	}
	if discarded > 0 {
		log.Warn().Uint("surveyID", surveyID).Int64("discardedVotes", discarded).Msg("Question tree replaced, recorded votes discarded")
	}
	return nil
}

func (s *surveyService) DeleteSurvey(ctx context.Context, ownerID, surveyID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.surveyRepo.WithTx(tx)
		survey, err := lockOwnedSurvey(repo, ownerID, surveyID)
		if err != nil {
			return err
		}
		if survey.IsActive {
			return apperror.Conflict("cannot delete an active survey", fmt.Sprintf("%d", surveyID))
		}
		if err := repo.Delete(surveyID); err != nil {
			return fmt.Errorf("failed to delete survey: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", surveyID).Msg("DeleteSurvey: Failed")
		return err
	}
	log.Info().Uint("surveyID", surveyID).Uint("ownerID", ownerID).Msg("Survey deleted")
	return nil
}

func (s *surveyService) GetSurvey(ctx context.Context, ownerID, surveyID uint) (*dto.SurveyResponse, error) {
	repo := s.surveyRepo.WithTx(s.db.WithContext(ctx))
	if _, err := repo.FindByIDForOwner(surveyID, ownerID); err != nil {
		return nil, surveyLookupError(err, surveyID)
	}
	return s.reload(ctx, surveyID)
}

func (s *surveyService) ListSurveys(ctx context.Context, ownerID uint) ([]dto.SurveySummaryDTO, error) {
	surveys, err := s.surveyRepo.WithTx(s.db.WithContext(ctx)).FindAllByOwnerWithQuestionCount(ownerID)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("ListSurveys: Failed to fetch surveys")
		return nil, fmt.Errorf("error fetching surveys: %w", err)
	}
	summaries := make([]dto.SurveySummaryDTO, 0, len(surveys))
	for _, sv := range surveys {
		var summary dto.SurveySummaryDTO
		if err := copier.Copy(&summary, &sv.Survey); err != nil {
			log.Error().Err(err).Uint("surveyID", sv.ID).Msg("ListSurveys: Error copying survey to summary DTO")
			continue
		}
		summary.QuestionCount = sv.QuestionCount
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetByAccessCode is the only unauthenticated read. Drafts and unknown codes
// are indistinguishable to the caller.
func (s *surveyService) GetByAccessCode(ctx context.Context, code string) (*dto.SurveyResponse, error) {
	if _, err := uuid.Parse(code); err != nil {
		return nil, apperror.NotFound("survey does not exist or is not active")
	}
	survey, err := s.surveyRepo.WithTx(s.db.WithContext(ctx)).FindActiveByAccessCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("survey does not exist or is not active")
		}
		return nil, fmt.Errorf("error fetching survey by access code: %w", err)
	}
	return toSurveyResponse(survey), nil
}

func (s *surveyService) GetResults(ctx context.Context, ownerID, surveyID uint) (*dto.SurveyResultsDTO, error) {
	repo := s.surveyRepo.WithTx(s.db.WithContext(ctx))
	if _, err := repo.FindByIDForOwner(surveyID, ownerID); err != nil {
		return nil, surveyLookupError(err, surveyID)
	}
	survey, err := repo.FindByIDWithTree(surveyID)
	if err != nil {
		return nil, surveyLookupError(err, surveyID)
	}

	results := &dto.SurveyResultsDTO{
		SurveyID:  survey.ID,
		Title:     survey.Title,
		IsActive:  survey.IsActive,
		Questions: make([]dto.QuestionResultDTO, len(survey.Questions)),
	}
	for i := range survey.Questions {
		q := &survey.Questions[i]
		qr := toQuestionResponse(q)
		var total int64
		for _, c := range q.Choices {
			total += c.Votes
		}
		results.Questions[i] = dto.QuestionResultDTO{
			QuestionID: q.ID,
			Text:       q.Text,
			TotalVotes: total,
			Choices:    qr.Choices,
			Rating:     toRatingResponse(q.Rating),
		}
	}
	return results, nil
}

func (s *surveyService) reload(ctx context.Context, surveyID uint) (*dto.SurveyResponse, error) {
	survey, err := s.surveyRepo.WithTx(s.db.WithContext(ctx)).FindByIDWithTree(surveyID)
	if err != nil {
		return nil, surveyLookupError(err, surveyID)
	}
	return toSurveyResponse(survey), nil
}

// lockOwnedSurvey locks the survey row; surveys of other owners look missing.
func lockOwnedSurvey(repo repository.SurveyRepository, ownerID, surveyID uint) (*model.Survey, error) {
	survey, err := repo.LockByID(surveyID)
	if err != nil {
		return nil, surveyLookupError(err, surveyID)
	}
	if survey.OwnerID != ownerID {
		return nil, apperror.NotFound("survey not found", fmt.Sprintf("%d", surveyID))
	}
	return survey, nil
}

func surveyLookupError(err error, surveyID uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("survey not found", fmt.Sprintf("%d", surveyID))
	}
	return fmt.Errorf("error fetching survey %d: %w", surveyID, err)
}

func validateColors(colors ...*string) error {
	for i, c := range colors {
		if c != nil && !hexColor.MatchString(*c) {
			return apperror.Validation("colour must be #rrggbb", fmt.Sprintf("color_%d", i+1))
		}
	}
	return nil
}

// validateTree rejects blank question or choice texts, naming every bad path.
func validateTree(tree []dto.QuestionInput) error {
	var bad []string
	for i, q := range tree {
		if strings.TrimSpace(q.QuestionText) == "" {
			bad = append(bad, fmt.Sprintf("questions[%d].question_text", i))
		}
		for j, c := range q.Choices {
			if strings.TrimSpace(c.ChoiceText) == "" {
				bad = append(bad, fmt.Sprintf("questions[%d].choices[%d].choice_text", i, j))
			}
		}
	}
	if len(bad) > 0 {
		return apperror.Validation("malformed question tree", bad...)
	}
	return nil
}
