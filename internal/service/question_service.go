package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService edits single questions and choices of a draft survey.
// Active surveys have a frozen question set and reject these edits.
type QuestionService interface {
	CreateQuestion(ctx context.Context, ownerID uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, ownerID, questionID uint, req dto.QuestionUpdateRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, ownerID, questionID uint) error
	CreateChoice(ctx context.Context, ownerID uint, req dto.ChoiceCreateRequest) (*dto.ChoiceResponse, error)
	UpdateChoice(ctx context.Context, ownerID, choiceID uint, req dto.ChoiceUpdateRequest) (*dto.ChoiceResponse, error)
	DeleteChoice(ctx context.Context, ownerID, choiceID uint) error
}

type questionService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	db           *gorm.DB
}

func NewQuestionService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	db *gorm.DB,
) QuestionService {
	return &questionService{surveyRepo: surveyRepo, questionRepo: questionRepo, choiceRepo: choiceRepo, db: db}
}

// lockDraftSurvey locks an owned survey and refuses structural edits while it
// is published.
func lockDraftSurvey(tx *gorm.DB, repo repository.SurveyRepository, ownerID, surveyID uint) error {
	survey, err := lockOwnedSurvey(repo.WithTx(tx), ownerID, surveyID)
	if err != nil {
		return err
	}
	if survey.IsActive {
		return apperror.Conflict("cannot change questions of an active survey", fmt.Sprintf("%d", surveyID))
	}
	return nil
}

func (s *questionService) CreateQuestion(ctx context.Context, ownerID uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error) {
	if err := validateTree([]dto.QuestionInput{{QuestionText: req.QuestionText, Choices: req.Choices}}); err != nil {
		return nil, err
	}
	var question model.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDraftSurvey(tx, s.surveyRepo, ownerID, req.SurveyID); err != nil {
			return err
		}
		questions := s.questionRepo.WithTx(tx)
		pos, err := questions.NextPosition(req.SurveyID)
		if err != nil {
			return fmt.Errorf("failed to compute question position: %w", err)
		}
		question = toQuestionModels([]dto.QuestionInput{{QuestionText: req.QuestionText, Choices: req.Choices}})[0]
		question.SurveyID = req.SurveyID
		question.Position = pos
		return questions.Create(&question)
	})
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", req.SurveyID).Msg("CreateQuestion: Failed")
		return nil, err
	}
	resp := toQuestionResponse(&question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, ownerID, questionID uint, req dto.QuestionUpdateRequest) (*dto.QuestionResponse, error) {
	text := strings.TrimSpace(req.QuestionText)
	if text == "" {
		return nil, apperror.Validation("question text is required", "question_text")
	}
	var question *model.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := s.questionRepo.WithTx(tx)
		q, err := findQuestion(questions, questionID)
		if err != nil {
			return err
		}
		if err := lockDraftSurvey(tx, s.surveyRepo, ownerID, q.SurveyID); err != nil {
			return err
		}
		if err := questions.UpdateText(questionID, text); err != nil {
			return fmt.Errorf("failed to update question: %w", err)
		}
		question, err = questions.FindByID(questionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, ownerID, questionID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := s.questionRepo.WithTx(tx)
		q, err := findQuestion(questions, questionID)
		if err != nil {
			return err
		}
		if err := lockDraftSurvey(tx, s.surveyRepo, ownerID, q.SurveyID); err != nil {
			return err
		}
		return questions.Delete(questionID)
	})
}

func (s *questionService) CreateChoice(ctx context.Context, ownerID uint, req dto.ChoiceCreateRequest) (*dto.ChoiceResponse, error) {
	text := strings.TrimSpace(req.ChoiceText)
	if text == "" {
		return nil, apperror.Validation("choice text is required", "choice_text")
	}
	choice := model.Choice{QuestionID: req.QuestionID, Text: text}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := findQuestion(s.questionRepo.WithTx(tx), req.QuestionID)
		if err != nil {
			return err
		}
		if err := lockDraftSurvey(tx, s.surveyRepo, ownerID, q.SurveyID); err != nil {
			return err
		}
		return s.choiceRepo.WithTx(tx).Create(&choice)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ChoiceResponse{ID: choice.ID, QuestionID: choice.QuestionID, Text: choice.Text, Votes: choice.Votes}, nil
}

func (s *questionService) UpdateChoice(ctx context.Context, ownerID, choiceID uint, req dto.ChoiceUpdateRequest) (*dto.ChoiceResponse, error) {
	text := strings.TrimSpace(req.ChoiceText)
	if text == "" {
		return nil, apperror.Validation("choice text is required", "choice_text")
	}
	var choice *model.Choice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		choices := s.choiceRepo.WithTx(tx)
		c, err := s.ownedDraftChoice(tx, ownerID, choiceID)
		if err != nil {
			return err
		}
		if err := choices.UpdateText(c.ID, text); err != nil {
			return fmt.Errorf("failed to update choice: %w", err)
		}
		choice, err = choices.FindByID(c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ChoiceResponse{ID: choice.ID, QuestionID: choice.QuestionID, Text: choice.Text, Votes: choice.Votes}, nil
}

func (s *questionService) DeleteChoice(ctx context.Context, ownerID, choiceID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.ownedDraftChoice(tx, ownerID, choiceID)
		if err != nil {
			return err
		}
		return s.choiceRepo.WithTx(tx).Delete(c.ID)
	})
}

func (s *questionService) ownedDraftChoice(tx *gorm.DB, ownerID, choiceID uint) (*model.Choice, error) {
	c, err := s.choiceRepo.WithTx(tx).FindByID(choiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("choice not found", fmt.Sprintf("%d", choiceID))
		}
		return nil, fmt.Errorf("error fetching choice %d: %w", choiceID, err)
	}
	q, err := findQuestion(s.questionRepo.WithTx(tx), c.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := lockDraftSurvey(tx, s.surveyRepo, ownerID, q.SurveyID); err != nil {
		return nil, err
	}
	return c, nil
}

func findQuestion(repo repository.QuestionRepository, questionID uint) (*model.Question, error) {
	q, err := repo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question not found", fmt.Sprintf("%d", questionID))
		}
		return nil, fmt.Errorf("error fetching question %d: %w", questionID, err)
	}
	return q, nil
}
