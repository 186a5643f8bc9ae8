package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VoteSubmissionService accepts anonymous votes.
type VoteSubmissionService interface {
	// SubmitVotes applies one vote per question of an active survey. The batch
	// must cover exactly the survey's questions; it is validated completely
	// before any counter changes and applied in a single transaction.
	SubmitVotes(ctx context.Context, surveyID uint, req VoteBatch) (*dto.SubmitVotesResponse, error)
	// VoteForChoice adds one vote to a choice without any survey checks.
	VoteForChoice(ctx context.Context, choiceID uint) (*dto.ChoiceVoteResponse, error)
}

// VoteBatch is one anonymous submission.
type VoteBatch struct {
	Answers        []dto.VoteAnswerDTO
	RecaptchaToken string
	ClientIP       string
	// Malformed is set when the body could not be read as an answer list. It
	// is reported only after the survey and gate checks.
	Malformed error
}

type voteSubmissionService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	gate         AbuseGate
	db           *gorm.DB
}

func NewVoteSubmissionService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	gate AbuseGate,
	db *gorm.DB,
) VoteSubmissionService {
	if gate == nil {
		gate = AllowAll
	}
	return &voteSubmissionService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		gate:         gate,
		db:           db,
	}
}

// resolvedVote is a validated (question, choice) pair waiting to be applied.
type resolvedVote struct {
	questionID uint
	choiceID   uint
}

func (s *voteSubmissionService) SubmitVotes(ctx context.Context, surveyID uint, req VoteBatch) (*dto.SubmitVotesResponse, error) {
	// 1. Survey must exist and be published.
	if _, err := activeSurvey(s.surveyRepo.WithTx(s.db.WithContext(ctx)), surveyID); err != nil {
		return nil, err
	}

	// 2. Anti-abuse gate, before anything is read for writing.
	if ok, reason := s.gate.Verify(ctx, GateRequest{SurveyID: surveyID, Token: req.RecaptchaToken, ClientIP: req.ClientIP}); !ok {
		log.Warn().Uint("surveyID", surveyID).Str("clientIP", req.ClientIP).Str("reason", reason).Msg("SubmitVotes: Rejected by anti-abuse gate")
		return nil, apperror.Rejected(reason)
	}

	// 3. Answer map keyed by question id; incomplete entries are dropped and
	// the last entry wins for a repeated question.
	if req.Malformed != nil {
		return nil, apperror.Validation("answers must be a list of objects", req.Malformed.Error())
	}
	answerMap := buildAnswerMap(req.Answers)

	results := make([]dto.VoteResultDTO, 0, len(answerMap))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The survey row lock keeps the question set frozen while we validate
		// and apply.
		survey, err := s.surveyRepo.WithTx(tx).LockByID(surveyID)
		if err != nil || !survey.IsActive {
			return surveyNotFound(err, surveyID)
		}

		questions, err := s.questionRepo.WithTx(tx).FindBySurveyID(surveyID)
		if err != nil {
			return fmt.Errorf("failed to load questions of survey %d: %w", surveyID, err)
		}

		votes, err := s.validate(tx, questions, answerMap)
		if err != nil {
			return err
		}

		// Apply phase: only reached when every answer is valid.
		choices := s.choiceRepo.WithTx(tx)
		for _, v := range votes {
			count, err := choices.IncrementVotes(v.choiceID)
			if err != nil {
				return fmt.Errorf("failed to record vote for choice %d: %w", v.choiceID, err)
			}
			results = append(results, dto.VoteResultDTO{QuestionID: v.questionID, ChoiceID: v.choiceID, UpdatedVotes: count})
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			log.Warn().Uint("surveyID", surveyID).Str("kind", string(appErr.Kind)).Strs("details", appErr.Details).Msg("SubmitVotes: Batch rejected")
		} else {
			log.Error().Err(err).Uint("surveyID", surveyID).Msg("SubmitVotes: Transaction failed")
		}
		return nil, err
	}

	log.Info().Uint("surveyID", surveyID).Int("votes", len(results)).Msg("Vote batch recorded")
	return &dto.SubmitVotesResponse{SurveyID: surveyID, Results: results}, nil
}

// validate runs the completeness and referential checks in a fixed order:
// unknown questions, then missing questions, then each choice in survey
// order. It never writes.
func (s *voteSubmissionService) validate(tx *gorm.DB, questions []model.Question, answerMap map[uint]uint) ([]resolvedVote, error) {
	known := make(map[uint]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	var extra []uint
	for qID := range answerMap {
		if _, ok := known[qID]; !ok {
			extra = append(extra, qID)
		}
	}
	if len(extra) > 0 {
		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
		return nil, apperror.Validation("answers reference questions outside this survey", apperror.IDs(extra)...)
	}

	var missing []uint
	for _, q := range questions {
		if _, ok := answerMap[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("missing answers for questions", apperror.IDs(missing)...)
	}

	choiceIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		choiceIDs = append(choiceIDs, answerMap[q.ID])
	}
	choices, err := s.choiceRepo.WithTx(tx).FindByIDs(choiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitted choices: %w", err)
	}

	votes := make([]resolvedVote, 0, len(questions))
	for _, q := range questions {
		choiceID := answerMap[q.ID]
		choice, ok := choices[choiceID]
		if !ok {
			return nil, apperror.Validation("choice does not exist", pairDetail(q.ID, choiceID))
		}
		// q comes from this survey's question set, so matching the question
		// also rules out choices taken from another survey.
		if choice.QuestionID != q.ID {
			return nil, apperror.Validation("choice does not belong to question", pairDetail(q.ID, choiceID))
		}
		votes = append(votes, resolvedVote{questionID: q.ID, choiceID: choiceID})
	}
	return votes, nil
}

func (s *voteSubmissionService) VoteForChoice(ctx context.Context, choiceID uint) (*dto.ChoiceVoteResponse, error) {
	votes, err := s.choiceRepo.WithTx(s.db.WithContext(ctx)).IncrementVotes(choiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("choice not found", fmt.Sprintf("%d", choiceID))
		}
		log.Error().Err(err).Uint("choiceID", choiceID).Msg("VoteForChoice: Failed to increment votes")
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return &dto.ChoiceVoteResponse{Status: "vote recorded", Votes: votes}, nil
}

func buildAnswerMap(answers []dto.VoteAnswerDTO) map[uint]uint {
	out := make(map[uint]uint, len(answers))
	for _, a := range answers {
		if a.QuestionID == nil || a.ChoiceID == nil {
			continue
		}
		out[*a.QuestionID] = *a.ChoiceID
	}
	return out
}

func activeSurvey(repo repository.SurveyRepository, surveyID uint) (*model.Survey, error) {
	survey, err := repo.FindByID(surveyID)
	if err != nil || !survey.IsActive {
		return nil, surveyNotFound(err, surveyID)
	}
	return survey, nil
}

// surveyNotFound maps a lookup result to NotFound. Inactive surveys (nil
// err) are reported the same way as missing ones.
func surveyNotFound(err error, surveyID uint) error {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error fetching survey %d: %w", surveyID, err)
	}
	return apperror.NotFound("survey does not exist or is not active", fmt.Sprintf("%d", surveyID))
}

func pairDetail(questionID, choiceID uint) string {
	return fmt.Sprintf("question %d: choice %d", questionID, choiceID)
}
