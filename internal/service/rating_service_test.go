package service

import (
	"context"
	"testing"

	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/lshigami/Quorum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRatingFixture(t *testing.T, gate AbuseGate) (RatingService, *gorm.DB, *model.Survey) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Service"}, testutil.QuestionSpec{Text: "Food"},
	)
	svc := NewRatingService(
		repository.NewSurveyRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewRatingRepository(db),
		gate,
		db,
	)
	return svc, db, survey
}

func TestRate_AccumulatesStars(t *testing.T) {
	svc, _, survey := newRatingFixture(t, nil)
	ctx := context.Background()
	q1, q2 := survey.Questions[0].ID, survey.Questions[1].ID

	resp, err := svc.Rate(ctx, survey.ID, []dto.RateAnswerDTO{{QuestionID: q1, Value: 5}, {QuestionID: q2, Value: 1}}, "")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, [5]int64{0, 0, 0, 0, 1}, resp.Results[0].Rating.Counts)

	resp, err = svc.Rate(ctx, survey.ID, []dto.RateAnswerDTO{{QuestionID: q1, Value: 3}}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Results[0].Rating.Total)
	assert.InDelta(t, 4.0, resp.Results[0].Rating.Average, 1e-9)
}

func TestRate_RejectsOutOfRangeBeforeAnyWrite(t *testing.T) {
	svc, db, survey := newRatingFixture(t, nil)
	q1 := survey.Questions[0].ID

	for _, v := range []int{0, 6, -3} {
		_, err := svc.Rate(context.Background(), survey.ID, []dto.RateAnswerDTO{{QuestionID: q1, Value: 4}, {QuestionID: q1, Value: v}}, "")
		requireKind(t, err, apperror.KindValidation)
	}
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Rating{}))
}

func TestRate_ForeignQuestionAbortsWholeBatch(t *testing.T) {
	svc, db, survey := newRatingFixture(t, nil)
	other := testutil.CreateTestSurvey(t, db, survey.OwnerID, true, testutil.QuestionSpec{Text: "Other"})
	foreign := other.Questions[0].ID

	_, err := svc.Rate(context.Background(), survey.ID, []dto.RateAnswerDTO{
		{QuestionID: survey.Questions[0].ID, Value: 5},
		{QuestionID: foreign, Value: 2},
	}, "")
	appErr := requireKind(t, err, apperror.KindNotFound)
	assert.Equal(t, apperror.IDs([]uint{foreign}), appErr.Details)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Rating{}))
}

func TestRate_BatchLimitsAndSurveyState(t *testing.T) {
	svc, db, survey := newRatingFixture(t, nil)
	ctx := context.Background()
	q1 := survey.Questions[0].ID

	six := make([]dto.RateAnswerDTO, 6)
	for i := range six {
		six[i] = dto.RateAnswerDTO{QuestionID: q1, Value: 3}
	}
	_, err := svc.Rate(ctx, survey.ID, six, "")
	requireKind(t, err, apperror.KindValidation)
	_, err = svc.Rate(ctx, survey.ID, nil, "")
	requireKind(t, err, apperror.KindValidation)

	draft := testutil.CreateTestSurvey(t, db, survey.OwnerID, false, testutil.QuestionSpec{Text: "Draft"})
	_, err = svc.Rate(ctx, draft.ID, []dto.RateAnswerDTO{{QuestionID: draft.Questions[0].ID, Value: 3}}, "")
	requireKind(t, err, apperror.KindNotFound)
}

func TestRate_GateRejection(t *testing.T) {
	gate := AbuseGateFunc(func(context.Context, GateRequest) (bool, string) { return false, "too many submissions" })
	svc, db, survey := newRatingFixture(t, gate)

	_, err := svc.Rate(context.Background(), survey.ID, []dto.RateAnswerDTO{{QuestionID: survey.Questions[0].ID, Value: 3}}, "10.0.0.1")
	requireKind(t, err, apperror.KindRejected)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Rating{}))
}
