package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/lshigami/Quorum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSurveyService(t *testing.T) (SurveyService, *gorm.DB, *model.User) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner")
	return NewSurveyService(repository.NewSurveyRepository(db), db), db, owner
}

func ptr[T any](v T) *T {
	return &v
}

func sampleTree() []dto.QuestionInput {
	return []dto.QuestionInput{
		{QuestionText: "Favourite colour?", Choices: []dto.ChoiceInput{{ChoiceText: "Red"}, {ChoiceText: "Blue"}}},
		{QuestionText: "Favourite pet?", Choices: []dto.ChoiceInput{{ChoiceText: "Cat"}}},
	}
}

func TestCreateSurvey_IsDraftWithAccessCode(t *testing.T) {
	svc, _, owner := newSurveyService(t)
	ctx := context.Background()

	resp, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{
		Title:     "  Pets  ",
		Color1:    ptr("#a1b2c3"),
		Questions: sampleTree(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Pets", resp.Title)
	assert.False(t, resp.IsActive)
	_, err = uuid.Parse(resp.AccessCode)
	assert.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "Favourite colour?", resp.Questions[0].Text)
	assert.Len(t, resp.Questions[0].Choices, 2)
	assert.Equal(t, "#a1b2c3", *resp.Color1)

	other, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Another"})
	require.NoError(t, err)
	assert.NotEqual(t, resp.AccessCode, other.AccessCode)
}

func TestCreateSurvey_MalformedPayload(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()

	_, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "   "})
	requireKind(t, err, apperror.KindValidation)

	_, err = svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{
		Title: "Broken",
		Questions: []dto.QuestionInput{
			{QuestionText: "ok", Choices: []dto.ChoiceInput{{ChoiceText: " "}}},
			{QuestionText: ""},
		},
	})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, []string{"questions[0].choices[0].choice_text", "questions[1].question_text"}, appErr.Details)

	_, err = svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Colour", Color2: ptr("red")})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, []string{"color_2"}, appErr.Details)

	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Survey{}))
}

func TestUpdateSurvey_ScalarFieldsKeepTree(t *testing.T) {
	svc, _, owner := newSurveyService(t)
	ctx := context.Background()
	created, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Old", Questions: sampleTree()})
	require.NoError(t, err)

	updated, err := svc.UpdateSurvey(ctx, owner.ID, created.ID, dto.SurveyUpdateRequest{
		Title:    ptr("New"),
		IsActive: ptr(true),
		Color3:   ptr("#000000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "#000000", *updated.Color3)
	assert.Equal(t, created.AccessCode, updated.AccessCode)
	require.Len(t, updated.Questions, 2)
	assert.Equal(t, created.Questions[0].ID, updated.Questions[0].ID)
}

// Replacing the tree issues new ids and discards recorded votes; clients must
// not assume question or choice ids survive an edit.
func TestUpdateSurvey_QuestionTreeIsReplacedWithNewIDs(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	created, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Pets", Questions: sampleTree()})
	require.NoError(t, err)
	oldChoice := created.Questions[0].Choices[0].ID
	_, err = repository.NewChoiceRepository(db).IncrementVotes(oldChoice)
	require.NoError(t, err)

	tree := sampleTree()
	updated, err := svc.UpdateSurvey(ctx, owner.ID, created.ID, dto.SurveyUpdateRequest{Questions: &tree})
	require.NoError(t, err)

	require.Len(t, updated.Questions, 2)
	for i := range updated.Questions {
		assert.NotEqual(t, created.Questions[i].ID, updated.Questions[i].ID)
		assert.Equal(t, created.Questions[i].Text, updated.Questions[i].Text)
	}
	assert.Equal(t, int64(0), updated.Questions[0].Choices[0].Votes)
	assert.Equal(t, int64(3), testutil.CountRows(t, db, &model.Choice{}))

	var count int64
	db.Model(&model.Choice{}).Where("id = ?", oldChoice).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReplaceQuestions_EmptyTreeClearsSurvey(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	created, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Pets", Questions: sampleTree()})
	require.NoError(t, err)

	resp, err := svc.ReplaceQuestions(ctx, owner.ID, created.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Questions)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Question{}))
}

func TestUpdateSurvey_OtherOwnerSeesNotFound(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	intruder := testutil.CreateTestUser(t, db, "intruder")
	created, err := svc.CreateSurvey(ctx, owner.ID, dto.SurveyCreateRequest{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.UpdateSurvey(ctx, intruder.ID, created.ID, dto.SurveyUpdateRequest{Title: ptr("Stolen")})
	requireKind(t, err, apperror.KindNotFound)
	err = svc.DeleteSurvey(ctx, intruder.ID, created.ID)
	requireKind(t, err, apperror.KindNotFound)
	_, err = svc.GetSurvey(ctx, intruder.ID, created.ID)
	requireKind(t, err, apperror.KindNotFound)
}

func TestDeleteSurvey_ActiveIsConflict(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Q", Choices: []string{"A"}},
	)

	err := svc.DeleteSurvey(ctx, owner.ID, survey.ID)
	appErr := requireKind(t, err, apperror.KindConflict)
	assert.Equal(t, "cannot delete an active survey", appErr.Message)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Survey{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Choice{}))
}

func TestDeleteSurvey_DraftCascades(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, db, owner.ID, false,
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"A", "B"}},
		testutil.QuestionSpec{Text: "Q2", Choices: []string{"C"}},
	)

	require.NoError(t, svc.DeleteSurvey(ctx, owner.ID, survey.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Survey{}))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Question{}))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Choice{}))

	err := svc.DeleteSurvey(ctx, owner.ID, survey.ID)
	requireKind(t, err, apperror.KindNotFound)
}

func TestGetByAccessCode(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	active := testutil.CreateTestSurvey(t, db, owner.ID, true, testutil.QuestionSpec{Text: "Q", Choices: []string{"A"}})
	draft := testutil.CreateTestSurvey(t, db, owner.ID, false)

	resp, err := svc.GetByAccessCode(ctx, active.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, active.ID, resp.ID)
	require.Len(t, resp.Questions, 1)

	for _, code := range []string{draft.AccessCode, uuid.NewString(), "not-a-code", ""} {
		_, err := svc.GetByAccessCode(ctx, code)
		requireKind(t, err, apperror.KindNotFound)
	}
}

func TestListSurveysAndResults(t *testing.T) {
	svc, db, owner := newSurveyService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"A", "B"}},
	)
	choices := repository.NewChoiceRepository(db)
	for i := 0; i < 3; i++ {
		_, err := choices.IncrementVotes(survey.Questions[0].Choices[1].ID)
		require.NoError(t, err)
	}
	_, err := repository.NewRatingRepository(db).AddVote(survey.Questions[0].ID, 4)
	require.NoError(t, err)

	list, err := svc.ListSurveys(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].QuestionCount)

	results, err := svc.GetResults(ctx, owner.ID, survey.ID)
	require.NoError(t, err)
	require.Len(t, results.Questions, 1)
	assert.Equal(t, int64(3), results.Questions[0].TotalVotes)
	assert.Equal(t, int64(3), results.Questions[0].Choices[1].Votes)
	assert.Equal(t, int64(1), results.Questions[0].Rating.Total)
	assert.InDelta(t, 4.0, results.Questions[0].Rating.Average, 1e-9)
}
