package repository

import (
	"testing"

	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSurveyRepository_FindActiveByAccessCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	active := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Q2", Choices: []string{"b1"}},
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"a1", "a2"}},
	)
	draft := testutil.CreateTestSurvey(t, db, owner.ID, false)
	repo := NewSurveyRepository(db)

	found, err := repo.FindActiveByAccessCode(active.AccessCode)
	require.NoError(t, err)
	require.Len(t, found.Questions, 2)
	assert.Equal(t, "Q2", found.Questions[0].Text)
	assert.Len(t, found.Questions[1].Choices, 2)

	_, err = repo.FindActiveByAccessCode(draft.AccessCode)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSurveyRepository_ReplaceQuestionsIssuesFreshIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, false,
		testutil.QuestionSpec{Text: "Old", Choices: []string{"x"}},
	)
	oldQuestionID := survey.Questions[0].ID
	oldChoiceID := survey.Questions[0].Choices[0].ID
	repo := NewSurveyRepository(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).ReplaceQuestions(survey.ID, []model.Question{
			{Text: "Old", Choices: []model.Choice{{Text: "x", Votes: 99}}},
		})
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByIDWithTree(survey.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Questions, 1)
	assert.NotEqual(t, oldQuestionID, reloaded.Questions[0].ID)
	require.Len(t, reloaded.Questions[0].Choices, 1)
	assert.NotEqual(t, oldChoiceID, reloaded.Questions[0].Choices[0].ID)
	assert.Equal(t, int64(0), reloaded.Questions[0].Choices[0].Votes)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Choice{}))
}

func TestSurveyRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, false,
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"a", "b"}},
	)
	keep := testutil.CreateTestSurvey(t, db, owner.ID, false,
		testutil.QuestionSpec{Text: "Other", Choices: []string{"c"}},
	)
	_, err := NewRatingRepository(db).AddVote(survey.Questions[0].ID, 4)
	require.NoError(t, err)

	require.NoError(t, NewSurveyRepository(db).Delete(survey.ID))

	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Survey{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Question{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Choice{}))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &model.Rating{}))
	_, err = NewSurveyRepository(db).FindByID(keep.ID)
	assert.NoError(t, err)
}

func TestSurveyRepository_FindAllByOwnerWithQuestionCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateTestUser(t, db, "alice")
	bob := testutil.CreateTestUser(t, db, "bob")
	testutil.CreateTestSurvey(t, db, alice.ID, false,
		testutil.QuestionSpec{Text: "Q1"}, testutil.QuestionSpec{Text: "Q2"},
	)
	testutil.CreateTestSurvey(t, db, bob.ID, false)

	surveys, err := NewSurveyRepository(db).FindAllByOwnerWithQuestionCount(alice.ID)
	require.NoError(t, err)
	require.Len(t, surveys, 1)
	assert.Equal(t, 2, surveys[0].QuestionCount)
}

func TestChoiceRepository_IncrementVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"a"}},
	)
	choiceID := survey.Questions[0].Choices[0].ID
	repo := NewChoiceRepository(db)

	votes, err := repo.IncrementVotes(choiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), votes)
	votes, err = repo.IncrementVotes(choiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), votes)

	_, err = repo.IncrementVotes(choiceID + 1000)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestChoiceRepository_IncrementVotesIsASingleSQLUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true,
		testutil.QuestionSpec{Text: "Q1", Choices: []string{"a"}},
	)
	choiceID := survey.Questions[0].Choices[0].ID

	var updates []string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", func(tx *gorm.DB) {
		updates = append(updates, tx.Statement.SQL.String())
	}))
	// Counter value changed behind the repository's back.
	require.NoError(t, db.Exec("UPDATE choices SET votes = 41 WHERE id = ?", choiceID).Error)

	votes, err := NewChoiceRepository(db).IncrementVotes(choiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), votes)
	require.Len(t, updates, 1)
	assert.Contains(t, updates[0], "votes + ?")
}

func TestRatingRepository_AddVoteCreatesRowOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, true, testutil.QuestionSpec{Text: "Q1"})
	qID := survey.Questions[0].ID
	repo := NewRatingRepository(db)

	_, err := repo.AddVote(qID, 5)
	require.NoError(t, err)
	rating, err := repo.AddVote(qID, 2)
	require.NoError(t, err)

	assert.Equal(t, [5]int64{0, 1, 0, 0, 1}, rating.Counts())
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.Rating{}))

	_, err = repo.AddVote(qID, 6)
	assert.Error(t, err)
}

func TestQuestionRepository_NextPosition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	empty := testutil.CreateTestSurvey(t, db, owner.ID, false)
	full := testutil.CreateTestSurvey(t, db, owner.ID, false,
		testutil.QuestionSpec{Text: "Q1"}, testutil.QuestionSpec{Text: "Q2"},
	)
	repo := NewQuestionRepository(db)

	pos, err := repo.NextPosition(empty.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	pos, err = repo.NextPosition(full.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}
