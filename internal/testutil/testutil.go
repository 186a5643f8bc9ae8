// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lshigami/Quorum/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every goroutine on the same memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:quorum_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbCounter.Add(1))
	return openTestDB(t, dsn, 1)
}

// SetupFileTestDB opens a WAL-mode SQLite file in a temp dir with a pool of
// conns connections, so concurrent tests really run on separate connections.
// Transactions begin IMMEDIATE and wait on busy_timeout for the write lock.
func SetupFileTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quorum.db")
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	return openTestDB(t, dsn, conns)
}

func openTestDB(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Survey{}, &model.Question{}, &model.Choice{}, &model.Rating{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser inserts an owner with a throwaway password hash.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{Username: username, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// QuestionSpec describes one question of a fixture survey.
type QuestionSpec struct {
	Text    string
	Choices []string
}

// CreateTestSurvey inserts a survey with the given tree and returns it with
// questions and choices loaded in insertion order.
func CreateTestSurvey(t *testing.T, db *gorm.DB, ownerID uint, active bool, questions ...QuestionSpec) *model.Survey {
	t.Helper()

	survey := &model.Survey{
		OwnerID:    ownerID,
		Title:      "Test Survey",
		AccessCode: uuid.NewString(),
		IsActive:   active,
	}
	for i, q := range questions {
		question := model.Question{Text: q.Text, Position: i}
		for _, c := range q.Choices {
			question.Choices = append(question.Choices, model.Choice{Text: c})
		}
		survey.Questions = append(survey.Questions, question)
	}
	if err := db.Create(survey).Error; err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return survey
}

// ChoiceVotes reads a choice's counter straight from the database.
func ChoiceVotes(t *testing.T, db *gorm.DB, choiceID uint) int64 {
	t.Helper()

	var choice model.Choice
	if err := db.First(&choice, choiceID).Error; err != nil {
		t.Fatalf("Failed to load choice %d: %v", choiceID, err)
	}
	return choice.Votes
}

// CountRows returns the number of rows in the table behind value.
func CountRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(value).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
