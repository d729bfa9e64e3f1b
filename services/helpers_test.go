package services_test

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yamdb-api/config"
	"github.com/yamdb-api/database"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/services"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestDB opens a private in-memory SQLite database with the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", ksuid.New().String())
	db, err := database.Open(config.Database{Driver: "sqlite", URL: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testAuthConfig() config.Auth {
	return config.Auth{JWTSecret: testSecret, AccessTokenLifetime: time.Hour, ConfirmationCodeLength: 6}
}

func newContainer(t *testing.T, db *gorm.DB, mailer services.Mailer) *services.Container {
	t.Helper()
	svc, err := services.NewContainer(db, mailer, testAuthConfig())
	require.NoError(t, err)
	return svc
}

func newAdminService(db *gorm.DB, mailer services.Mailer) *services.AdminService {
	users := repositories.NewUserRepository(db)
	return services.NewAdminService(db, users, services.NewConfirmationService(users, mailer, 6))
}

// sentMessage is one email captured by recordingMailer
type sentMessage struct {
	To, Subject, Body string
}

// recordingMailer keeps every message instead of sending it
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var codePattern = regexp.MustCompile(`Your confirmation code is: (\S+)`)

// lastCode returns the code carried by the latest message sent to the address
func (m *recordingMailer) lastCode(t *testing.T, to string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To != to {
			continue
		}
		match := codePattern.FindStringSubmatch(m.sent[i].Body)
		require.Len(t, match, 2, "message without a confirmation code: %q", m.sent[i].Body)
		return match[1]
	}
	t.Fatalf("no message sent to %s", to)
	return ""
}

// mockMailer is a testify mock of services.Mailer
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// seedUser inserts a user directly and returns the caller acting as them
func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) (*models.User, policy.Caller) {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user, policy.CallerFromUser(user)
}

// seedTitle inserts a category and a title in it
func seedTitle(t *testing.T, db *gorm.DB, name string) *models.Title {
	t.Helper()
	category := &models.Category{Name: "Films", Slug: "films-" + ksuid.New().String()[:8]}
	require.NoError(t, db.Create(category).Error)

	title := &models.Title{Name: name, Year: 1999, CategoryID: &category.ID}
	require.NoError(t, db.Omit("Category", "Genres").Create(title).Error)
	return title
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
