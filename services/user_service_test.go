package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/services"
)

func TestUserService_UpdateProfileIgnoresRole(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	_, alice := seedUser(t, db, "alice", models.RoleUser)

	// The profile patch type has no role field: a submitted role never reaches the service
	user, err := svc.Users.UpdateProfile(ctx, alice, dto.UpdateProfileRequest{Bio: strPtr("cinephile")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "cinephile", *user.Bio)

	profile, err := svc.Users.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, profile.Role)
	assert.Equal(t, "cinephile", *profile.Bio)
}

func TestUserService_UpdateProfileValidatesIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	_, alice := seedUser(t, db, "alice", models.RoleUser)
	seedUser(t, db, "bob", models.RoleUser)

	_, err := svc.Users.UpdateProfile(ctx, alice, dto.UpdateProfileRequest{Username: strPtr("me")})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	_, err = svc.Users.UpdateProfile(ctx, alice, dto.UpdateProfileRequest{Username: strPtr("bob")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	_, err = svc.Users.UpdateProfile(ctx, alice, dto.UpdateProfileRequest{Email: strPtr("bob@example.com")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	// Keeping one's own username and email is not a conflict
	_, err = svc.Users.UpdateProfile(ctx, alice, dto.UpdateProfileRequest{Username: strPtr("alice"), Email: strPtr("alice@example.com")})
	assert.NoError(t, err)

	_, err = svc.Users.GetProfile(ctx, policy.Caller{})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestUserService_DirectoryOperations(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()

	created, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "dave", Email: "dave@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	_, err = svc.Users.Create(ctx, dto.CreateUserRequest{Username: "dave", Email: "dave2@example.com"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.Users.Create(ctx, dto.CreateUserRequest{Username: "erin", Email: "erin@example.com", Role: models.RoleModerator})
	require.NoError(t, err)

	users, total, err := svc.Users.List(ctx, dto.UserSearchQuery{Search: "da"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "dave", users[0].Username)

	_, total, err = svc.Users.List(ctx, dto.UserSearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	admin := models.RoleAdmin
	updated, err := svc.Users.Update(ctx, "dave", dto.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	bogus := models.Role("owner")
	_, err = svc.Users.Update(ctx, "dave", dto.UpdateUserRequest{Role: &bogus})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")

	require.NoError(t, svc.Users.Delete(ctx, "dave"))
	_, err = svc.Users.Get(ctx, "dave")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.Users.Delete(ctx, "dave"), services.ErrNotFound)
}

func TestUserService_DeleteCascadesContent(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	title := seedTitle(t, db, "Heat")
	_, alice := seedUser(t, db, "alice", models.RoleUser)
	_, bob := seedUser(t, db, "bob", models.RoleUser)

	review, err := svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "ok", Score: intPtr(7)})
	require.NoError(t, err)
	_, err = svc.Comments.Create(ctx, bob, title.ID, review.ID, dto.CommentRequest{Text: "reply"})
	require.NoError(t, err)

	require.NoError(t, svc.Users.Delete(ctx, "alice"))

	var reviews, comments int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, comments)
}

func TestAdminService_CreateSuperuser(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := newContainer(t, db, mailer)
	ctx := context.Background()

	user, err := newAdminService(db, mailer).CreateSuperuser(ctx, "root", "root@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsAdmin())

	code := mailer.lastCode(t, "root@example.com")
	_, err = svc.Auth.ExchangeToken(ctx, dto.TokenRequest{Username: "root", ConfirmationCode: code})
	assert.NoError(t, err)

	_, err = newAdminService(db, mailer).CreateSuperuser(ctx, "root", "other@example.com")
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAdminService_PromotesExistingUser(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	ctx := context.Background()
	existing, _ := seedUser(t, db, "alice", models.RoleUser)

	user, err := newAdminService(db, mailer).CreateSuperuser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsSuperuser)
	assert.Equal(t, 1, mailer.count())
}
