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

func TestReviewService_CreateRecomputesRating(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	title := seedTitle(t, db, "The Matrix")
	_, alice := seedUser(t, db, "alice", models.RoleUser)
	_, bob := seedUser(t, db, "bob", models.RoleUser)

	got, err := svc.Catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating, "a title without reviews has no rating")

	review, err := svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "Great", Score: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, "alice", review.Author.Username)
	assert.False(t, review.PubDate.IsZero())

	got, err = svc.Catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 8.0, *got.Rating, 0.001)

	_, err = svc.Reviews.Create(ctx, bob, title.ID, dto.CreateReviewRequest{Text: "Meh", Score: intPtr(4)})
	require.NoError(t, err)

	got, err = svc.Catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 6.0, *got.Rating, 0.001)
}

func TestReviewService_CreateRejectsSecondReview(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	title := seedTitle(t, db, "Dune")
	_, alice := seedUser(t, db, "alice", models.RoleUser)

	_, err := svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "First", Score: intPtr(9)})
	require.NoError(t, err)

	_, err = svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "Second", Score: intPtr(1)})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "review")

	reviews, total, err := svc.Reviews.List(ctx, title.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "First", reviews[0].Text)

	got, err := svc.Catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, *got.Rating, 0.001)
}

func TestReviewService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	title := seedTitle(t, db, "Alien")
	_, alice := seedUser(t, db, "alice", models.RoleUser)

	for _, score := range []int{0, 11, -3} {
		_, err := svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "x", Score: intPtr(score)})
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr, "score %d", score)
		assert.Contains(t, verr.Fields, "score")
	}

	_, err := svc.Reviews.Create(ctx, alice, title.ID+100, dto.CreateReviewRequest{Text: "x", Score: intPtr(5)})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Reviews.Create(ctx, policy.Caller{}, title.ID, dto.CreateReviewRequest{Text: "x", Score: intPtr(5)})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestReviewService_UpdateAndDeletePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	title := seedTitle(t, db, "Solaris")
	_, alice := seedUser(t, db, "alice", models.RoleUser)
	_, bob := seedUser(t, db, "bob", models.RoleUser)
	_, mod := seedUser(t, db, "mod", models.RoleModerator)

	review, err := svc.Reviews.Create(ctx, alice, title.ID, dto.CreateReviewRequest{Text: "Slow", Score: intPtr(6)})
	require.NoError(t, err)

	_, err = svc.Reviews.Update(ctx, bob, title.ID, review.ID, dto.UpdateReviewRequest{Text: strPtr("hijacked")})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	updated, err := svc.Reviews.Update(ctx, alice, title.ID, review.ID, dto.UpdateReviewRequest{Text: strPtr("Slow but deep"), Score: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Slow but deep", updated.Text)
	assert.Equal(t, 9, updated.Score)

	_, err = svc.Reviews.Update(ctx, alice, title.ID, review.ID, dto.UpdateReviewRequest{Score: intPtr(42)})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	// The rating is only recomputed when a review is created
	got, err := svc.Catalog.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, *got.Rating, 0.001)

	assert.ErrorIs(t, svc.Reviews.Delete(ctx, bob, title.ID, review.ID), services.ErrPermissionDenied)
	require.NoError(t, svc.Reviews.Delete(ctx, mod, title.ID, review.ID))

	_, err = svc.Reviews.Get(ctx, title.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReviewService_GetScopedToTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newContainer(t, db, &recordingMailer{})
	ctx := context.Background()
	first := seedTitle(t, db, "First")
	second := seedTitle(t, db, "Second")
	_, alice := seedUser(t, db, "alice", models.RoleUser)

	review, err := svc.Reviews.Create(ctx, alice, first.ID, dto.CreateReviewRequest{Text: "ok", Score: intPtr(5)})
	require.NoError(t, err)

	_, err = svc.Reviews.Get(ctx, second.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
