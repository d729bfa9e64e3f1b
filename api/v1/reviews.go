package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/middleware"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/services"
)

// ReviewController handles reviews and their comments
type ReviewController struct {
	reviewService  *services.ReviewService
	commentService *services.CommentService
}

// NewReviewController creates a new review controller
func NewReviewController(reviewService *services.ReviewService, commentService *services.CommentService) *ReviewController {
	return &ReviewController{reviewService: reviewService, commentService: commentService}
}

// RegisterRoutes registers review and comment routes
func (rc *ReviewController) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/titles/:titleId/reviews", middleware.Authorize(policy.Content))
	{
		reviews.GET("", rc.ListReviews)
		reviews.POST("", rc.CreateReview)
		reviews.GET("/:reviewId", rc.GetReview)
		reviews.PATCH("/:reviewId", rc.UpdateReview)
		reviews.DELETE("/:reviewId", rc.DeleteReview)

		reviews.GET("/:reviewId/comments", rc.ListComments)
		reviews.POST("/:reviewId/comments", rc.CreateComment)
		reviews.GET("/:reviewId/comments/:commentId", rc.GetComment)
		reviews.PATCH("/:reviewId/comments/:commentId", rc.UpdateComment)
		reviews.DELETE("/:reviewId/comments/:commentId", rc.DeleteComment)
	}
}

// ListReviews retrieves the reviews of a title
func (rc *ReviewController) ListReviews(c *gin.Context) {
	titleID, ok := idParam(c, "titleId", "Title")
	if !ok {
		return
	}
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpx.BindError(c, err)
		return
	}
	query = query.Normalize()

	reviews, total, err := rc.reviewService.List(c.Request.Context(), titleID, query)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}

	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, dto.NewReviewResponse(&reviews[i]))
	}
	httpx.Success(c, http.StatusOK, dto.NewListResponse(results, total, query))
}

// CreateReview posts the caller's review of a title
func (rc *ReviewController) CreateReview(c *gin.Context) {
	titleID, ok := idParam(c, "titleId", "Title")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	review, err := rc.reviewService.Create(c.Request.Context(), middleware.CallerFrom(c), titleID, req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewReviewResponse(review))
}

// GetReview retrieves one review
func (rc *ReviewController) GetReview(c *gin.Context) {
	titleID, reviewID, ok := reviewParams(c)
	if !ok {
		return
	}

	review, err := rc.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewReviewResponse(review))
}

// UpdateReview patches a review
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	titleID, reviewID, ok := reviewParams(c)
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	review, err := rc.reviewService.Update(c.Request.Context(), middleware.CallerFrom(c), titleID, reviewID, req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewReviewResponse(review))
}

// DeleteReview removes a review and its comments
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	titleID, reviewID, ok := reviewParams(c)
	if !ok {
		return
	}

	if err := rc.reviewService.Delete(c.Request.Context(), middleware.CallerFrom(c), titleID, reviewID); err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.NoContent(c)
}

// ListComments retrieves the comments of a review
func (rc *ReviewController) ListComments(c *gin.Context) {
	titleID, reviewID, ok := reviewParams(c)
	if !ok {
		return
	}
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpx.BindError(c, err)
		return
	}
	query = query.Normalize()

	comments, total, err := rc.commentService.List(c.Request.Context(), titleID, reviewID, query)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}

	results := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, dto.NewCommentResponse(&comments[i]))
	}
	httpx.Success(c, http.StatusOK, dto.NewListResponse(results, total, query))
}

// CreateComment posts the caller's comment on a review
func (rc *ReviewController) CreateComment(c *gin.Context) {
	titleID, reviewID, ok := reviewParams(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	comment, err := rc.commentService.Create(c.Request.Context(), middleware.CallerFrom(c), titleID, reviewID, req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewCommentResponse(comment))
}

// GetComment retrieves one comment
func (rc *ReviewController) GetComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentParams(c)
	if !ok {
		return
	}

	comment, err := rc.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewCommentResponse(comment))
}

// UpdateComment patches a comment
func (rc *ReviewController) UpdateComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentParams(c)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	comment, err := rc.commentService.Update(c.Request.Context(), middleware.CallerFrom(c), titleID, reviewID, commentID, req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewCommentResponse(comment))
}

// DeleteComment removes a comment
func (rc *ReviewController) DeleteComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentParams(c)
	if !ok {
		return
	}

	if err := rc.commentService.Delete(c.Request.Context(), middleware.CallerFrom(c), titleID, reviewID, commentID); err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.NoContent(c)
}

func reviewParams(c *gin.Context) (titleID, reviewID uint, ok bool) {
	if titleID, ok = idParam(c, "titleId", "Title"); !ok {
		return
	}
	reviewID, ok = idParam(c, "reviewId", "Review")
	return
}

func commentParams(c *gin.Context) (titleID, reviewID, commentID uint, ok bool) {
	if titleID, reviewID, ok = reviewParams(c); !ok {
		return
	}
	commentID, ok = idParam(c, "commentId", "Comment")
	return
}
