package controller

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ReviewResponse 单条评价的响应
type ReviewResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Review  *model.Review `json:"review"`
}

// ReviewListResponse 课程评价列表的响应
type ReviewListResponse struct {
	Success bool           `json:"success"`
	Reviews []model.Review `json:"reviews"`
}

const reviewNotFound = "Review not found or not authorized"

// @Summary 提交课程评价
// @Description 只有完成购买的用户可以评价，每门课只能评价一次
// @Tags 课程评价
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateReviewRequest true "评价内容"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} util.ResultResponse
// @Failure 403 {object} util.ResultResponse
// @Router /reviews/create [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Fail(ctx, http.StatusBadRequest, "Rating must be between 1 and 5 and courseId is required.")
		return
	}

	review, err := c.ReviewService.CreateReview(ctx.Request.Context(), user.UserID, req.CourseID, req.Rating, req.Comment)
	if err != nil {
		util.LogError(ctx, "create review failed", err, zap.Uint("course_id", req.CourseID))
		switch util.StatusFor(err) {
		case http.StatusForbidden:
			util.Fail(ctx, http.StatusForbidden, "You must purchase the course to leave a review.")
		case http.StatusBadRequest:
			util.Fail(ctx, http.StatusBadRequest, "You have already reviewed this course.")
		default:
			util.Fail(ctx, http.StatusInternalServerError, "Failed to submit review.")
		}
		return
	}

	ctx.JSON(http.StatusCreated, ReviewResponse{
		Success: true,
		Message: "Review submitted successfully.",
		Review:  review,
	})
}

// @Summary 课程评价列表
// @Description 按创建时间倒序，附带评价人的姓名和头像
// @Tags 课程评价
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} ReviewListResponse
// @Router /reviews/{courseId} [get]
func (c *ReviewController) ListCourseReviews(ctx *gin.Context) {
	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.Fail(ctx, http.StatusBadRequest, "Invalid course ID")
		return
	}

	reviews, err := c.ReviewService.ListReviewsForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		util.LogError(ctx, "list reviews failed", err, zap.Uint("course_id", courseID))
		util.Fail(ctx, http.StatusInternalServerError, "Failed to fetch reviews.")
		return
	}

	ctx.JSON(http.StatusOK, ReviewListResponse{Success: true, Reviews: reviews})
}

// @Summary 修改课程评价
// @Description 只能修改自己的评价
// @Tags 课程评价
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "评价ID"
// @Param body body service.UpdateReviewRequest true "评价内容"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} util.ResultResponse
// @Router /reviews/{id} [put]
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	reviewID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, http.StatusNotFound, reviewNotFound)
		return
	}

	var req service.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Fail(ctx, http.StatusBadRequest, "Rating must be between 1 and 5.")
		return
	}

	review, err := c.ReviewService.UpdateReview(ctx.Request.Context(), reviewID, user.UserID, req.Rating, req.Comment)
	if err != nil {
		util.LogError(ctx, "update review failed", err, zap.Uint("review_id", reviewID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Fail(ctx, http.StatusNotFound, reviewNotFound)
			return
		}
		util.Fail(ctx, http.StatusInternalServerError, "Failed to update review.")
		return
	}

	ctx.JSON(http.StatusOK, ReviewResponse{
		Success: true,
		Message: "Review updated successfully.",
		Review:  review,
	})
}

// @Summary 删除课程评价
// @Description 只能删除自己的评价，删除后课程平均分随之更新
// @Tags 课程评价
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "评价ID"
// @Success 200 {object} util.ResultResponse
// @Failure 404 {object} util.ResultResponse
// @Router /reviews/{id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	reviewID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, http.StatusNotFound, reviewNotFound)
		return
	}

	if err := c.ReviewService.DeleteReview(ctx.Request.Context(), reviewID, user.UserID); err != nil {
		util.LogError(ctx, "delete review failed", err, zap.Uint("review_id", reviewID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Fail(ctx, http.StatusNotFound, reviewNotFound)
			return
		}
		util.Fail(ctx, http.StatusInternalServerError, "Failed to delete review.")
		return
	}

	ctx.JSON(http.StatusOK, util.ResultResponse{Success: true, Message: "Review deleted successfully."})
}
