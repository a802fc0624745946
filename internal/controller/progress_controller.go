package controller

import (
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	Config          *config.Config
}

func NewProgressController(progressService *service.ProgressService, cfg *config.Config) *ProgressController {
	return &ProgressController{ProgressService: progressService, Config: cfg}
}

// CompletionResponse 标记完成接口的响应
type CompletionResponse struct {
	Message     string      `json:"message"`
	Certificate interface{} `json:"certificate"`
}

// @Summary 获取课程学习进度
// @Description 返回课程详情、各讲次观看状态、完成标记和证书。没有进度记录时返回空进度，不会创建记录
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.DataResponse
// @Failure 404 {object} util.MessageResponse
// @Router /progress/{courseId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	view, err := c.ProgressService.GetProgress(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.LogError(ctx, "get progress failed", err, zap.Uint("course_id", courseID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Message(ctx, http.StatusNotFound, "Course not found")
			return
		}
		util.Message(ctx, http.StatusInternalServerError, "Error fetching progress")
		return
	}

	data := gin.H{
		"courseDetails": view.CourseDetails,
		"progress":      view.Progress,
		"completed":     view.Completed,
	}
	// 没有进度记录时不返回 certificate 字段
	if view.HasRecord {
		data["certificate"] = view.Certificate
	}
	util.Data(ctx, data)
}

// @Summary 记录讲次已观看
// @Description 幂等操作，首次调用时创建进度记录
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param lectureId path int true "讲次ID"
// @Success 200 {object} util.MessageResponse
// @Router /progress/{courseId}/lecture/{lectureId}/view [post]
func (c *ProgressController) RecordLectureViewed(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}
	lectureID, err := util.ParseID(ctx.Param("lectureId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lecture ID")
		return
	}

	if err := c.ProgressService.RecordLectureViewed(ctx.Request.Context(), user.UserID, courseID, lectureID); err != nil {
		util.LogError(ctx, "record lecture view failed", err,
			zap.Uint("course_id", courseID), zap.Uint("lecture_id", lectureID))
		util.Message(ctx, http.StatusInternalServerError, "Error updating progress")
		return
	}

	util.Message(ctx, http.StatusOK, "Progress updated")
}

// @Summary 标记课程已完成
// @Description 签发一张新的结业证书，此前签发的证书作废
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} CompletionResponse
// @Failure 404 {object} util.MessageResponse
// @Failure 500 {object} util.MessageResponse
// @Router /progress/{courseId}/complete [post]
func (c *ProgressController) MarkCompleted(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	baseURL := util.RequestBaseURL(ctx, c.Config.Server.PublicBaseURL)
	cert, err := c.ProgressService.MarkCompleted(ctx.Request.Context(), user.UserID, courseID, baseURL)
	if err != nil {
		util.LogError(ctx, "mark completed failed", err, zap.Uint("course_id", courseID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Message(ctx, http.StatusNotFound, "User or course not found")
			return
		}
		util.Message(ctx, http.StatusInternalServerError, "Error generating certificate")
		return
	}

	ctx.JSON(http.StatusOK, CompletionResponse{
		Message:     "Course marked as completed successfully!",
		Certificate: cert,
	})
}

// @Summary 标记课程未完成
// @Description 只清除完成标记，已签发的证书保留
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.MessageResponse
// @Router /progress/{courseId}/incomplete [post]
func (c *ProgressController) MarkIncomplete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	if err := c.ProgressService.MarkIncomplete(ctx.Request.Context(), user.UserID, courseID); err != nil {
		util.LogError(ctx, "mark incomplete failed", err, zap.Uint("course_id", courseID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Message(ctx, http.StatusNotFound, "Progress not found")
			return
		}
		util.Message(ctx, http.StatusInternalServerError, "Error marking as incomplete")
		return
	}

	util.Message(ctx, http.StatusOK, "Marked as incomplete")
}
