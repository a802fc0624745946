package controller

import (
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// CertificateInfo 证书核验结果
type CertificateInfo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	StudentName string    `json:"studentName"`
	CourseTitle string    `json:"courseTitle"`
	IssuedAt    time.Time `json:"issuedAt"`
	Valid       bool      `json:"valid"`
}

type CertificateVerifyResponse struct {
	Success     bool            `json:"success"`
	Certificate CertificateInfo `json:"certificate"`
}

// @Summary 下载证书
// @Description 按证书编号返回 PDF 文件，无需登录
// @Tags 证书
// @Produce application/pdf
// @Param file path string true "证书文件名，格式为 {id}.pdf"
// @Success 200 {file} binary
// @Failure 404 {object} util.MessageResponse
// @Router /certificates/{file} [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	file := ctx.Param("file")
	if !strings.HasSuffix(file, ".pdf") {
		util.Message(ctx, http.StatusNotFound, "Certificate not found")
		return
	}
	certificateID := strings.TrimSuffix(file, ".pdf")

	rc, err := c.CertificateService.Open(ctx.Request.Context(), certificateID)
	if err != nil {
		util.LogError(ctx, "open certificate failed", err, zap.String("certificate_id", certificateID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Message(ctx, http.StatusNotFound, "Certificate not found")
			return
		}
		util.Message(ctx, http.StatusInternalServerError, "Error loading certificate")
		return
	}
	defer rc.Close()

	ctx.DataFromReader(http.StatusOK, -1, util.MimePDF, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + file + `"`,
	})
}

// @Summary 核验证书
// @Description 查询证书台账，重新签发后旧证书 valid 为 false
// @Tags 证书
// @Produce json
// @Param id path string true "证书编号"
// @Success 200 {object} CertificateVerifyResponse
// @Failure 404 {object} util.ResultResponse
// @Router /certificates/{id} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	certificateID := ctx.Param("id")

	record, err := c.CertificateService.Lookup(ctx.Request.Context(), certificateID)
	if err != nil {
		util.LogError(ctx, "verify certificate failed", err, zap.String("certificate_id", certificateID))
		if util.StatusFor(err) == http.StatusNotFound {
			util.Fail(ctx, http.StatusNotFound, "Certificate not found")
			return
		}
		util.Fail(ctx, http.StatusInternalServerError, "Error verifying certificate")
		return
	}

	ctx.JSON(http.StatusOK, CertificateVerifyResponse{
		Success: true,
		Certificate: CertificateInfo{
			ID:          record.ID,
			URL:         record.URL,
			StudentName: record.StudentName,
			CourseTitle: record.CourseTitle,
			IssuedAt:    record.IssuedAt,
			Valid:       record.Valid(),
		},
	})
}
