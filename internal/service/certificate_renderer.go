package service

import (
	"bytes"
	"coursehub_backend/internal/util"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// A4 横版，150 DPI
const (
	certificateWidth  = 1754
	certificateHeight = 1240
	pageWidthMM       = 297.0
	pageHeightMM      = 210.0

	// 内边框左右各留 120px
	textMaxWidth = certificateWidth - 240
	lineSpacing  = 1.25

	nameMaxSize   = 72.0
	nameMinSize   = 36.0
	nameMaxHeight = 130.0

	titleMaxSize   = 58.0
	titleMinSize   = 28.0
	titleMaxHeight = 170.0
)

var (
	certificateBackground = color.RGBA{0xf8, 0xf9, 0xfa, 0xff}
	certificateInk        = color.RGBA{0x33, 0x33, 0x33, 0xff}
	certificateAccent     = color.RGBA{0x00, 0x7b, 0xff, 0xff}
	certificateMuted      = color.RGBA{0x55, 0x55, 0x55, 0xff}
)

// CertificateData 证书页面上的内容
type CertificateData struct {
	StudentName   string
	CourseTitle   string
	CertificateID string
	IssuedAt      time.Time
}

// CertificateRenderer 把证书绘制成单页 PDF。
// 只持有解析好的字体，字号对应的 font.Face 每次渲染时新建，可以并发使用
type CertificateRenderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func NewCertificateRenderer() (*CertificateRenderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &CertificateRenderer{regular: regular, bold: bold}, nil
}

func (r *CertificateRenderer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// RenderPNG 绘制证书页面
func (r *CertificateRenderer) RenderPNG(data CertificateData) ([]byte, error) {
	dc := gg.NewContext(certificateWidth, certificateHeight)
	w, h := float64(certificateWidth), float64(certificateHeight)
	cx := w / 2

	dc.SetColor(certificateBackground)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(certificateAccent)
	dc.SetLineWidth(8)
	dc.DrawRectangle(48, 48, w-96, h-96)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(70, 70, w-140, h-140)
	dc.Stroke()

	dc.SetColor(certificateInk)
	dc.SetFontFace(r.face(r.bold, 80))
	title := "Certificate of Completion"
	tw, _ := dc.MeasureString(title)
	dc.DrawStringAnchored(title, cx, 260, 0.5, 0.5)
	dc.SetLineWidth(3)
	dc.DrawLine(cx-tw/2, 310, cx+tw/2, 310)
	dc.Stroke()

	dc.SetFontFace(r.face(r.regular, 44))
	dc.DrawStringAnchored("This certificate is proudly presented to", cx, 430, 0.5, 0.5)

	// 姓名和课程名长度不定，在固定区域内换行并缩小字号
	r.fitText(r.bold, data.StudentName, nameMaxSize, nameMinSize, nameMaxHeight).draw(dc, cx, 540)

	dc.SetFontFace(r.face(r.regular, 44))
	dc.DrawStringAnchored("for successfully completing the course", cx, 650, 0.5, 0.5)

	dc.SetColor(certificateAccent)
	r.fitText(r.bold, data.CourseTitle, titleMaxSize, titleMinSize, titleMaxHeight).draw(dc, cx, 800)

	dc.SetColor(certificateMuted)
	dc.SetFontFace(r.face(r.regular, 28))
	dc.DrawStringAnchored("Certificate ID: "+data.CertificateID, cx, 1010, 0.5, 0.5)
	dc.DrawStringAnchored("Date: "+data.IssuedAt.Format(util.CertificateDate), cx, 1060, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode certificate png: %w", err)
	}
	return buf.Bytes(), nil
}

// textBlock 换行后的多行文本，按中心点绘制
type textBlock struct {
	face       font.Face
	lines      []string
	lineHeight float64
}

func (b textBlock) height() float64 {
	return float64(len(b.lines)) * b.lineHeight
}

func (b textBlock) draw(dc *gg.Context, cx, cy float64) {
	dc.SetFontFace(b.face)
	top := cy - float64(len(b.lines)-1)*b.lineHeight/2
	for i, line := range b.lines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*b.lineHeight, 0.5, 0.5)
	}
}

// fitText 从 maxSize 开始逐级缩小字号，直到换行后的总高度不超过 maxHeight。
// 每一行都不超过 textMaxWidth；最小字号下仍然过高时按最小字号输出
func (r *CertificateRenderer) fitText(f *truetype.Font, text string, maxSize, minSize, maxHeight float64) textBlock {
	var block textBlock
	for size := maxSize; size >= minSize; size -= 2 {
		face := r.face(f, size)
		block = textBlock{
			face:       face,
			lines:      wrapText(face, text, textMaxWidth),
			lineHeight: size * lineSpacing,
		}
		if block.height() <= maxHeight {
			break
		}
	}
	return block
}

func measureText(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// wrapText 按单词贪心换行，单个词超宽时按字符切开
func wrapText(face font.Face, text string, maxWidth float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for _, part := range splitWord(face, word, maxWidth) {
			candidate := part
			if line != "" {
				candidate = line + " " + part
			}
			if line == "" || measureText(face, candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = part
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func splitWord(face font.Face, word string, maxWidth float64) []string {
	if measureText(face, word) <= maxWidth {
		return []string{word}
	}

	var parts []string
	current := ""
	for _, c := range word {
		next := current + string(c)
		if current != "" && measureText(face, next) > maxWidth {
			parts = append(parts, current)
			current = string(c)
			continue
		}
		current = next
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// RenderPDF 把证书页面嵌入一页 A4 横版 PDF
func (r *CertificateRenderer) RenderPDF(data CertificateData) ([]byte, error) {
	png, err := r.RenderPNG(data)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", true)
	pdf.SetSubject(data.CertificateID, true)
	pdf.SetAuthor(data.StudentName, true)
	pdf.SetCreationDate(data.IssuedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opt, bytes.NewReader(png))
	pdf.ImageOptions("certificate", 0, 0, pageWidthMM, pageHeightMM, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write certificate pdf: %w", err)
	}
	return out.Bytes(), nil
}
