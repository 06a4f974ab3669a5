package v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/pkg/models"
	"github.com/fintrack/backend/pkg/report"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// maxReportSize is the largest report that can be uploaded.
const maxReportSize = 10 << 20

// pdfMagic is the start of every PDF file.
var pdfMagic = []byte("%PDF-")

// reportLanguages are the languages numbers in reports can be formatted for.
var reportLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Portuguese,
	language.Dutch,
})

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/pdf", httputil.OptionsGet)
	r.GET("/pdf", GetReportPDF)

	r.OPTIONS("/send", httputil.OptionsPost)
	r.POST("/send", co.SendReport)
}

// languageOf returns the language for the Accept-Language header of the request.
func languageOf(c *gin.Context) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}

	tag, _, _ := reportLanguages.Match(tags...)
	return tag
}

// renderReport renders the report for the user and the date range.
func renderReport(c *gin.Context, start, end types.Date) ([]byte, error) {
	from, to, err := dateRange(start, end, time.Now())
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	err = transactionsInRange(models.DB, auth.UserID(c), from, to).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = report.Render(&buf, report.Report{
		Title:        "Financial report",
		Owner:        auth.Email(c),
		Start:        from,
		End:          to,
		Dashboard:    aggregate.Summarize(transactions),
		Transactions: transactions,
		Language:     languageOf(c),
	})
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("rendering report")
		return nil, models.ErrGeneral
	}

	return buf.Bytes(), nil
}

// @Summary		Get PDF report
// @Description	Renders a PDF report with the summary, the expenses per category and all transactions of the date range
// @Tags			Reports
// @Produce		application/pdf
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			startDate	query		string	false	"First day to include. Defaults to the first day of the current month."
// @Param			endDate		query		string	false	"Last day to include. Defaults to the last day of the current month."
// @Router			/v1/reports/pdf [get]
func GetReportPDF(c *gin.Context) {
	var filter ReportQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	pdf, err := renderReport(c, filter.StartDate, filter.EndDate)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.DefaultFilename))
	c.Data(http.StatusOK, report.ContentType, pdf)
}

// uploadedReport returns the uploaded report file. It returns nil when no
// file was uploaded.
func uploadedReport(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("report")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Join(httputil.ErrInvalidBody, err)
	}

	if header.Size > maxReportSize {
		return nil, errReportFileInvalid
	}

	f, err := header.Open()
	if err != nil {
		return nil, errors.Join(httputil.ErrInvalidBody, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxReportSize))
	if err != nil {
		return nil, errors.Join(httputil.ErrInvalidBody, err)
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, errReportFileInvalid
	}

	return data, nil
}

// @Summary		Send report
// @Description	Sends a PDF report by e-mail. An uploaded PDF in the "report" field is attached as it is, otherwise the report for the date range is rendered.
// @Tags			Reports
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ReportSendResponse
// @Failure		400			{object}	ReportSendResponse
// @Failure		500			{object}	ReportSendResponse
// @Failure		503			{object}	ReportSendResponse
// @Param			email		formData	string	true	"Recipient"
// @Param			subject		formData	string	false	"Subject of the e-mail"
// @Param			text		formData	string	false	"Plain text body of the e-mail"
// @Param			startDate	formData	string	false	"First day of a rendered report"
// @Param			endDate		formData	string	false	"Last day of a rendered report"
// @Param			report		formData	file	false	"The report to send"
// @Router			/v1/reports/send [post]
func (co Controller) SendReport(c *gin.Context) {
	if co.Mailer == nil {
		e := mail.ErrNotConfigured.Error()
		c.JSON(status(mail.ErrNotConfigured), ReportSendResponse{
			Error: &e,
		})
		return
	}

	var form ReportSendForm
	if err := c.ShouldBind(&form); err != nil {
		e := errors.Join(httputil.ErrInvalidBody, err).Error()
		c.JSON(http.StatusBadRequest, ReportSendResponse{
			Error: &e,
		})
		return
	}

	if strings.TrimSpace(form.Email) == "" {
		e := mail.ErrRecipientMissing.Error()
		c.JSON(status(mail.ErrRecipientMissing), ReportSendResponse{
			Error: &e,
		})
		return
	}

	pdf, err := uploadedReport(c)
	if err == nil && pdf == nil {
		pdf, err = renderReport(c, form.StartDate, form.EndDate)
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportSendResponse{
			Error: &e,
		})
		return
	}

	message := mail.Message{
		From:    co.Mail.From,
		To:      form.Email,
		Subject: form.Subject,
		Text:    form.Text,
		Attachments: []mail.Attachment{
			{
				Name:        report.DefaultFilename,
				ContentType: report.ContentType,
				Data:        pdf,
			},
		},
	}

	if message.Subject == "" {
		message.Subject = co.Mail.Subject
	}
	if message.Text == "" {
		message.Text = co.Mail.Text
	}

	id, err := co.Mailer.Send(c.Request.Context(), message)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("sending report")

		// Only configuration and recipient errors are helpful for users
		if !errors.Is(err, mail.ErrNotConfigured) && !errors.Is(err, mail.ErrRecipientMissing) && !errors.Is(err, mail.ErrRecipientInvalid) {
			err = errMailFailed
		}

		e := err.Error()
		c.JSON(status(err), ReportSendResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ReportSendResponse{
		Data: &ReportSent{
			Message:   "Email sent successfully",
			MessageID: id,
		},
	})
}
