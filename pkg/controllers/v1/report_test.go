package v1_test

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/fintrack/backend/pkg/controllers/v1"
	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var uploadedPDF = []byte("%PDF-1.4\n%uploaded\n")

func (suite *TestSuiteStandard) TestReportPDF() {
	_ = suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(12), Category: "Food", Date: date("2024-03-05")})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/pdf?startDate=2024-03-01&endDate=2024-03-31", nil, suite.headers, map[string]string{"Accept-Language": "de-DE,de;q=0.9"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.Assert().Equal("application/pdf", r.Header().Get("Content-Type"))
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "report.pdf")
	suite.Assert().True(bytes.HasPrefix(r.Body.Bytes(), []byte("%PDF-")), "response is not a PDF")
}

func (suite *TestSuiteStandard) TestReportPDFFails() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/pdf?startDate=2024-03-31&endDate=2024-03-01", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/pdf?startDate=yesterday", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/pdf", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestReportSendRendered() {
	mailer := &test.Mailer{}
	_ = suite.createTestTransaction(suite.T(), suite.headers, v1.TransactionEditable{Amount: decimal.NewFromInt(12), Category: "Food", Date: date("2024-03-05")})

	body, headers := test.Multipart(suite.T(), map[string]string{
		"email":     "accountant@example.com",
		"startDate": "2024-03-01",
		"endDate":   "2024-03-31",
	}, "", "", nil)

	r := test.RequestWith(suite.T(), test.Controller(mailer), http.MethodPost, "http://example.com/v1/reports/send", body, suite.headers, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReportSendResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Email sent successfully", response.Data.Message)
	suite.Assert().Equal("<1@test.example.com>", response.Data.MessageID)

	messages := mailer.Messages()
	suite.Require().Len(messages, 1)

	m := messages[0]
	suite.Assert().Equal("accountant@example.com", m.To)
	suite.Assert().Equal("reports@example.com", m.From)
	suite.Assert().Equal("Your report", m.Subject, "default subject is not used")
	suite.Assert().Equal("The report is attached.", m.Text, "default text is not used")
	suite.Require().Len(m.Attachments, 1)
	suite.Assert().Equal("report.pdf", m.Attachments[0].Name)
	suite.Assert().Equal("application/pdf", m.Attachments[0].ContentType)
	suite.Assert().True(bytes.HasPrefix(m.Attachments[0].Data, []byte("%PDF-")))
}

func (suite *TestSuiteStandard) TestReportSendUploaded() {
	mailer := &test.Mailer{}

	body, headers := test.Multipart(suite.T(), map[string]string{
		"email":   "accountant@example.com",
		"subject": "March",
		"text":    "See attachment",
	}, "report", "march.pdf", uploadedPDF)

	r := test.RequestWith(suite.T(), test.Controller(mailer), http.MethodPost, "http://example.com/v1/reports/send", body, suite.headers, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	messages := mailer.Messages()
	suite.Require().Len(messages, 1)
	suite.Assert().Equal("March", messages[0].Subject)
	suite.Assert().Equal("See attachment", messages[0].Text)
	suite.Require().Len(messages[0].Attachments, 1)
	suite.Assert().Equal(uploadedPDF, messages[0].Attachments[0].Data, "uploaded file is not attached as it is")
}

func (suite *TestSuiteStandard) TestReportSendFails() {
	tests := []struct {
		name   string
		mailer mail.Sender
		fields map[string]string
		file   []byte
		status int
		err    string
	}{
		{"Not configured", nil, map[string]string{"email": "a@example.com"}, uploadedPDF, http.StatusServiceUnavailable, mail.ErrNotConfigured.Error()},
		{"No recipient", &test.Mailer{}, map[string]string{"subject": "Report"}, uploadedPDF, http.StatusBadRequest, mail.ErrRecipientMissing.Error()},
		{"Not a PDF", &test.Mailer{}, map[string]string{"email": "a@example.com"}, []byte("GIF89a"), http.StatusBadRequest, "the uploaded report must be a PDF file"},
		{"Invalid range", &test.Mailer{}, map[string]string{"email": "a@example.com", "startDate": "2024-03-31", "endDate": "2024-03-01"}, nil, http.StatusBadRequest, "the endDate must not be before the startDate"},
		{"Sending fails", &test.Mailer{Err: errors.New("dial tcp: connection refused")}, map[string]string{"email": "a@example.com"}, uploadedPDF, http.StatusInternalServerError, "failed to send email"},
		{"Sending not configured", &test.Mailer{Err: mail.ErrNotConfigured}, map[string]string{"email": "a@example.com"}, uploadedPDF, http.StatusServiceUnavailable, mail.ErrNotConfigured.Error()},
		{"Invalid recipient", mail.SMTP{Host: "127.0.0.1", Port: 1}, map[string]string{"email": "not an address"}, uploadedPDF, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.Multipart(t, tt.fields, "report", "report.pdf", tt.file)

			r := test.RequestWith(t, test.Controller(tt.mailer), http.MethodPost, "http://example.com/v1/reports/send", body, suite.headers, headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.err == "" {
				assert.True(t, strings.HasPrefix(test.DecodeError(t, r.Body.Bytes()), mail.ErrRecipientInvalid.Error()))
				return
			}
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestReportOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/reports/pdf", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/reports/send", nil, suite.headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}
