package mailer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/marketbrief/internal/common"
)

func testConfig() common.SMTPConfig {
	return common.SMTPConfig{
		Host:     "smtp.gmail.com",
		Port:     465,
		Username: "sender@example.com",
		Password: "app-password",
		From:     "sender@example.com",
		FromName: "MarketBrief",
		UseTLS:   true,
	}
}

func TestIsConfigured(t *testing.T) {
	svc := NewService(testConfig(), common.GetLogger())
	assert.True(t, svc.IsConfigured())

	partial := testConfig()
	partial.Password = ""
	svc = NewService(partial, common.GetLogger())
	assert.False(t, svc.IsConfigured())
}

func TestSend_Unconfigured(t *testing.T) {
	svc := NewService(common.SMTPConfig{}, common.GetLogger())
	err := svc.Send([]string{"a@example.com"}, "subject", "body", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestBuildMessage_PlainText(t *testing.T) {
	svc := NewService(testConfig(), common.GetLogger())

	msg, err := svc.buildMessage([]string{"a@example.com"}, "Daily Report", "see attached", nil)
	require.NoError(t, err)

	assert.Contains(t, msg, "From: MarketBrief <sender@example.com>")
	assert.Contains(t, msg, "To: a@example.com")
	assert.Contains(t, msg, "Subject: Daily Report")
	assert.Contains(t, msg, "see attached")
	assert.NotContains(t, msg, "multipart")
}

func TestBuildMessage_WithAttachment(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recommendations.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ticker,label\nAAPL,Buy\n"), 0644))

	svc := NewService(testConfig(), common.GetLogger())
	msg, err := svc.buildMessage([]string{"a@example.com", "b@example.com"}, "Report", "body", []string{csvPath})
	require.NoError(t, err)

	assert.Contains(t, msg, "To: a@example.com, b@example.com")
	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, `Content-Type: text/csv; name="recommendations.csv"`)
	assert.Contains(t, msg, `Content-Disposition: attachment; filename="recommendations.csv"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
}

func TestBuildMessage_MissingAttachment(t *testing.T) {
	svc := NewService(testConfig(), common.GetLogger())
	_, err := svc.buildMessage([]string{"a@example.com"}, "Report", "body", []string{"/nonexistent/file.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read attachment")
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "text/csv", contentTypeFor("report.csv"))
	assert.Equal(t, "application/pdf", contentTypeFor("summary.PDF"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("data.bin"))
}

func TestEncodeBase64WithLineBreaks(t *testing.T) {
	long := strings.Repeat("abcdef", 50)
	encoded := encodeBase64WithLineBreaks([]byte(long))

	for _, line := range strings.Split(encoded, "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}
