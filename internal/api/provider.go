package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/Amanjarngal/localfix-client/internal/domain"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// FileAttachment is one uploaded document in an enrollment submission.
type FileAttachment struct {
	Field string
	Name  string
	MIME  string
	Data  []byte
}

// EnrollmentForm is the fully serialized wizard draft: plain text fields
// plus up to three file attachments, sent as a single multipart payload.
type EnrollmentForm struct {
	Fields map[string]string
	Files  []FileAttachment
}

type providerStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// ListProviders returns all enrollment applications. Admin surface only.
func (c *Client) ListProviders(ctx context.Context) ([]domain.ProviderApplication, error) {
	var apps []domain.ProviderApplication
	if _, err := c.getJSON(ctx, "/api/providers", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateProviderStatus moves a pending application to approved or
// rejected. The transition is one-way; the server rejects repeats.
func (c *Client) UpdateProviderStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.ProviderApplication, error) {
	var app domain.ProviderApplication
	if _, err := c.sendJSON(ctx, http.MethodPatch, "/api/providers/status/"+url.PathEscape(id), providerStatusRequest{Status: status}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// EnrollProvider submits a complete application in one multipart POST.
// There is no partial resubmission; a failed submission is retried whole.
func (c *Client) EnrollProvider(ctx context.Context, form EnrollmentForm) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range form.Fields {
		if err := writer.WriteField(field, value); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	for _, file := range form.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
		mime := file.MIME
		if mime == "" {
			mime = "application/octet-stream"
		}
		header.Set("Content-Type", mime)
		part, err := writer.CreatePart(header)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.NewInternalError(err)
	}

	_, err := c.do(ctx, http.MethodPost, "/api/providers/enroll", writer.FormDataContentType(), &buf)
	return err
}
