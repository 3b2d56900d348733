// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package inquiry defines the contact request a visitor sends to a photographer.

Core Responsibility:

  - Contract: An [Inquiry] needs a name, a syntactically valid email, and a message.
  - Delivery: A [Submitter] hands the inquiry on. The bundled [LogSubmitter]
    only acknowledges locally; there is no outbound transport.
*/
package inquiry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/photodir/internal/platform/apperr"
	"github.com/taibuivan/photodir/internal/platform/validate"
	"github.com/taibuivan/photodir/pkg/uuid"
)

// ErrSubmissionFailed is returned when a valid inquiry could not be delivered.
var ErrSubmissionFailed = apperr.UpstreamUnavailable("Inquiry could not be sent. Please try again.")

// Field names used in validation details.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Length limits for free-text fields.
const (
	maxNameLength    = 120
	maxEmailLength   = 254
	maxMessageLength = 4000
)

// # Entities

// Form is the visitor-supplied part of an inquiry.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Inquiry is a form addressed to one photographer.
type Inquiry struct {
	PhotographerID int `json:"photographer_id"`
	Form
}

// Receipt acknowledges a delivered inquiry.
type Receipt struct {
	ID             string    `json:"id"`
	PhotographerID int       `json:"photographer_id"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Validate checks the submission contract.
func (i Inquiry) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldName, i.Name).MaxLen(FieldName, i.Name, maxNameLength)
	validator.Required(FieldEmail, i.Email).MaxLen(FieldEmail, i.Email, maxEmailLength)
	if strings.TrimSpace(i.Email) != "" {
		validator.Email(FieldEmail, i.Email)
	}
	validator.Required(FieldMessage, i.Message).MaxLen(FieldMessage, i.Message, maxMessageLength)

	return validator.Err()
}

// # Delivery

// Submitter delivers validated inquiries.
//
// Implementations return [ErrSubmissionFailed] (optionally with a cause) when
// delivery fails.
type Submitter interface {
	Submit(ctx context.Context, inquiry Inquiry) (Receipt, error)
}

// LogSubmitter acknowledges inquiries locally and records them in the log.
type LogSubmitter struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewLogSubmitter constructs a [LogSubmitter].
func NewLogSubmitter(logger *slog.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger, now: time.Now}
}

// Submit logs the inquiry and returns a receipt. The message body is not
// logged, only its length.
func (submitter *LogSubmitter) Submit(ctx context.Context, inquiry Inquiry) (Receipt, error) {
	receipt := Receipt{
		ID:             uuid.New(),
		PhotographerID: inquiry.PhotographerID,
		SubmittedAt:    submitter.now().UTC(),
	}

	submitter.logger.InfoContext(ctx, "inquiry_acknowledged",
		slog.String("inquiry_id", receipt.ID),
		slog.Int("photographer_id", inquiry.PhotographerID),
		slog.Int("message_length", len(inquiry.Message)),
	)

	return receipt, nil
}
