package notify

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Paths the endpoint is mounted on.
const (
	NetlifyPath = "/.netlify/functions/send-quote-autoreply"
	APIPath     = "/api/quote"
)

// maxBodyBytes bounds the accepted form payload.
const maxBodyBytes = 64 << 10

// SuccessMessage is returned once the auto-reply has been accepted by the provider.
const SuccessMessage = "Auto-reply email sent successfully."

// Response is the JSON body of a successful submission.
type Response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	MessageID  string `json:"messageId"`
	Recipient  string `json:"recipient"`
	TemplateID int    `json:"templateId"`
}

// Handler serves the quote-request notification endpoint.
type Handler struct {
	mailer     Mailer
	templateID int
	logger     *zap.Logger
}

// NewHandler creates a handler. A templateID of zero uses DefaultTemplateID.
func NewHandler(mailer Mailer, templateID int, logger *zap.Logger) *Handler {
	if templateID <= 0 {
		templateID = DefaultTemplateID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mailer: mailer, templateID: templateID, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST.")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body could not be read.")
		return
	}

	sub, err := ParseSubmission(body)
	if err == nil {
		err = sub.Validate()
	}
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			h.logger.Warn("rejected quote submission", zap.String("field", reqErr.Field), zap.String("reason", reqErr.Message))
			writeError(w, http.StatusBadRequest, reqErr.Message)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.mailer == nil {
		h.logger.Error("brevo api key is not set")
		writeError(w, http.StatusInternalServerError, "Server configuration error: Brevo API key not found.")
		return
	}

	result, err := h.mailer.Send(r.Context(), sub.EmailRequest(h.templateID))
	if err != nil {
		var provErr *ProviderError
		switch {
		case errors.Is(err, ErrMissingAPIKey):
			h.logger.Error("brevo api key is not set")
			writeError(w, http.StatusInternalServerError, "Server configuration error: Brevo API key not found.")
		case errors.As(err, &provErr):
			h.logger.Error("brevo api error", zap.Int("status", provErr.StatusCode), zap.String("body", provErr.Body))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Failed to send email via Brevo.",
				"details": provErr.Body,
			})
		default:
			h.logger.Error("quote auto-reply failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Internal server error",
				"message": err.Error(),
			})
		}
		return
	}

	h.logger.Info("auto-reply email sent",
		zap.String("message_id", result.MessageID),
		zap.String("recipient", sub.Email),
		zap.Int("template_id", h.templateID))

	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    SuccessMessage,
		MessageID:  result.MessageID,
		Recipient:  sub.Email,
		TemplateID: h.templateID,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
