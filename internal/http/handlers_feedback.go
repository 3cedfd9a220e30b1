package httpx

import (
	"context"
	"net/http"

	"github.com/eduride/eduride-ui/internal/domain/model"
)

// feedbackForm backs the public feedback page.
type feedbackForm struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func feedbackMeta() PageMeta {
	return PageMeta{Title: "Feedback", PageTitle: "Send Feedback", CurrentPage: PageFeedback}
}

// FeedbackPage renders the feedback form.
// GET /feedback.
func (h *UIHandlers) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, feedbackMeta()).
		With("FormData", feedbackForm{}).
		Build()
	h.renderPage(w, r, feedbackMeta(), data)
}

// Feedback handles the feedback submission.
// POST /feedback.
func (h *UIHandlers) Feedback(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[feedbackForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (feedbackForm, map[string]string) {
			form := feedbackForm{
				Name:    formString(r, "name"),
				Email:   formString(r, "email"),
				Message: formString(r, "message"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, _ string, form feedbackForm) error {
			return h.Backend.SendFeedback(ctx, model.FeedbackRequest{
				Name:    form.Name,
				Email:   form.Email,
				Message: form.Message,
			})
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, feedbackMeta(), data)
		},
		SuccessURL:     "/",
		SuccessMessage: "Thanks for the feedback!",
		PageMeta:       feedbackMeta(),
		Auth:           h.Auth,
	})
}
