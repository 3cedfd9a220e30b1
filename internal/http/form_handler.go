package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

const errMsgFixBelow = "Please fix the errors below."

// FormParser parses form data from an HTTP request and returns the parsed
// data along with any field-level validation errors. Validation is local:
// no request leaves while the map is non-empty.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormRenderer renders the form template with the given data. This allows
// the form handler to work with different rendering strategies.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W      http.ResponseWriter
	R      *http.Request
	Mode   FormMode
	Parser FormParser[T]
	// Submit issues the backend call. id is empty in create mode.
	Submit   func(ctx context.Context, id string, data T) error
	Renderer FormRenderer
	// Success redirect URL; the confirmation rides along as a one-shot
	// flash notice rendered by the page the user lands on.
	SuccessURL     string
	SuccessMessage string
	PageMeta       PageMeta
	// Optional: additional data to pass to template on error
	ExtraData map[string]any
	// Optional: function to extract ID from request (defaults to r.PathValue("id"))
	GetID func(r *http.Request) string
	// Auth is consulted when the backend rejects the session token.
	Auth AuthServiceInterface
}

// HandleForm is a generic form handler that processes create and edit
// workflows: parse, validate locally, submit, and either redirect on
// success or re-render with errors, preserving the user's input.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	id, ok := checkFormID(opts)
	if !ok {
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(fieldErrors, "", data)
		return
	}

	if err := opts.Submit(opts.R.Context(), id, data); err != nil {
		opts.handleSubmitError(err, data)
		return
	}

	if opts.SuccessMessage != "" {
		setFlash(opts.W, opts.SuccessMessage, flashSuccess)
	}
	Redirect(opts.W, opts.R, opts.SuccessURL)
}

// checkFormID checks and returns the ID for edit mode. Returns an empty
// string and true for create mode.
func checkFormID[T any](opts FormHandlerOpts[T]) (string, bool) {
	if opts.Mode != FormModeEdit {
		return "", true
	}

	id := opts.R.PathValue("id")
	if opts.GetID != nil {
		id = opts.GetID(opts.R)
	}
	if id == "" {
		http.NotFound(opts.W, opts.R)
		return "", false
	}
	return id, true
}

// handleSubmitError maps backend failures onto the form. A rejected token
// means the session is gone: clear it and restart at login. Everything else
// re-renders with the backend's message verbatim, or a fallback.
func (fh FormHandlerOpts[T]) handleSubmitError(err error, data T) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		http.Error(fh.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	if errors.Is(err, apperrors.ErrUnauthenticated) {
		forceLogoutAndRedirect(fh.W, fh.R, fh.Auth)
		return
	}

	fh.renderFormError(nil, apperrors.UserMessage(err, "Unable to save. Please try again."), data)
}

// renderFormError renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(fieldErrors map[string]string, generalError string, data T) {
	templateData := NewTemplateData(fh.R, fh.PageMeta)

	if len(fieldErrors) > 0 {
		templateData.WithFieldErrors(fieldErrors)
	}
	if generalError != "" {
		templateData.WithError(generalError)
	} else if len(fieldErrors) > 0 {
		templateData.WithError(errMsgFixBelow)
	}

	templateData.With("Mode", string(fh.Mode))
	for k, v := range fh.ExtraData {
		templateData.With(k, v)
	}
	// Templates access the parsed input to re-fill fields.
	templateData.With("FormData", data)

	fh.Renderer(fh.W, fh.R, templateData.Build())
}

// forceLogoutAndRedirect clears the server-side session and the cookie, then
// restarts the user at the login page. Used on any backend 401.
func forceLogoutAndRedirect(w http.ResponseWriter, r *http.Request, auth AuthServiceInterface) {
	if auth != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			auth.ForceLogout(r.Context(), cookie.Value)
		}
	}
	clearSessionCookie(w, r)
	Redirect(w, r, "/login")
}
