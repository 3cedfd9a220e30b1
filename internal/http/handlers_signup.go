package httpx

import (
	"context"
	"net/http"
)

// signupForm is the shared shape of the public signup forms. Role-specific
// extras (class, roll number, license) are optional and only validated when
// the resource requires them.
type signupForm struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	ClassName string `json:"className,omitempty"`
	RollNo    string `json:"rollNo,omitempty"`
	License   string `json:"licenseNumber,omitempty"`
}

// signupResources maps the public signup slug to the backend resource.
//
//nolint:gochecknoglobals // static read-only lookup
var signupResources = map[string]string{
	"agency":     "agencies",
	"school":     "schools",
	"driver":     "drivers",
	"bus-helper": "helpers",
	"student":    "students",
}

func signupMeta() PageMeta {
	return PageMeta{Title: "Sign Up", PageTitle: "Create Account", CurrentPage: PageSignup}
}

// SignupPage renders the role-specific signup form.
// GET /signup/{resource}.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("resource")
	if _, ok := signupResources[slug]; !ok {
		http.NotFound(w, r)
		return
	}

	meta := signupMeta()
	data := NewTemplateData(r, meta).
		With("Resource", slug).
		With("FormData", signupForm{}).
		Build()
	h.renderPage(w, r, meta, data)
}

// Signup handles the signup submission for any of the five roles.
// POST /signup/{resource}.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("resource")
	resource, ok := signupResources[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}
	meta := signupMeta()

	HandleForm(FormHandlerOpts[signupForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (signupForm, map[string]string) {
			form := signupForm{
				Name:      formString(r, "name"),
				Email:     formString(r, "email"),
				Password:  r.FormValue("password"),
				Phone:     formString(r, "phone"),
				Address:   formString(r, "address"),
				ClassName: formString(r, "className"),
				RollNo:    formString(r, "rollNo"),
				License:   formString(r, "licenseNumber"),
			}
			fieldErrors := ValidateForm(form)
			// Role-specific required fields.
			if fieldErrors == nil {
				fieldErrors = map[string]string{}
			}
			switch slug {
			case "student":
				if form.ClassName == "" {
					fieldErrors["className"] = "This field is required."
				}
				if form.RollNo == "" {
					fieldErrors["rollNo"] = "This field is required."
				}
			case "driver":
				if form.License == "" {
					fieldErrors["licenseNumber"] = "This field is required."
				}
			}
			if len(fieldErrors) == 0 {
				return form, nil
			}
			return form, fieldErrors
		},
		Submit: func(ctx context.Context, _ string, form signupForm) error {
			return h.Backend.Signup(ctx, resource, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			data["Resource"] = slug
			h.renderPage(w, r, meta, data)
		},
		SuccessURL:     "/login",
		SuccessMessage: "Account created. Please sign in.",
		PageMeta:       meta,
		Auth:           h.Auth,
	})
}
