package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	apperrors "github.com/tendant/simple-signup/pkg/errors"
	"github.com/tendant/simple-signup/pkg/signupform"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handle serves the sign-up form and its JSON operations
type Handle struct {
	signupPath string
	loginPath  string
	decoder    *form.Decoder
	validate   *validator.Validate
}

type Option func(*Handle)

func NewHandle(opts ...Option) *Handle {
	h := &Handle{
		signupPath: "/signup",
		loginPath:  signupform.LoginPath,
		decoder:    form.NewDecoder(),
		validate:   newValidator(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// WithSignupPath sets where the form is mounted; the rendered form posts back to it
func WithSignupPath(path string) Option {
	return func(h *Handle) {
		h.signupPath = path
	}
}

// WithLoginPath sets where the login view is mounted
func WithLoginPath(path string) Option {
	return func(h *Handle) {
		h.loginPath = path
	}
}

// RegisterRoutes registers the form routes relative to the mount point
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ShowForm)
	r.Post("/", h.PostForm)
	r.Post("/change", h.Change)
	r.Post("/validate", h.Validate)
	r.Post("/submit", h.Submit)
	r.NotFound(h.NotFound)
}

// Handler returns a router with all form routes registered
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// ShowForm renders a freshly mounted form
func (h *Handle) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, signupform.New())
}

// IsToggle reports whether r is a visibility toggle posted by the HTML form.
// A toggle only re-renders the form.
func (h *Handle) IsToggle(r *http.Request) bool {
	if r.Method != http.MethodPost || strings.TrimSuffix(r.URL.Path, "/") != strings.TrimSuffix(h.signupPath, "/") {
		return false
	}
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct != "application/x-www-form-urlencoded" {
		return false
	}
	switch r.PostFormValue("action") {
	case ActionTogglePassword, ActionToggleConfirmPassword:
		return true
	}
	return false
}

// PostForm handles the form-encoded post of the HTML form. Toggle actions
// re-render with the flipped visibility and the errors that were on display;
// submit validates and either redirects to the login view or re-renders with
// the new errors.
func (h *Handle) PostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse form", "error", err)
		h.renderForm(w, r, http.StatusBadRequest, signupform.New())
		return
	}

	var posted SubmitForm
	if err := h.decoder.Decode(&posted, r.PostForm); err != nil {
		slog.Error("Failed to decode form", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.renderForm(w, r, http.StatusBadRequest, signupform.New())
		return
	}

	f := signupform.New()
	f.State = signupform.Replay(posted.events())
	f.View = signupform.View{
		ShowPassword:        posted.ShowPassword,
		ShowConfirmPassword: posted.ShowConfirmPassword,
	}
	f.Errors = signupform.ErrorsFor(posted.displayed())

	switch posted.Action {
	case ActionTogglePassword:
		h.renderForm(w, r, http.StatusOK, f.TogglePassword())
		return
	case ActionToggleConfirmPassword:
		h.renderForm(w, r, http.StatusOK, f.ToggleConfirmPassword())
		return
	}

	navigated := false
	f = f.Submit(signupform.NavigatorFunc(func(path string) {
		navigated = true
		http.Redirect(w, r, h.resolve(path), http.StatusSeeOther)
	}))
	if navigated {
		return
	}

	slog.Info("Signup form re-rendered with errors",
		"request_id", middleware.GetReqID(r.Context()),
		"errors", len(f.Errors),
	)
	h.renderForm(w, r, http.StatusUnprocessableEntity, f)
}

// Change applies one keystroke to the posted state and returns the next state
func (h *Handle) Change(w http.ResponseWriter, r *http.Request) {
	var req ChangeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to decode change request", "error", err)
		apperrors.Render(w, r, apperrors.MalformedBody(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		apperrors.Render(w, r, requestError(err))
		return
	}

	field, err := signupform.ParseField(req.Field)
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}

	state, err := h.toState(req.State)
	if err != nil {
		logRejected(r, err)
		apperrors.Render(w, r, err)
		return
	}

	next, accepted, err := signupform.Apply(state, field, signupform.Event{Value: req.Value, Checked: req.Checked})
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}

	payload, err := h.toPayload(next)
	if err != nil {
		apperrors.Render(w, r, err)
		return
	}

	render.JSON(w, r, ChangeResponse{
		State:          payload,
		Accepted:       accepted,
		SubmitDisabled: signupform.SubmitDisabled(next),
	})
}

// Validate reports the errors a submit of the posted state would display
func (h *Handle) Validate(w http.ResponseWriter, r *http.Request) {
	state, ok := h.decodeState(w, r)
	if !ok {
		return
	}

	errs := signupform.Validate(state)
	render.JSON(w, r, ValidateResponse{
		Valid:          errs.Valid(),
		Errors:         errorStrings(errs),
		SubmitDisabled: signupform.SubmitDisabled(state),
	})
}

// Submit runs the submit protocol on the posted state. A valid form answers
// with the navigation target; an invalid one with VALIDATION_FAILED.
func (h *Handle) Submit(w http.ResponseWriter, r *http.Request) {
	state, ok := h.decodeState(w, r)
	if !ok {
		return
	}

	var target string
	f := signupform.New()
	f.State = state
	f = f.Submit(signupform.NavigatorFunc(func(path string) {
		target = h.resolve(path)
	}))

	if !f.Errors.Valid() {
		apperrors.Render(w, r, apperrors.ValidationFailed(f.Errors.Details()))
		return
	}

	submissionID := uuid.New().String()
	slog.Info("Signup submitted",
		"submission_id", submissionID,
		"request_id", middleware.GetReqID(r.Context()),
		"user_type", state.UserType,
	)

	render.JSON(w, r, SubmitResponse{
		SubmissionID: submissionID,
		Redirect:     target,
		Message:      "Sign up successful",
	})
}

// NotFound answers unknown routes under the form's mount point
func (h *Handle) NotFound(w http.ResponseWriter, r *http.Request) {
	apperrors.Render(w, r, apperrors.NotFound("route "+r.URL.Path))
}

// LoginPage renders the navigation target of a successful submit
func (h *Handle) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, http.StatusOK, "login.html", map[string]string{"SignupPath": h.signupPath})
}

func (h *Handle) decodeState(w http.ResponseWriter, r *http.Request) (signupform.FormState, bool) {
	var payload StatePayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		slog.Error("Failed to decode form state", "error", err)
		apperrors.Render(w, r, apperrors.MalformedBody(err))
		return signupform.FormState{}, false
	}
	state, err := h.toState(payload)
	if err != nil {
		logRejected(r, err)
		apperrors.Render(w, r, err)
		return signupform.FormState{}, false
	}
	return state, true
}

// toState accepts a posted state only if every field holds a value the form
// itself would have accepted.
func (h *Handle) toState(payload StatePayload) (signupform.FormState, error) {
	if err := h.validate.Struct(payload); err != nil {
		return signupform.FormState{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid form state")
	}
	var state signupform.FormState
	if err := copier.Copy(&state, &payload); err != nil {
		return signupform.FormState{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to read form state")
	}
	if rejected := signupform.Rejected(state); len(rejected) > 0 {
		e := apperrors.InvalidInput("state", "contains values the form does not accept")
		for _, f := range rejected {
			e.WithDetail(string(f), "rejected by input filter")
		}
		return signupform.FormState{}, e
	}
	return state, nil
}

// requestError maps a failed envelope check onto a structured error
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return apperrors.MissingRequired(fe.Field())
			}
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid change request")
}

func logRejected(r *http.Request, err error) {
	slog.Info("Form state rejected",
		"request_id", middleware.GetReqID(r.Context()),
		"code", apperrors.GetCode(err),
		"details", apperrors.GetDetails(err),
	)
}

func (h *Handle) toPayload(state signupform.FormState) (StatePayload, error) {
	var payload StatePayload
	if err := copier.Copy(&payload, &state); err != nil {
		return StatePayload{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to write form state")
	}
	return payload, nil
}

// resolve maps the component's logical paths onto mount points
func (h *Handle) resolve(path string) string {
	if path == signupform.LoginPath {
		return h.loginPath
	}
	return path
}

type pageData struct {
	Action              string
	LoginPath           string
	State               signupform.FormState
	View                signupform.View
	Errors              map[string]string
	UserTypes           []signupform.UserType
	PasswordType        string
	ConfirmPasswordType string
	SubmitDisabled      bool
}

func (h *Handle) renderForm(w http.ResponseWriter, r *http.Request, status int, f signupform.Form) {
	h.renderTemplate(w, status, "signup.html", pageData{
		Action:              h.signupPath,
		LoginPath:           h.loginPath,
		State:               f.State,
		View:                f.View,
		Errors:              errorStrings(f.Errors),
		UserTypes:           signupform.UserTypes(),
		PasswordType:        f.View.InputType(signupform.FieldPassword),
		ConfirmPasswordType: f.View.InputType(signupform.FieldConfirmPassword),
		SubmitDisabled:      f.SubmitDisabled(),
	})
}

func (h *Handle) renderTemplate(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
