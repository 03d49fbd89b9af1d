package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tendant/simple-signup/pkg/errors"
	"github.com/tendant/simple-signup/pkg/signupform"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	h := NewHandle(WithSignupPath("/signup"), WithLoginPath("/login"))
	r := chi.NewRouter()
	r.Mount("/signup", Handler(h))
	r.Get("/login", h.LoginPage)
	return r
}

func doJSON(t *testing.T, srv http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, srv http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func validPayload() StatePayload {
	return StatePayload{
		Name:            "Jane Doe",
		Email:           "a@gmail.com",
		Password:        "Abc123!",
		ConfirmPassword: "Abc123!",
		Phone:           "9876543210",
		UserType:        signupform.UserTypeCustomer,
		TermsAccepted:   true,
	}
}

func validValues() url.Values {
	return url.Values{
		"name":            {"Jane Doe"},
		"email":           {"a@gmail.com"},
		"password":        {"Abc123!"},
		"confirmPassword": {"Abc123!"},
		"phone":           {"9876543210"},
		"userType":        {"Customer"},
		"termsAccepted":   {"true"},
		"action":          {"submit"},
	}
}

func TestShowForm(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/signup", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "SIGN UP")
	assert.Contains(t, body, `action="/signup"`)
	assert.Contains(t, body, `href="/login"`)
	assert.Contains(t, body, "Who you are")
	assert.Contains(t, body, "Need Help?")
	assert.Contains(t, body, `type="password" name="password"`)
	assert.Contains(t, body, `value="submit" disabled`)
	assert.Equal(t, 2, strings.Count(body, `value="submit" disabled`))
}

func TestShowForm_SubmitTracksGatingInputs(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/signup", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<form id="signup-form"`)
	assert.Contains(t, body, `userType.addEventListener("change", updateSubmit)`)
	assert.Contains(t, body, `terms.addEventListener("change", updateSubmit)`)
	assert.Contains(t, body, `userType.value === "" || !terms.checked`)
	assert.Contains(t, body, `form.querySelectorAll("button[value=submit]")`)
}

func TestPostForm_Success(t *testing.T) {
	srv := newTestServer(t)
	rec := doForm(t, srv, validValues())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestPostForm_Invalid(t *testing.T) {
	srv := newTestServer(t)
	values := validValues()
	values.Set("email", "a@hotmail.com")
	values.Set("confirmPassword", "Abc123?")

	rec := doForm(t, srv, values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "only gmail.com or yahoo.com allowed")
	assert.Contains(t, body, signupform.MsgConfirmPassword)
	assert.NotContains(t, body, "Phone number must start")
	assert.Contains(t, body, `value="a@hotmail.com"`)
	assert.Contains(t, body, `<input type="hidden" name="errors" value="email">`)
	assert.Contains(t, body, `<input type="hidden" name="errors" value="confirmPassword">`)
	assert.NotContains(t, body, `name="errors" value="phone"`)
}

func TestPostForm_ToggleKeepsDisplayedErrors(t *testing.T) {
	srv := newTestServer(t)
	values := validValues()
	values.Set("email", "a@hotmail.com")

	rec := doForm(t, srv, values)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `name="errors" value="email"`)

	// the browser posts back the hidden inputs with the toggle
	values.Set("errors", "email")
	values.Set("action", ActionTogglePassword)
	rec = doForm(t, srv, values)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `type="text" name="password"`)
	assert.Contains(t, body, signupform.MsgEmail)
	assert.Contains(t, body, `name="errors" value="email"`)
	assert.NotContains(t, body, signupform.MsgPhone)

	values.Set("showPassword", "true")
	values.Set("action", ActionToggleConfirmPassword)
	rec = doForm(t, srv, values)
	assert.Contains(t, rec.Body.String(), signupform.MsgEmail)
}

func TestPostForm_ToggleIgnoresUnknownErrorFields(t *testing.T) {
	srv := newTestServer(t)
	values := validValues()
	values.Set("action", ActionTogglePassword)
	values["errors"] = []string{"nickname", "name"}

	rec := doForm(t, srv, values)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `name="errors"`)
}

func TestIsToggle(t *testing.T) {
	h := NewHandle(WithSignupPath("/signup"))

	tests := []struct {
		name   string
		method string
		path   string
		ctype  string
		body   string
		want   bool
	}{
		{"toggle password", http.MethodPost, "/signup", "application/x-www-form-urlencoded", "action=toggle_password", true},
		{"toggle confirm with slash", http.MethodPost, "/signup/", "application/x-www-form-urlencoded; charset=utf-8", "action=toggle_confirm_password", true},
		{"submit", http.MethodPost, "/signup", "application/x-www-form-urlencoded", "action=submit", false},
		{"no action", http.MethodPost, "/signup", "application/x-www-form-urlencoded", "name=Jo", false},
		{"json body", http.MethodPost, "/signup", "application/json", `{"action":"toggle_password"}`, false},
		{"other route", http.MethodPost, "/signup/submit", "application/x-www-form-urlencoded", "action=toggle_password", false},
		{"get", http.MethodGet, "/signup", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			assert.Equal(t, tt.want, h.IsToggle(req))
		})
	}
}

func TestPostForm_FiltersPostedValues(t *testing.T) {
	srv := newTestServer(t)
	values := validValues()
	values.Set("name", "Jane99")
	values.Set("phone", "1234567890")

	rec := doForm(t, srv, values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="name" placeholder="Name" value=""`)
	assert.Contains(t, body, `name="phone" placeholder="Phone Number" value=""`)
	assert.Contains(t, body, signupform.MsgPhone)
}

func TestPostForm_TogglePassword(t *testing.T) {
	srv := newTestServer(t)
	values := validValues()
	values.Set("action", ActionTogglePassword)
	values.Set("email", "a@hotmail.com")

	rec := doForm(t, srv, values)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `type="text" name="password"`)
	assert.Contains(t, body, `type="password" name="confirmPassword"`)
	assert.Contains(t, body, `name="showPassword" value="true"`)
	assert.NotContains(t, body, "only gmail.com or yahoo.com allowed", "toggling does not validate")

	values.Set("showPassword", "true")
	values.Set("action", ActionToggleConfirmPassword)
	rec = doForm(t, srv, values)
	body = rec.Body.String()
	assert.Contains(t, body, `type="text" name="password"`)
	assert.Contains(t, body, `type="text" name="confirmPassword"`)
}

func TestChange(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name         string
		req          ChangeRequest
		wantAccepted bool
		check        func(t *testing.T, s StatePayload)
	}{
		{
			name:         "name letters accepted",
			req:          ChangeRequest{Field: "name", Value: "Jo"},
			wantAccepted: true,
			check:        func(t *testing.T, s StatePayload) { assert.Equal(t, "Jo", s.Name) },
		},
		{
			name:         "name digit rejected",
			req:          ChangeRequest{State: StatePayload{Name: "Jo"}, Field: "name", Value: "Jo1"},
			wantAccepted: false,
			check:        func(t *testing.T, s StatePayload) { assert.Equal(t, "Jo", s.Name) },
		},
		{
			name:         "phone first digit rejected",
			req:          ChangeRequest{Field: "phone", Value: "4"},
			wantAccepted: false,
			check:        func(t *testing.T, s StatePayload) { assert.Equal(t, "", s.Phone) },
		},
		{
			name:         "phone eleventh digit rejected",
			req:          ChangeRequest{State: StatePayload{Phone: "9876543210"}, Field: "phone", Value: "98765432101"},
			wantAccepted: false,
			check:        func(t *testing.T, s StatePayload) { assert.Equal(t, "9876543210", s.Phone) },
		},
		{
			name:         "terms checkbox",
			req:          ChangeRequest{Field: "termsAccepted", Checked: true},
			wantAccepted: true,
			check:        func(t *testing.T, s StatePayload) { assert.True(t, s.TermsAccepted) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, "/signup/change", tt.req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp ChangeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantAccepted, resp.Accepted)
			assert.True(t, resp.SubmitDisabled)
			tt.check(t, resp.State)
		})
	}
}

func TestChange_SubmitEnabled(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, "/signup/change", ChangeRequest{
		State: StatePayload{UserType: signupform.UserTypeHost},
		Field: "termsAccepted", Checked: true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.SubmitDisabled)
	assert.Equal(t, signupform.UserTypeHost, resp.State.UserType)
}

func TestChange_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode apperrors.ErrorCode
	}{
		{"malformed json", `{"field":`, apperrors.ErrCodeMalformedBody},
		{"missing field", `{"value":"x"}`, apperrors.ErrCodeMissingRequired},
		{"unknown field", `{"field":"nickname","value":"x"}`, apperrors.ErrCodeUnknownField},
		{"unknown user type in state", `{"state":{"userType":"Admin"},"field":"name","value":"x"}`, apperrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/signup/change", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body apperrors.Body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestChange_MissingFieldNamesIt(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/signup/change", strings.NewReader(`{"value":"x"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body apperrors.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "field", body.Details["field"])
}

func TestChange_RejectsUnfilteredState(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "/signup/change", ChangeRequest{
		State: StatePayload{Name: "1234", Phone: "123"},
		Field: "email",
		Value: "a@gmail.com",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body apperrors.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.ErrCodeInvalidInput, body.Code)
	assert.Contains(t, body.Details, "name")
	assert.Contains(t, body.Details, "phone")
	assert.NotContains(t, rec.Body.String(), `"1234"`)
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t)

	payload := validPayload()
	payload.Password = "abc!"
	payload.ConfirmPassword = "abc!"

	rec := doJSON(t, srv, "/signup/validate", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, map[string]string{"password": signupform.MsgPassword}, resp.Errors)
	assert.False(t, resp.SubmitDisabled)
}

func TestSubmit(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "/signup/submit", validPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/login", resp.Redirect)
	assert.NotEmpty(t, resp.SubmissionID)
}

func TestSubmitAndValidate_RejectUnfilteredState(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(p *StatePayload)
		field  string
	}{
		{"markup in name", func(p *StatePayload) { p.Name = "R2-D2 <script>" }, "name"},
		{"separators in phone", func(p *StatePayload) { p.Phone = "98765-43210" }, "phone"},
	}

	for _, tt := range tests {
		for _, path := range []string{"/signup/submit", "/signup/validate"} {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				payload := validPayload()
				tt.mutate(&payload)

				rec := doJSON(t, srv, path, payload)

				require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
				var body apperrors.Body
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, apperrors.ErrCodeInvalidInput, body.Code)
				assert.Contains(t, body.Details, tt.field)
				assert.Len(t, body.Details, 1)
			})
		}
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/signup/nope", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body apperrors.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.ErrCodeNotFound, body.Code)
}

func TestSubmit_Invalid(t *testing.T) {
	srv := newTestServer(t)

	payload := validPayload()
	payload.Email = "a@hotmail.com"
	payload.TermsAccepted = false

	rec := doJSON(t, srv, "/signup/submit", payload)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body apperrors.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.ErrCodeValidationFailed, body.Code)
	assert.Equal(t, signupform.MsgEmail, body.Details["email"])
	assert.Equal(t, signupform.MsgTermsAccepted, body.Details["termsAccepted"])
	assert.Len(t, body.Details, 2)
}

func TestLoginPage(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/signup"`)
}
