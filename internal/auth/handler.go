package auth

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"secretgate/internal/logging"
	"secretgate/internal/render"
	"secretgate/internal/user"
)

const (
	flashDuplicateEmail     = "Email already exists! Login instead"
	flashInvalidCredentials = "Invalid username or password. Please try again!"
)

// Handler contains the HTTP handlers for every page of the application
type Handler struct {
	service      *Service
	sessions     *Sessions
	logger       *logging.Logger
	assetsDir    string
	downloadFile string
}

func NewHandler(service *Service, sessions *Sessions, logger *logging.Logger, assetsDir, downloadFile string) *Handler {
	return &Handler{
		service:      service,
		sessions:     sessions,
		logger:       logger,
		assetsDir:    assetsDir,
		downloadFile: downloadFile,
	}
}

// Home renders the landing page with the caller's authentication state
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	loggedIn, ok := h.resolveLoggedIn(w, r)
	if !ok {
		return
	}

	render.Page(w, "index.html", http.StatusOK, render.Data{LoggedIn: loggedIn})
}

// RegisterForm renders the registration form
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	loggedIn, ok := h.resolveLoggedIn(w, r)
	if !ok {
		return
	}

	render.Page(w, "register.html", http.StatusOK, render.Data{LoggedIn: loggedIn})
}

// Register handles registration form submission. A new account is logged in
// immediately and sent to the gated page.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid registration form", "error", err.Error())
		render.Page(w, "register.html", http.StatusBadRequest, render.Data{Flash: "Invalid form submission"})
		return
	}

	email := r.PostFormValue("email")
	logger = logger.WithFields(map[string]any{"email": email})

	newUser, err := h.service.Register(r.Context(), email, r.PostFormValue("password"), r.PostFormValue("name"))
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			render.Page(w, "login.html", http.StatusOK, render.Data{Flash: flashDuplicateEmail})
			return
		}
		if isValidationError(err) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			render.Page(w, "register.html", http.StatusOK, render.Data{Flash: capitalizedMessage(err)})
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		h.internalError(w)
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	if err := h.sessions.Issue(w, newUser); err != nil {
		logger.Error("failed to start session", "error", err.Error())
		h.internalError(w)
		return
	}

	http.Redirect(w, r, "/secrets", http.StatusFound)
}

// LoginForm renders the login form
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	loggedIn, ok := h.resolveLoggedIn(w, r)
	if !ok {
		return
	}

	render.Page(w, "login.html", http.StatusOK, render.Data{LoggedIn: loggedIn})
}

// Login handles login form submission. An unknown email and a wrong password
// produce byte-identical responses.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid login form", "error", err.Error())
		render.Page(w, "login.html", http.StatusBadRequest, render.Data{Flash: "Invalid form submission"})
		return
	}

	email := r.PostFormValue("email")
	logger = logger.WithFields(map[string]any{"email": email})

	existingUser, err := h.service.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			render.Page(w, "login.html", http.StatusOK, render.Data{Flash: flashInvalidCredentials})
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		h.internalError(w)
		return
	}

	logger.Info("user logged in successfully", "user_id", existingUser.ID)

	if err := h.sessions.Issue(w, existingUser); err != nil {
		logger.Error("failed to start session", "error", err.Error())
		h.internalError(w)
		return
	}

	http.Redirect(w, r, "/secrets", http.StatusFound)
}

// Secrets renders the gated page for the authenticated user
func (h *Handler) Secrets(w http.ResponseWriter, r *http.Request) {
	u, ok := GetUserFromContext(r.Context())
	if !ok {
		// RequireAuth always runs first; reaching here without a user is a wiring bug
		h.internalError(w)
		return
	}

	render.Page(w, "secrets.html", http.StatusOK, render.Data{LoggedIn: true, Name: u.Name})
}

// Logout ends the session and returns to the landing page
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	h.sessions.Clear(w, r)
	logger.Info("user logged out")

	http.Redirect(w, r, "/", http.StatusFound)
}

// Download streams the gated file as an attachment
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.downloadFile))
	http.ServeFile(w, r, filepath.Join(h.assetsDir, h.downloadFile))
}

// resolveLoggedIn reports the caller's authentication state for public pages.
// On a storage failure it writes the error response and returns ok=false.
func (h *Handler) resolveLoggedIn(w http.ResponseWriter, r *http.Request) (loggedIn, ok bool) {
	u, err := h.sessions.Resolve(r)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to resolve session", "error", err.Error())
		h.internalError(w)
		return false, false
	}

	return u != nil, true
}

func (h *Handler) internalError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrNameRequired)
}

// capitalizedMessage turns a sentinel error into a flash message
func capitalizedMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
