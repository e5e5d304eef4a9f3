package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-tube-accounts/internal/app"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// multipart field names of the registration form
const (
	formFullName   = "fullName"
	formEmail      = "email"
	formUsername   = "username"
	formPassword   = "password"
	formAvatar     = "avatar"
	formCoverImage = "coverImage"
)

const maxFormFieldSize = 4 << 10

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	req, err := h.readRegisterForm(ctx, r)
	if err != nil {
		log.Err(err).Str("func", "Handler.register").Msg("registration form could not be read")
		if discardErr := h.services.MediaService.Discard(context.WithoutCancel(ctx), req.StagedPaths()...); discardErr != nil {
			log.Err(discardErr).Str("func", "Handler.register").Msg("staged files were not discarded")
		}
		writeError(r, w, err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(r, w, err)
		return
	}

	writeResponse(r, w, http.StatusCreated, user, app.MsgUserRegistered)
}

// readRegisterForm streams the multipart body. File parts go straight to
// the staging area; nothing is buffered in memory or in os.TempDir. On error
// the returned request still names every file staged so far.
func (h *Handler) readRegisterForm(ctx context.Context, r *http.Request) (models.RegisterRequest, error) {
	var req models.RegisterRequest

	reader, err := r.MultipartReader()
	if err != nil {
		return req, newRequestError(http.StatusBadRequest, app.MsgInvalidForm, fmt.Errorf("%w: %w", ErrInvalidForm, err))
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		if err != nil {
			return req, formError(err)
		}

		body := &bodyReader{r: part}
		if err = h.readFormPart(ctx, part.FormName(), part.FileName(), body, &req); err != nil {
			_ = part.Close()
			if body.err != nil {
				return req, formError(body.err)
			}
			return req, err
		}
		_ = part.Close()
	}
}

func (h *Handler) readFormPart(ctx context.Context, field, fileName string, body io.Reader, req *models.RegisterRequest) error {
	switch field {
	case formAvatar:
		return h.stageFormFile(ctx, fileName, body, &req.AvatarPath)
	case formCoverImage:
		return h.stageFormFile(ctx, fileName, body, &req.CoverPath)
	case formFullName:
		return readFormValue(field, body, &req.FullName)
	case formEmail:
		return readFormValue(field, body, &req.Email)
	case formUsername:
		return readFormValue(field, body, &req.Username)
	case formPassword:
		return readFormValue(field, body, &req.Password)
	}
	return nil
}

// stageFormFile keeps the first file sent under a field name; parts without
// a file name are empty file inputs and are skipped.
func (h *Handler) stageFormFile(ctx context.Context, fileName string, body io.Reader, dst *string) error {
	if fileName == "" || *dst != "" {
		return nil
	}

	path, err := h.services.MediaService.Stage(ctx, fileName, body)
	if err != nil {
		return err
	}
	*dst = path
	return nil
}

func readFormValue(field string, body io.Reader, dst *string) error {
	value, err := io.ReadAll(io.LimitReader(body, maxFormFieldSize+1))
	if err != nil {
		return err
	}
	if len(value) > maxFormFieldSize {
		return formError(fmt.Errorf("%w: field %q", ErrRequestTooLarge, field))
	}
	*dst = string(value)
	return nil
}

// bodyReader remembers the first read error of a form part, which tells a
// broken or oversized request apart from a failure of the staging area.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && b.err == nil {
		b.err = err
	}
	return n, err
}

func formError(err error) error {
	if isTooLarge(err) {
		return newRequestError(http.StatusRequestEntityTooLarge, app.MsgRequestTooLarge, err)
	}
	return newRequestError(http.StatusBadRequest, app.MsgInvalidForm, fmt.Errorf("%w: %w", ErrInvalidForm, err))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r, w, newRequestError(http.StatusBadRequest, app.MsgInvalidJSON, fmt.Errorf("%w: %w", ErrInvalidJSON, err)))
		return
	}

	result, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(r, w, err)
		return
	}

	h.setSessionCookies(w, models.TokenPair{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken})
	writeResponse(r, w, http.StatusOK, result, app.MsgUserLoggedIn)
}

// refreshToken takes the token from the refreshToken cookie, falling back to
// the JSON body. A missing or unreadable body just means no token.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := cookieValue(r, refreshTokenCookie)
	if token == "" {
		var body models.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			token = strings.TrimSpace(body.RefreshToken)
		}
	}

	pair, err := h.services.AuthService.Refresh(ctx, token)
	if err != nil {
		writeError(r, w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeResponse(r, w, http.StatusOK, pair, app.MsgTokensRefreshed)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeError(r, w, ErrNoUserInContext)
		return
	}

	if err := h.services.AuthService.Logout(ctx, user.UserID); err != nil {
		writeError(r, w, err)
		return
	}

	h.clearSessionCookies(w)
	writeResponse(r, w, http.StatusOK, nil, app.MsgUserLoggedOut)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(r, w, ErrNoUserInContext)
		return
	}

	writeResponse(r, w, http.StatusOK, user, app.MsgCurrentUserFetched)
}
