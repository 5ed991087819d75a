package http

import (
	"errors"
	"net/http"

	"finvault/internal/core"
	applog "finvault/internal/log"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	user, err := s.deps.Auth.Signup(r.Context(), sanitizeInput(req.Name), sanitizeInput(req.Email), req.Password)
	if errors.Is(err, core.ErrConflict) {
		BadRequestError("User already exists").Write(w)
		return
	}
	if err != nil {
		writeError(w, r, err, "User not found")
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(signupResponse{Message: "User created successfully", UserID: user.ID}).
		Write(w)
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	token, user, err := s.deps.Auth.Signin(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeError(w, r, err, "User not found")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "User signed in", applog.FieldUserID, user.ID)
	NewJSONResponse().
		Body(signinResponse{Token: token, User: userDTO{ID: user.ID, Name: user.Name, Email: user.Email}}).
		Write(w)
}
