package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/skitownrace/racereg/internal/middleware"
	"github.com/skitownrace/racereg/internal/models"
)

const dateFormat = "2006-01-02"

type registerRequest struct {
	USSkiID     string   `json:"us_ski_id"`
	FISID       string   `json:"fis_id"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DOB         string   `json:"dob"`
	Division    string   `json:"division"`
	Team        string   `json:"team"`
	Disciplines []string `json:"disciplines"`
}

type authResponse struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var dob time.Time
	if req.DOB != "" {
		var err error
		if dob, err = time.Parse(dateFormat, req.DOB); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "dob must be formatted YYYY-MM-DD"})
			return
		}
	}

	params := &models.RegisterAccountParams{
		USSkiID:     req.USSkiID,
		FISID:       req.FISID,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DOB:         dob,
		Division:    req.Division,
		Team:        req.Team,
		Disciplines: req.Disciplines,
	}

	account, err := s.authenticator.Register(r.Context(), params)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := s.jwt.Generate(account)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Account registered", "account_id", account.ID, "email", account.Email)
	respondJSON(w, http.StatusCreated, authResponse{
		MemberID: account.ID,
		Name:     account.FullName,
		Token:    token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if account == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	token, err := s.jwt.Generate(account)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Account logged in", "account_id", account.ID)
	respondJSON(w, http.StatusOK, authResponse{
		MemberID: account.ID,
		Name:     account.FullName,
		Token:    token,
	})
}

type profileResponse struct {
	MemberID    int64    `json:"member_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	DOB         string   `json:"dob"`
	Team        *string  `json:"team,omitempty"`
	Division    string   `json:"division"`
	Disciplines []string `json:"disciplines"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	account, err := s.store.GetAccountByID(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if account == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "account not found"})
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{
		MemberID:    account.ID,
		Email:       account.Email,
		Name:        account.FullName,
		DOB:         account.DOB.Format(dateFormat),
		Team:        account.Team,
		Division:    account.Division,
		Disciplines: account.Disciplines,
	})
}
