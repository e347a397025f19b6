package handler

import (
	"net/http"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// RegisterUserRequest represents a user registration request
type RegisterUserRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	Username  string `json:"username" validate:"required,max=100"`
}

// RegisterUserResponse wraps the registered user
type RegisterUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// HandleRegisterUser registers (or refreshes) a user by Discord ID
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Success 201 {object} RegisterUserResponse
// @Router /api/v1/user/register [post]
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, err := userService.RegisterUser(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		respondJSON(w, http.StatusCreated, RegisterUserResponse{
			Message: "User registered",
			User:    u,
		})
	}
}
