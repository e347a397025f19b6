package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hollis-dev/SatchelBot_Go/internal/domain"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

func TestHandleUseItem(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			setupMocks:     func(mu *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Missing item name",
			reqBody: UseItemRequest{
				DiscordID: "123",
				Username:  "tester",
				GuildID:   "guild-1",
			},
			setupMocks:     func(mu *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Requirement denied carries the failing kind",
			reqBody: UseItemRequest{
				DiscordID: "123",
				Username:  "tester",
				GuildID:   "guild-1",
				ItemName:  "vip pass",
			},
			setupMocks: func(mu *MockUserService) {
				mu.On("UseItem", mock.Anything, mock.Anything).
					Return(nil, &domain.RequirementFailedError{Kind: domain.RequirementMoney})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"kind":"money"`,
		},
		{
			name: "Not usable",
			reqBody: UseItemRequest{
				DiscordID: "123",
				Username:  "tester",
				GuildID:   "guild-1",
				ItemName:  "pan",
			},
			setupMocks: func(mu *MockUserService) {
				mu.On("UseItem", mock.Anything, mock.Anything).Return(nil, domain.ErrNotUsable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotUsableError,
		},
		{
			name: "Unknown item",
			reqBody: UseItemRequest{
				DiscordID: "123",
				Username:  "tester",
				GuildID:   "guild-1",
				ItemName:  "ghost",
			},
			setupMocks: func(mu *MockUserService) {
				mu.On("UseItem", mock.Anything, mock.Anything).Return(nil, domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgItemNotFoundError,
		},
		{
			name: "Success",
			reqBody: UseItemRequest{
				DiscordID: "123",
				Username:  "tester",
				GuildID:   "guild-1",
				RoleIDs:   []string{"role-1"},
				ItemName:  "lucky coin",
			},
			setupMocks: func(mu *MockUserService) {
				mu.On("UseItem", mock.Anything, user.UseItemParams{
					DiscordID: "123",
					Username:  "tester",
					GuildID:   "guild-1",
					RoleIDs:   []string{"role-1"},
					ItemName:  "lucky coin",
				}).Return(&domain.EffectSummary{
					MoneyChanges: domain.Delta{Added: 50},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"added":50`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserService)
			tt.setupMocks(mockUser)

			var body bytes.Buffer
			if s, ok := tt.reqBody.(string); ok {
				body.WriteString(s)
			} else {
				assert.NoError(t, json.NewEncoder(&body).Encode(tt.reqBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/item/use", &body)
			rec := httptest.NewRecorder()

			HandleUseItem(mockUser)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockUser.AssertExpectations(t)
		})
	}
}
