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
	"github.com/hollis-dev/SatchelBot_Go/internal/economy"
)

func TestHandleGetBalance(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*MockUserService, *MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing discord_id",
			query:          "?guild_id=guild-1",
			setupMocks:     func(mu *MockUserService, me *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing discord_id query parameter",
		},
		{
			name:  "Unregistered user",
			query: "?discord_id=123&guild_id=guild-1",
			setupMocks: func(mu *MockUserService, me *MockEconomyService) {
				mu.On("FindUserByDiscordID", mock.Anything, "123").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name:  "Success",
			query: "?discord_id=123&guild_id=guild-1",
			setupMocks: func(mu *MockUserService, me *MockEconomyService) {
				mu.On("FindUserByDiscordID", mock.Anything, "123").
					Return(&domain.User{ID: "user-1", DiscordID: "123"}, nil)
				me.On("GetBalances", mock.Anything, "user-1", "guild-1").
					Return(&economy.Balances{Wallet: 120, Bank: 300}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"wallet":120`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserService)
			mockEconomy := new(MockEconomyService)
			tt.setupMocks(mockUser, mockEconomy)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/economy/balance"+tt.query, nil)
			rec := httptest.NewRecorder()

			HandleGetBalance(mockUser, mockEconomy)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleBuyItem(t *testing.T) {
	registered := &domain.User{ID: "user-1", DiscordID: "123", Username: "tester"}

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockUserService, *MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Quantity must be positive",
			reqBody: ShopRequest{
				DiscordID: "123", Username: "tester", GuildID: "guild-1",
				ItemName: "agua", Quantity: 0,
			},
			setupMocks:     func(mu *MockUserService, me *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Out of stock",
			reqBody: ShopRequest{
				DiscordID: "123", Username: "tester", GuildID: "guild-1",
				ItemName: "agua", Quantity: 3,
			},
			setupMocks: func(mu *MockUserService, me *MockEconomyService) {
				mu.On("RegisterUser", mock.Anything, "123", "tester").Return(registered, nil)
				me.On("Buy", mock.Anything, "user-1", "guild-1", "agua", 3).
					Return(nil, domain.ErrOutOfStock)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgOutOfStockError,
		},
		{
			name: "Not enough money",
			reqBody: ShopRequest{
				DiscordID: "123", Username: "tester", GuildID: "guild-1",
				ItemName: "agua", Quantity: 3,
			},
			setupMocks: func(mu *MockUserService, me *MockEconomyService) {
				mu.On("RegisterUser", mock.Anything, "123", "tester").Return(registered, nil)
				me.On("Buy", mock.Anything, "user-1", "guild-1", "agua", 3).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughMoneyError,
		},
		{
			name: "Success",
			reqBody: ShopRequest{
				DiscordID: "123", Username: "tester", GuildID: "guild-1",
				ItemName: "agua", Quantity: 3,
			},
			setupMocks: func(mu *MockUserService, me *MockEconomyService) {
				mu.On("RegisterUser", mock.Anything, "123", "tester").Return(registered, nil)
				me.On("Buy", mock.Anything, "user-1", "guild-1", "agua", 3).
					Return(&economy.BuyResult{ItemName: "agua", Quantity: 3, Cost: 15}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"cost":15`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserService)
			mockEconomy := new(MockEconomyService)
			tt.setupMocks(mockUser, mockEconomy)

			var body bytes.Buffer
			assert.NoError(t, json.NewEncoder(&body).Encode(tt.reqBody))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/item/buy", &body)
			rec := httptest.NewRecorder()

			HandleBuyItem(mockUser, mockEconomy)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockEconomy.AssertExpectations(t)
		})
	}
}

func TestHandleWithdraw_ReportsMovedAmount(t *testing.T) {
	mockUser := new(MockUserService)
	mockEconomy := new(MockEconomyService)

	mockUser.On("RegisterUser", mock.Anything, "123", "tester").
		Return(&domain.User{ID: "user-1"}, nil)
	// The wallet receives only what the bank actually held.
	mockEconomy.On("WithdrawToWallet", mock.Anything, "user-1", "guild-1", 100).Return(40, nil)

	var body bytes.Buffer
	assert.NoError(t, json.NewEncoder(&body).Encode(BankMoveRequest{
		DiscordID: "123", Username: "tester", GuildID: "guild-1", Amount: 100,
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/economy/withdraw", &body)
	rec := httptest.NewRecorder()

	HandleWithdraw(mockUser, mockEconomy)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"moved":40`)
}
