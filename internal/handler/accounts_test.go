package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/haatos/simple-shop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAccountHandler_GetAccounts(t *testing.T) {
	t.Run("success - accounts filtered by query", func(t *testing.T) {
		// arrange
		superAdmin := generateAccount(access.SuperAdmin, false)
		expected := []*store.Account{generateAccount(access.RegularUser, false)}
		mockService := new(testutil.MockAccountService)
		mockService.On("ListAccounts", mock.Anything, superAdmin, "sam").Return(expected, nil)
		c, rec := newJSONContext(http.MethodGet, "/api/accounts?q=sam", "")
		c.Set(ctxAccountKey, superAdmin)
		h := NewAccountHandler(mockService)

		// act
		err := h.GetAccounts(c)

		// assert
		assert.NoError(t, err)
		var res []*store.Account
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, expected[0].AccountID, res[0].AccountID)
	})
	t.Run("failure - junior admin may not list accounts", func(t *testing.T) {
		// arrange
		juniorAdmin := generateAccount(access.JuniorAdmin, false)
		mockService := new(testutil.MockAccountService)
		mockService.On("ListAccounts", mock.Anything, juniorAdmin, "").
			Return(nil, &access.AuthorizationError{Action: access.ManageAccounts, Role: access.JuniorAdmin})
		c, _ := newJSONContext(http.MethodGet, "/api/accounts", "")
		c.Set(ctxAccountKey, juniorAdmin)
		h := NewAccountHandler(mockService)

		// act
		err := h.GetAccounts(c)

		// assert
		var authzErr *access.AuthorizationError
		assert.ErrorAs(t, err, &authzErr)
	})
}

func TestAccountHandler_PostAccountAction(t *testing.T) {
	t.Run("success - account banned", func(t *testing.T) {
		// arrange
		superAdmin := generateAccount(access.SuperAdmin, false)
		target := generateAccount(access.RegularUser, true)
		mockService := new(testutil.MockAccountService)
		mockService.On("ApplyAccountAction", mock.Anything, superAdmin, target.AccountID, access.Ban).
			Return(target, nil)
		c, rec := newJSONContext(http.MethodPost, "/", `{"action":"ban"}`)
		c.SetPath("/api/accounts/:account_id/actions")
		c.SetParamNames("account_id")
		c.SetParamValues(jsonID(target.AccountID))
		c.Set(ctxAccountKey, superAdmin)
		h := NewAccountHandler(mockService)

		// act
		err := h.PostAccountAction(c)

		// assert
		assert.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `"banned":true`)
		mockService.AssertExpectations(t)
	})
	t.Run("failure - unknown action", func(t *testing.T) {
		// arrange
		mockService := new(testutil.MockAccountService)
		c, _ := newJSONContext(http.MethodPost, "/", `{"action":"delete"}`)
		c.SetPath("/api/accounts/:account_id/actions")
		c.SetParamNames("account_id")
		c.SetParamValues("1")
		c.Set(ctxAccountKey, generateAccount(access.SuperAdmin, false))
		h := NewAccountHandler(mockService)

		// act
		err := h.PostAccountAction(c)

		// assert
		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		mockService.AssertNotCalled(
			t, "ApplyAccountAction",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		)
	})
}
