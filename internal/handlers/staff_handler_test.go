package handlers_test

import (
	"net/http"
	"testing"

	"github.com/sliceline/pizzeria/pkg/models"
	"github.com/stretchr/testify/assert"
)

func staffEnv() (*testEnv, string, string) {
	env := newTestEnv()
	staffToken := env.addUser(models.User{ID: 1, Username: "boss", IsStaff: true})
	userToken := env.addUser(models.User{ID: 2, Username: "johndoe"})
	return env, staffToken, userToken
}

func TestListAllOrders_NonStaffForbidden(t *testing.T) {
	env, _, userToken := staffEnv()

	w := env.doJSON(t, http.MethodGet, "/staff/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListAllOrders_SeesEveryOrder(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})
	env.doJSON(t, http.MethodPost, "/order/", staffToken, map[string]interface{}{"quantity": 2})

	w := env.doJSON(t, http.MethodGet, "/staff/", staffToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	orders := decodeBody(t, w)["orders"].([]interface{})
	assert.Len(t, orders, 2)
}

func TestListAllOrders_EmptyIsSuccessMessage(t *testing.T) {
	env, staffToken, _ := staffEnv()

	w := env.doJSON(t, http.MethodGet, "/staff/", staffToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No orders found.", decodeBody(t, w)["message"])
}

func TestGetAnyOrder_StaffOnly(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})

	// Staff can read any order, regardless of owner.
	w := env.doJSON(t, http.MethodGet, "/staff/1", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, float64(2), order["user_id"])

	// Non-staff gets 403 whether or not the order exists.
	w = env.doJSON(t, http.MethodGet, "/staff/1", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.doJSON(t, http.MethodGet, "/staff/42", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAnyOrder_Missing404(t *testing.T) {
	env, staffToken, _ := staffEnv()

	w := env.doJSON(t, http.MethodGet, "/staff/42", staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus_QueryParam(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})

	w := env.doJSON(t, http.MethodPut, "/staff/1?order_status=shipped", staffToken, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["order_id"])
	assert.Equal(t, "shipped", body["new_status"])

	// Owner sees the new status.
	w = env.doJSON(t, http.MethodGet, "/order/1/", userToken, nil)
	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "shipped", order["order_status"])
}

func TestUpdateOrderStatus_Body(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})

	w := env.doJSON(t, http.MethodPut, "/staff/1", staffToken, map[string]string{
		"order_status": "cancelled",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cancelled", decodeBody(t, w)["new_status"])
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})

	w := env.doJSON(t, http.MethodPut, "/staff/1?order_status=teleported", staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus_NonStaff401(t *testing.T) {
	env, _, userToken := staffEnv()

	w := env.doJSON(t, http.MethodPut, "/staff/1?order_status=shipped", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateOrderStatus_Missing404(t *testing.T) {
	env, staffToken, _ := staffEnv()

	w := env.doJSON(t, http.MethodPut, "/staff/42?order_status=shipped", staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnyOrder_StaffDeletesForeignOrder(t *testing.T) {
	env, staffToken, userToken := staffEnv()

	env.doJSON(t, http.MethodPost, "/order/", userToken, map[string]interface{}{"quantity": 1})

	w := env.doJSON(t, http.MethodDelete, "/staff/1", staffToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Gone for staff and owner alike.
	w = env.doJSON(t, http.MethodGet, "/staff/1", staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.doJSON(t, http.MethodGet, "/order/1/", userToken, nil)
	assert.Equal(t, "Order not found", decodeBody(t, w)["message"])
}

func TestDeleteAnyOrder_NonStaff401(t *testing.T) {
	env, _, userToken := staffEnv()

	w := env.doJSON(t, http.MethodDelete, "/staff/1", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAnyOrder_Missing404(t *testing.T) {
	env, staffToken, _ := staffEnv()

	w := env.doJSON(t, http.MethodDelete, "/staff/42", staffToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
