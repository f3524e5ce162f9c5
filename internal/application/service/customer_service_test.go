package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerTrimsAndNormalizes(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo())

	blank := "   "
	phone := " 0712345678 "
	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "  Jane Wanjiku  ",
		Phone:  &phone,
		Email:  &blank,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Wanjiku", customer.Name)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "0712345678", *customer.Phone)
	assert.Nil(t, customer.Email)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "   ",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo())

	name := "Otieno"
	_, err := svc.UpdateCustomer(context.Background(), uuid.New(), &UpdateCustomerInput{Name: &name})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
