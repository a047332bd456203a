package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmulders/veridose/internal/customer"
	"github.com/jmulders/veridose/internal/transaction"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := svc.Create(context.Background(), transaction.CreateParams{
		Reference: "ORD-42",
		Holder:    customer.HolderKey{Account: "C1001", Jurisdiction: "NL"},
		Direction: transaction.DirectionOutbound,
		Lines: []transaction.Line{
			{SubstanceCode: "MORPHINE", Quantity: decimal.NewFromInt(100), Unit: "g"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, transaction.ValidationPending, tx.ValidationStatus)
	assert.Equal(t, transaction.OverrideNone, tx.OverrideStatus)
	assert.Equal(t, "ORD-42", tx.Reference)
}

func TestService_Create_NoLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	_, err := svc.Create(context.Background(), transaction.CreateParams{Reference: "ORD-42"})
	assert.ErrorIs(t, err, transaction.ErrNoLines)
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	_, err := svc.Create(context.Background(), transaction.CreateParams{
		Reference: "ORD-42",
		Lines:     []transaction.Line{{SubstanceCode: "MORPHINE", Quantity: decimal.NewFromInt(1), Unit: "g"}},
	})
	assert.Error(t, err)
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(&transaction.Transaction{ID: id}, nil)

	tx, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID)
}

func TestService_List_FilterPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	failed := transaction.ValidationFailed
	filter := transaction.ListFilter{Status: &failed}
	repo.EXPECT().List(gomock.Any(), filter).Return([]*transaction.Transaction{{}, {}}, nil)

	txs, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
