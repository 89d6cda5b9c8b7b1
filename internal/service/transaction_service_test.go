package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/txreport/internal/currency"
	"github.com/carson-networks/txreport/internal/loader"
	"github.com/carson-networks/txreport/internal/logging"
	"github.com/carson-networks/txreport/internal/processing"
	"github.com/carson-networks/txreport/internal/transaction"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) Read(ctx context.Context, path string) ([]transaction.Transaction, error) {
	args := m.Called(ctx, path)
	txs, _ := args.Get(0).([]transaction.Transaction)
	return txs, args.Error(1)
}

func newTestService(t *testing.T) (*TransactionService, *mockReader) {
	t.Helper()
	reader := &mockReader{}
	t.Cleanup(func() { reader.AssertExpectations(t) })
	readers := loader.Readers{loader.SourceJSON: reader}
	return NewTransactionService(readers, "RUB", logging.Discard()), reader
}

func amount(value, name, code string) *transaction.OperationAmount {
	return &transaction.OperationAmount{
		Amount:   decimal.NewNullDecimal(decimal.RequireFromString(value)),
		Currency: transaction.Currency{Name: name, Code: code},
	}
}

func fixture() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: 1, State: "EXECUTED", Date: "2019-12-08T22:45:06.000000", OperationAmount: amount("40542.00", "руб.", "RUB"), Description: "Открытие вклада", To: "Счет **4321"},
		{ID: 2, State: "EXECUTED", Date: "2019-11-12T19:35:28.000000", OperationAmount: amount("130.00", "USD", "USD"), Description: "Перевод с карты на карту", From: "MasterCard 7771 27** **** 3727", To: "Visa Platinum 1293 38** **** 9203"},
		{ID: 3, State: "CANCELED", Date: "2018-07-18T18:05:00.000000", OperationAmount: amount("8390.00", "руб.", "RUB"), Description: "Перевод организации", From: "Visa Platinum 7492 65** **** 7202", To: "Счет **0034"},
		{ID: 4, State: "PENDING", Date: "2018-06-03T10:30:15.000000", OperationAmount: amount("8200.00", "EUR", "EUR"), Description: "Перевод со счета на счет", From: "Счет **2935", To: "Счет **4321"},
	}
}

func ids(txs []transaction.Transaction) []int {
	out := make([]int, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

// -- Load tests --

func TestLoad_Success(t *testing.T) {
	svc, reader := newTestService(t)
	reader.On("Read", mock.Anything, "data/operations.json").Return(fixture(), nil).Once()

	txs := svc.Load(context.Background(), loader.SourceJSON, "data/operations.json")

	assert.Len(t, txs, 4)
}

func TestLoad_ReaderErrorIsEmpty(t *testing.T) {
	svc, reader := newTestService(t)
	reader.On("Read", mock.Anything, "missing.json").Return(nil, loader.ErrNotFound).Once()

	txs := svc.Load(context.Background(), loader.SourceJSON, "missing.json")

	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestLoad_UnknownSourceIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	txs := svc.Load(context.Background(), loader.SourceXLSX, "x.xlsx")

	assert.Empty(t, txs)
}

// -- Apply tests --

func TestApply_StateOnly(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Apply(context.Background(), fixture(), Query{State: "EXECUTED"})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestApply_DefaultState(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Apply(context.Background(), fixture(), Query{})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestApply_SortAscending(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Apply(context.Background(), fixture(), Query{State: "EXECUTED", Sort: SortAscending})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
}

func TestApply_ReferenceOnly(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Apply(context.Background(), fixture(), Query{State: "EXECUTED", ReferenceOnly: true})

	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_Description(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Apply(context.Background(), fixture(), Query{State: "EXECUTED", DescriptionFilter: "перевод"})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(got))
}

func TestApply_SortErrorPropagates(t *testing.T) {
	svc, _ := newTestService(t)
	txs := []transaction.Transaction{{ID: 1, State: "EXECUTED"}}

	_, err := svc.Apply(context.Background(), txs, Query{State: "EXECUTED", Sort: SortDescending})

	assert.True(t, errors.Is(err, processing.ErrMissingDate))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	svc, _ := newTestService(t)
	txs := fixture()

	_, err := svc.Apply(context.Background(), txs, Query{State: "EXECUTED", Sort: SortDescending})

	require.NoError(t, err)
	assert.Equal(t, fixture(), txs)
}

func TestNewService(t *testing.T) {
	converter := currency.NewConverter(nil, currency.Options{Reference: "RUB"}, logging.Discard())

	svc := NewService(loader.NewReaders(logging.Discard()), converter, logging.Discard())

	assert.Same(t, converter, svc.Converter)
	assert.Equal(t, "RUB", svc.Transaction.reference)
}
