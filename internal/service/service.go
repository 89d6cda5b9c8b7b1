package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/currency"
	"github.com/carson-networks/txreport/internal/loader"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Converter   *currency.Converter
}

// NewService wires the transaction pipeline to the given readers and converter.
func NewService(readers loader.Readers, converter *currency.Converter, logger *logrus.Logger) *Service {
	return &Service{
		Transaction: NewTransactionService(readers, converter.Reference(), logger),
		Converter:   converter,
	}
}
