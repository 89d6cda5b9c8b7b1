package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/logging"
	"github.com/carson-networks/txreport/internal/loader"
	"github.com/carson-networks/txreport/internal/report"
	"github.com/carson-networks/txreport/internal/service"
)

const (
	msgGreeting  = "Привет! Добро пожаловать в программу работы с банковскими транзакциями."
	msgSortError = "Не удалось отсортировать операции по дате: у части операций нет корректной даты. Список выведен без сортировки."
)

// Runner asks the menu questions over a line-oriented input and prints the
// resulting report.
type Runner struct {
	in       io.Reader
	out      io.Writer
	svc      *service.Service
	printer  *report.Printer
	defaults map[loader.Source]string
	logger   *logrus.Logger
}

func NewRunner(
	in io.Reader,
	out io.Writer,
	svc *service.Service,
	printer *report.Printer,
	defaults map[loader.Source]string,
	logger *logrus.Logger,
) *Runner {
	return &Runner{
		in:       in,
		out:      out,
		svc:      svc,
		printer:  printer,
		defaults: defaults,
		logger:   logger,
	}
}

// Run greets the user, collects one query and prints its report. It returns
// io.ErrUnexpectedEOF if the input ends before the menu is complete.
func (r *Runner) Run(ctx context.Context) error {
	sessionID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}

	return logging.Observe("Menu.Run", r.logger, func(logData *logging.LogData) error {
		logData.AddData("sessionId", sessionID.String())

		session := NewSession(r.defaults, r.svc.Converter.Reference())
		if err := r.collect(ctx, session); err != nil {
			logData.AddData("stoppedAt", session.State().String())
			return err
		}

		query := session.Query()
		logData.AddData("source", session.Source().String())
		logData.AddData("path", session.Path())
		logData.AddData("state", query.State)
		logData.AddData("sort", int(query.Sort))
		logData.AddData("referenceOnly", query.ReferenceOnly)
		logData.AddData("descriptionFilter", query.DescriptionFilter)

		txs := r.svc.Transaction.Load(ctx, session.Source(), session.Path())
		logData.AddData("loaded", len(txs))

		result, err := r.svc.Transaction.Apply(ctx, txs, query)
		if err != nil {
			r.logger.WithError(err).WithField("sessionId", sessionID.String()).Warn("Menu.Run.sortFailed")
			fmt.Fprintln(r.out, msgSortError)

			query.Sort = service.SortNone
			if result, err = r.svc.Transaction.Apply(ctx, txs, query); err != nil {
				return err
			}
		}
		logData.AddData("selected", len(result))

		r.printer.Print(ctx, result)
		return nil
	})
}

func (r *Runner) collect(ctx context.Context, session *Session) error {
	fmt.Fprintln(r.out, msgGreeting)

	scanner := bufio.NewScanner(r.in)
	for !session.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(r.out, session.Prompt())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return io.ErrUnexpectedEOF
		}

		notice, err := session.Apply(strings.TrimRight(scanner.Text(), "\r"))
		if err != nil {
			if errors.Is(err, ErrInvalidChoice) {
				fmt.Fprintln(r.out, err.Error())
				continue
			}
			return err
		}
		if notice != "" {
			fmt.Fprintln(r.out, notice)
		}
	}
	return nil
}
