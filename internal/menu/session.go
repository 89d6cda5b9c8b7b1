// Package menu drives the interactive prompt that collects a report query.
package menu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/carson-networks/txreport/internal/loader"
	"github.com/carson-networks/txreport/internal/service"
	"github.com/carson-networks/txreport/internal/transaction"
)

// ErrInvalidChoice is wrapped by every error Apply returns for input it
// does not accept. The error text is the message shown to the user.
var ErrInvalidChoice = errors.New("invalid choice")

type choiceError struct {
	message string
}

func (e *choiceError) Error() string { return e.message }

func (e *choiceError) Unwrap() error { return ErrInvalidChoice }

func invalid(format string, args ...any) error {
	return &choiceError{message: fmt.Sprintf(format, args...)}
}

// State is a step of the menu.
type State int

const (
	StateSource State = iota
	StatePath
	StateStatus
	StateSortToggle
	StateSortOrder
	StateCurrencyToggle
	StateDescriptionToggle
	StateDescriptionPattern
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSource:
		return "source"
	case StatePath:
		return "path"
	case StateStatus:
		return "status"
	case StateSortToggle:
		return "sortToggle"
	case StateSortOrder:
		return "sortOrder"
	case StateCurrencyToggle:
		return "currencyToggle"
	case StateDescriptionToggle:
		return "descriptionToggle"
	case StateDescriptionPattern:
		return "descriptionPattern"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var sourceChoices = map[string]loader.Source{
	"1": loader.SourceJSON,
	"2": loader.SourceCSV,
	"3": loader.SourceXLSX,
}

var sourceNames = map[loader.Source]string{
	loader.SourceJSON: "JSON",
	loader.SourceCSV:  "CSV",
	loader.SourceXLSX: "XLSX",
}

var (
	yesWords = []string{"да", "д", "yes", "y"}
	noWords  = []string{"нет", "н", "no", "n"}

	ascendingWords  = []string{"по возрастанию", "возрастанию", "asc", "ascending"}
	descendingWords = []string{"по убыванию", "убыванию", "desc", "descending"}
)

// Session holds the answers given so far and the step waiting for input.
// A Session is not safe for concurrent use.
type Session struct {
	state     State
	source    loader.Source
	path      string
	query     service.Query
	defaults  map[loader.Source]string
	reference string
}

// NewSession starts a menu at the source choice. defaults holds the path used
// when the user leaves the path prompt empty; reference is the currency code
// offered by the currency toggle.
func NewSession(defaults map[loader.Source]string, reference string) *Session {
	return &Session{
		state:     StateSource,
		defaults:  defaults,
		reference: strings.ToUpper(reference),
	}
}

func (s *Session) State() State { return s.state }

// Done reports whether every answer has been collected.
func (s *Session) Done() bool { return s.state == StateDone }

func (s *Session) Source() loader.Source { return s.source }

func (s *Session) Path() string { return s.path }

// Query returns the filters chosen so far.
func (s *Session) Query() service.Query { return s.query }

// Prompt returns the text asking for the current step's input.
func (s *Session) Prompt() string {
	switch s.state {
	case StateSource:
		return "Выберите необходимый пункт меню:\n" +
			"1. Получить информацию о транзакциях из JSON-файла\n" +
			"2. Получить информацию о транзакциях из CSV-файла\n" +
			"3. Получить информацию о транзакциях из XLSX-файла"
	case StatePath:
		if def := s.defaults[s.source]; def != "" {
			return fmt.Sprintf("Введите путь к файлу (Enter, чтобы использовать %s):", def)
		}
		return "Введите путь к файлу:"
	case StateStatus:
		return "Введите статус, по которому необходимо выполнить фильтрацию.\n" +
			"Доступные для фильтровки статусы: " + strings.Join(transaction.States, ", ")
	case StateSortToggle:
		return "Отсортировать операции по дате? Да/Нет"
	case StateSortOrder:
		return "Отсортировать по возрастанию или по убыванию?"
	case StateCurrencyToggle:
		if s.reference == "RUB" {
			return "Выводить только рублевые транзакции? Да/Нет"
		}
		return fmt.Sprintf("Выводить только транзакции в %s? Да/Нет", s.reference)
	case StateDescriptionToggle:
		return "Отфильтровать список транзакций по определенному слову в описании? Да/Нет"
	case StateDescriptionPattern:
		return "Введите слово для поиска в описании:"
	default:
		return ""
	}
}

// Apply validates input for the current step and moves to the next one. The
// returned notice, possibly empty, confirms the choice to the user. Rejected
// input leaves the state unchanged and returns an error wrapping
// ErrInvalidChoice.
func (s *Session) Apply(input string) (string, error) {
	input = strings.TrimSpace(input)

	switch s.state {
	case StateSource:
		source, ok := sourceChoices[input]
		if !ok {
			return "", invalid("Пункт меню \"%s\" недоступен.", input)
		}
		s.source = source
		s.state = StatePath
		return fmt.Sprintf("Для обработки выбран %s-файл.", sourceNames[source]), nil

	case StatePath:
		path := input
		if path == "" {
			path = s.defaults[s.source]
		}
		if path == "" {
			return "", invalid("Путь к файлу не указан.")
		}
		s.path = path
		s.state = StateStatus
		return "", nil

	case StateStatus:
		state := strings.ToUpper(input)
		if !slices.Contains(transaction.States, state) {
			return "", invalid("Статус операции \"%s\" недоступен.", input)
		}
		s.query.State = state
		s.state = StateSortToggle
		return fmt.Sprintf("Операции отфильтрованы по статусу \"%s\"", state), nil

	case StateSortToggle:
		yes, err := yesNo(input)
		if err != nil {
			return "", err
		}
		if yes {
			s.state = StateSortOrder
		} else {
			s.query.Sort = service.SortNone
			s.state = StateCurrencyToggle
		}
		return "", nil

	case StateSortOrder:
		folded := fold(input)
		switch {
		case slices.Contains(ascendingWords, folded):
			s.query.Sort = service.SortAscending
		case slices.Contains(descendingWords, folded):
			s.query.Sort = service.SortDescending
		default:
			return "", invalid("Порядок сортировки \"%s\" недоступен.", input)
		}
		s.state = StateCurrencyToggle
		return "", nil

	case StateCurrencyToggle:
		yes, err := yesNo(input)
		if err != nil {
			return "", err
		}
		s.query.ReferenceOnly = yes
		s.state = StateDescriptionToggle
		return "", nil

	case StateDescriptionToggle:
		yes, err := yesNo(input)
		if err != nil {
			return "", err
		}
		if yes {
			s.state = StateDescriptionPattern
		} else {
			s.state = StateDone
		}
		return "", nil

	case StateDescriptionPattern:
		if input == "" {
			return "", invalid("Слово для поиска не может быть пустым.")
		}
		s.query.DescriptionFilter = input
		s.state = StateDone
		return "", nil
	}

	return "", invalid("Меню уже заполнено.")
}

func yesNo(input string) (bool, error) {
	folded := fold(input)
	switch {
	case slices.Contains(yesWords, folded):
		return true, nil
	case slices.Contains(noWords, folded):
		return false, nil
	}
	return false, invalid("Ответ \"%s\" не распознан. Введите Да или Нет.", input)
}

func fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
