package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/txreport/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestReaders() Readers {
	return NewReaders(logging.Discard())
}

func TestJSONReader_Success(t *testing.T) {
	path := writeFile(t, "operations.json", `[
		{"id": 1, "state": "EXECUTED", "date": "2019-12-08T22:45:06.000000",
		 "operationAmount": {"amount": "40542.00", "currency": {"name": "руб.", "code": "RUB"}},
		 "description": "Открытие вклада", "to": "Счет **4321"},
		{}
	]`)

	txs, err := (&JSONReader{logger: logging.Discard()}).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 1, txs[0].ID)
	assert.Equal(t, "Счет **4321", txs[0].To)
	assert.Equal(t, "RUB", txs[0].CurrencyCode())
	assert.Equal(t, 0, txs[1].ID)
}

func TestJSONReader_SkipsUndecodableRecords(t *testing.T) {
	logger, hook := test.NewNullLogger()
	path := writeFile(t, "mixed.json", `[
		{"id": 1, "state": "EXECUTED", "description": "ok"},
		{"id": "2", "state": "EXECUTED"},
		{"operationAmount": {"amount": "", "currency": {"code": "RUB"}}},
		{"id": 4, "state": "PENDING"}
	]`)

	txs, err := (&JSONReader{logger: logger}).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 1, txs[0].ID)
	assert.Equal(t, "ok", txs[0].Description)
	assert.Equal(t, 4, txs[1].ID)

	skipped := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Loader.Record.skipped" {
			skipped++
		}
	}
	assert.Equal(t, 2, skipped)
}

func TestJSONReader_Failures(t *testing.T) {
	reader := &JSONReader{logger: logging.Discard()}

	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reader.Read(context.Background(), writeFile(t, "object.json", `{"id": 1}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = reader.Read(context.Background(), writeFile(t, "invalid.json", `invalid`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = reader.Read(context.Background(), writeFile(t, "null.json", `null`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestJSONReader_EmptyArray(t *testing.T) {
	txs, err := (&JSONReader{logger: logging.Discard()}).Read(context.Background(), writeFile(t, "empty.json", `[]`))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCSVReader_FlattenedColumns(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"id,state,date,description,operationAmount.amount,operationAmount.currency.name,operationAmount.currency.code,from,to\n"+
			"1,EXECUTED,2023-01-01T10:00:00.000000,Покупка,100.00,руб.,RUB,,Счет **1234\n"+
			"2,EXECUTED,2023-01-02T11:00:00.000000,Перевод,50.00,USD,USD,Visa 1234 56** **** 7890,MasterCard 9876 54** **** 3210\n")

	txs, err := (&CSVReader{logger: logging.Discard()}).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Покупка", txs[0].Description)
	assert.Equal(t, "USD", txs[1].CurrencyCode())
	assert.Equal(t, "Visa 1234 56** **** 7890", txs[1].From)
	amount, ok := txs[1].Money()
	assert.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("50.00")))
}

func TestCSVReader_SemicolonAndSkippedRows(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"id;state;date;amount;currency_name;currency_code;from;to;description\n"+
			"650703;EXECUTED;2023-09-05T11:30:32Z;16210;Sol;PEN;Счет 58803664561298323391;Счет 39745660563456619397;Перевод организации\n"+
			"3598919;EXECUTED;;29740;Peso;COP;Discover 3172601889670065;Discover 0720428384694643;Перевод с карты на карту\n"+
			"593027;CANCELED;2023-07-22T05:02:01Z;abc;Shilling;TZS;Visa 1959232722494097;Visa 6804119550473710;Перевод с карты на карту\n")

	txs, err := (&CSVReader{logger: logging.Discard()}).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 650703, txs[0].ID)
	assert.Equal(t, "PEN", txs[0].CurrencyCode())
	assert.Equal(t, "Sol", txs[0].CurrencyName())
}

func TestCSVReader_Failures(t *testing.T) {
	reader := &CSVReader{logger: logging.Discard()}

	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reader.Read(context.Background(), writeFile(t, "empty.csv", ""))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = reader.Read(context.Background(), writeFile(t, "cols.csv", "id,state\n1,EXECUTED\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.ErrorContains(t, err, "date, description, amount")
}

func TestXLSXReader_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions_excel.xlsx")
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{"id", "state", "date", "amount", "currency_code", "description", "category"}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{4699552, "EXECUTED", "2022-03-23T08:29:37Z", 23423, "PEN", "Перевод организации", "Переводы"}))
	require.NoError(t, book.SetSheetRow(sheet, "A3", &[]any{"", "PENDING", "2021-12-08T22:45:06Z", "12.5", "RUB", "XLSX Test", ""}))
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())

	txs, err := (&XLSXReader{logger: logging.Discard()}).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 4699552, txs[0].ID)
	assert.Equal(t, "Переводы", txs[0].Category)
	assert.Equal(t, "PEN", txs[0].CurrencyCode())
	assert.Equal(t, 0, txs[1].ID)
	assert.Equal(t, "XLSX Test", txs[1].Description)
}

func TestXLSXReader_Failures(t *testing.T) {
	reader := &XLSXReader{logger: logging.Discard()}

	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reader.Read(context.Background(), writeFile(t, "broken.xlsx", "not a workbook"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReaders_For(t *testing.T) {
	readers := newTestReaders()

	for _, source := range []Source{SourceJSON, SourceCSV, SourceXLSX} {
		r, err := readers.For(source)
		assert.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := readers.For(Source(42))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSourceForPath(t *testing.T) {
	cases := map[string]Source{
		"data/operations.json": SourceJSON,
		"x.CSV":                SourceCSV,
		"x.xlsx":               SourceXLSX,
		"x.xls":                SourceXLSX,
	}
	for path, want := range cases {
		got, err := SourceForPath(path)
		assert.NoError(t, err)
		assert.Equal(t, want, got, path)
	}

	_, err := SourceForPath("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "json", SourceJSON.String())
	assert.Equal(t, "Source(9)", Source(9).String())
}
