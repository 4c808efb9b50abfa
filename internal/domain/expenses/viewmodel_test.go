package expenses

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeExpensesAPI struct {
	listed  []Expense
	created Expense
	updated Expense
	err     error
	calls   int
}

func (f *fakeExpensesAPI) ListExpenses(context.Context) ([]Expense, error) {
	f.calls++
	return f.listed, f.err
}

func (f *fakeExpensesAPI) CreateExpense(context.Context, CreateInput) (Expense, error) {
	f.calls++
	return f.created, f.err
}

func (f *fakeExpensesAPI) UpdateExpense(context.Context, int64, UpdateInput) (Expense, error) {
	f.calls++
	return f.updated, f.err
}

func (f *fakeExpensesAPI) DeleteExpense(context.Context, int64) error {
	f.calls++
	return f.err
}

func expense(id int64, amount string, at time.Time) Expense {
	return Expense{ID: &id, Amount: decimal.RequireFromString(amount), Category: "餐饮", CreatedAt: at}
}

func intPtr(v int) *int { return &v }

func sampleExpenses() []Expense {
	return []Expense{
		expense(1, "10.10", time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)),
		expense(2, "20.20", time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)),
		expense(3, "0.70", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func newVM(api *fakeExpensesAPI, seed ...Expense) *ViewModel {
	vm := NewViewModel(api, logger.Nop(), false)
	vm.items.Replace(seed)
	return vm
}

func ids(items []Expense) []int64 {
	result := make([]int64, 0, len(items))
	for _, e := range items {
		result = append(result, *e.ID)
	}
	return result
}

func TestFilter(t *testing.T) {
	items := sampleExpenses()

	tests := []struct {
		name  string
		year  *int
		month *int
		want  []int64
		total string
	}{
		{name: "no filter", want: []int64{1, 2, 3}, total: "31"},
		{name: "year only", year: intPtr(2024), want: []int64{1, 2}, total: "30.3"},
		{name: "year and month", year: intPtr(2024), month: intPtr(5), want: []int64{1}, total: "10.1"},
		{name: "month only", month: intPtr(5), want: []int64{1, 3}, total: "10.8"},
		{name: "nothing matches", year: intPtr(2020), want: []int64{}, total: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.year, tt.month)
			assert.Equal(t, tt.want, ids(got))
			assert.True(t, decimal.RequireFromString(tt.total).Equal(Total(got)), "total %s", Total(got))
		})
	}

	assert.Len(t, items, 3)
}

func TestViewModelFilterAndClear(t *testing.T) {
	vm := newVM(&fakeExpensesAPI{}, sampleExpenses()...)

	require.NoError(t, vm.SetFilter(intPtr(2024), intPtr(4)))
	assert.Equal(t, []int64{2}, ids(vm.Filtered()))
	assert.True(t, decimal.RequireFromString("20.2").Equal(vm.FilteredTotal()))
	assert.True(t, decimal.RequireFromString("31").Equal(vm.Total()))

	vm.ClearFilter()
	assert.Len(t, vm.Filtered(), 3)
	assert.Len(t, vm.Expenses(), 3)

	assert.ErrorIs(t, vm.SetFilter(nil, intPtr(13)), apierr.ErrInvalidInput)
}

func TestCreatePrependsAndGrowsByOne(t *testing.T) {
	created := expense(9, "5", time.Now())
	api := &fakeExpensesAPI{created: created}
	vm := newVM(api, sampleExpenses()...)

	_, err := vm.Create(context.Background(), CreateInput{Amount: decimal.RequireFromString("5"), Category: "交通"})
	require.NoError(t, err)

	items := vm.Expenses()
	require.Len(t, items, 4)
	assert.Equal(t, created, items[0])
}

func TestCreateValidation(t *testing.T) {
	api := &fakeExpensesAPI{}
	vm := newVM(api)

	_, err := vm.Create(context.Background(), CreateInput{Amount: decimal.Zero, Category: "餐饮"})
	require.ErrorIs(t, err, apierr.ErrInvalidInput)

	_, err = vm.Create(context.Background(), CreateInput{Amount: decimal.NewFromInt(1), Category: " "})
	require.ErrorIs(t, err, apierr.ErrInvalidInput)

	assert.Equal(t, 0, api.calls)
	assert.Equal(t, "choose a category", vm.Snapshot().Error)
}

func TestFailedMutationsLeaveCollectionUnchanged(t *testing.T) {
	seed := sampleExpenses()
	api := &fakeExpensesAPI{err: &apierr.NetworkError{Cause: context.DeadlineExceeded}}
	vm := newVM(api, seed...)
	ctx := context.Background()

	_, err := vm.Create(ctx, CreateInput{Amount: decimal.NewFromInt(1), Category: "餐饮"})
	require.Error(t, err)
	require.Error(t, vm.Delete(ctx, 1))
	amount := decimal.NewFromInt(3)
	require.Error(t, vm.Update(ctx, 2, UpdateInput{Amount: &amount}))

	assert.Equal(t, seed, vm.Expenses())
	assert.Equal(t, context.DeadlineExceeded.Error(), vm.Snapshot().Error)
}

func TestDeleteTwiceIsNoOp(t *testing.T) {
	api := &fakeExpensesAPI{}
	vm := newVM(api, sampleExpenses()...)

	require.NoError(t, vm.Delete(context.Background(), 2))
	require.NoError(t, vm.Delete(context.Background(), 2))

	assert.Equal(t, []int64{1, 3}, ids(vm.Expenses()))
	assert.Equal(t, 1, api.calls)
}

func TestUpdateReplacesByID(t *testing.T) {
	updated := expense(2, "99", time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC))
	api := &fakeExpensesAPI{updated: updated}
	vm := newVM(api, sampleExpenses()...)

	amount := decimal.NewFromInt(99)
	require.NoError(t, vm.Update(context.Background(), 2, UpdateInput{Amount: &amount}))

	assert.Equal(t, updated, vm.Expenses()[1])
}

func TestLoadReplacesAndFailureKeeps(t *testing.T) {
	api := &fakeExpensesAPI{listed: sampleExpenses()[:1]}
	vm := newVM(api, sampleExpenses()...)

	require.NoError(t, vm.Load(context.Background()))
	assert.Equal(t, []int64{1}, ids(vm.Expenses()))

	api.err = apierr.ErrUnauthorized
	require.ErrorIs(t, vm.Load(context.Background()), apierr.ErrUnauthorized)
	assert.Equal(t, []int64{1}, ids(vm.Expenses()))
	assert.Equal(t, apierr.MessageUnauthorized, vm.Snapshot().Error)
}

func TestExpenseDecoding(t *testing.T) {
	tests := []struct {
		name      string
		createdAt string
		want      time.Time
	}{
		{name: "rfc3339", createdAt: "2024-05-01T12:30:00Z", want: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{name: "micros with offset", createdAt: "2024-05-01T12:30:00.123456+0800", want: time.Date(2024, 5, 1, 4, 30, 0, 123456000, time.UTC)},
		{name: "no zone", createdAt: "2024-05-01T12:30:00", want: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{name: "space separated", createdAt: "2024-05-01 12:30:00", want: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Expense
			payload := `{"id":1,"amount":"3.50","category":"购物","created_at":"` + tt.createdAt + `"}`
			require.NoError(t, json.Unmarshal([]byte(payload), &e))
			assert.True(t, tt.want.Equal(e.CreatedAt), "got %s", e.CreatedAt)
			assert.Nil(t, e.Note)
		})
	}
}

func TestExpenseDecodingFallbacksAndFailures(t *testing.T) {
	var e Expense
	before := time.Now().Add(-time.Second)
	require.NoError(t, json.Unmarshal([]byte(`{"amount":1,"category":"x","created_at":"yesterday"}`), &e))
	assert.True(t, e.CreatedAt.After(before))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":1,"category":"x"}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"category":"x","created_at":"2024-05-01T00:00:00Z"}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc","category":"x","created_at":"2024-05-01T00:00:00Z"}`), &e))

	var list List
	assert.Error(t, json.Unmarshal([]byte(`{"total":0}`), &list))
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, CategoryTransport, CategoryFor("交通"))
	assert.Equal(t, CategoryFood, CategoryFor("food"))

	custom := CategoryFor("宠物")
	assert.Equal(t, "宠物", custom.Label)
	assert.Equal(t, CategoryOther.Icon, custom.Icon)
	assert.Len(t, Categories(), 5)
}

func TestExportWritesRowsAndTotal(t *testing.T) {
	note := "lunch"
	items := sampleExpenses()
	items[0].Note = &note

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, items, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Date", "Category", "Amount", "Note"}, rows[0])
	assert.Equal(t, "2024-05-03 12:00", rows[1][0])
	assert.Equal(t, "lunch", rows[1][3])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "31", rows[4][2])
}

func TestFilterUsesLocalCalendarAcrossMonthBoundary(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)

	var e Expense
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"amount":9.5,"category":"餐饮","created_at":"2024-05-31T20:00:00Z"}`), &e))

	assert.Equal(t, []int64{1}, ids(FilterIn([]Expense{e}, intPtr(2024), intPtr(6), shanghai)))
	assert.Empty(t, FilterIn([]Expense{e}, intPtr(2024), intPtr(5), shanghai))
	assert.Equal(t, []int64{1}, ids(FilterIn([]Expense{e}, intPtr(2024), intPtr(5), time.UTC)))

	vm := NewViewModel(&fakeExpensesAPI{}, logger.Nop(), false, WithLocation(shanghai))
	vm.items.Replace([]Expense{e})
	require.NoError(t, vm.SetFilter(intPtr(2024), intPtr(6)))
	assert.Equal(t, []int64{1}, ids(vm.Snapshot().Expenses))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, vm.Filtered(), vm.Location()))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 04:00", rows[1][0])
}

func TestResetClearsExpensesAndFilter(t *testing.T) {
	vm := newVM(&fakeExpensesAPI{}, sampleExpenses()...)
	require.NoError(t, vm.SetFilter(intPtr(2024), nil))

	vm.Reset()

	snap := vm.Snapshot()
	assert.Empty(t, snap.Expenses)
	assert.Nil(t, snap.Period.Year)
	assert.True(t, snap.Total.IsZero())
}
