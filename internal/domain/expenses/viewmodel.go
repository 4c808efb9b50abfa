package expenses

import (
	"context"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/viewstate"
	"daily-planner-go/pkg/logger"
	"github.com/shopspring/decimal"
)

type API interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	CreateExpense(ctx context.Context, input CreateInput) (Expense, error)
	UpdateExpense(ctx context.Context, id int64, input UpdateInput) (Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type ViewModel struct {
	api   API
	log   logger.Logger
	items *viewstate.Collection[Expense]
	loc   *time.Location

	mu     sync.RWMutex
	period Period
}

type Option func(*ViewModel)

// WithLocation sets the calendar the year/month filter and the export use.
// The default is the process's local zone.
func WithLocation(loc *time.Location) Option {
	return func(vm *ViewModel) {
		if loc != nil {
			vm.loc = loc
		}
	}
}

func NewViewModel(api API, log logger.Logger, discardStale bool, opts ...Option) *ViewModel {
	vm := &ViewModel{
		api:   api,
		log:   log,
		items: viewstate.NewCollection[Expense](discardStale),
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *ViewModel) Location() *time.Location {
	return vm.loc
}

func hasID(id int64) func(Expense) bool {
	return func(e Expense) bool {
		return e.ID != nil && *e.ID == id
	}
}

func (vm *ViewModel) Load(ctx context.Context) error {
	ticket := vm.items.BeginLoad()

	items, err := vm.api.ListExpenses(ctx)
	if err != nil {
		vm.log.BusinessError("expenses.load: failed", err)
	}
	vm.items.FinishLoad(ticket, items, err)
	return err
}

func (vm *ViewModel) Create(ctx context.Context, input CreateInput) (Expense, error) {
	input.Category = strings.TrimSpace(input.Category)
	if err := validateCreate(input); err != nil {
		vm.items.Fail(err)
		return Expense{}, err
	}

	expense, err := vm.api.CreateExpense(ctx, input)
	if err != nil {
		vm.log.BusinessError("expenses.create: failed", err)
		vm.items.Fail(err)
		return Expense{}, err
	}

	vm.items.Prepend(expense)
	return expense, nil
}

// Update replaces the local expense with the server's copy. Unknown ids are
// dropped silently, the same as plans.
func (vm *ViewModel) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Amount != nil && !input.Amount.IsPositive() {
		err := apierr.Invalid("amount", "enter an amount greater than zero")
		vm.items.Fail(err)
		return err
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			err := apierr.Invalid("category", "choose a category")
			vm.items.Fail(err)
			return err
		}
		input.Category = &category
	}

	expense, err := vm.api.UpdateExpense(ctx, id, input)
	if err != nil {
		vm.log.BusinessError("expenses.update: failed", err, "expense_id", id)
		vm.items.Fail(err)
		return err
	}

	if !vm.items.ReplaceFirst(hasID(id), expense) {
		vm.log.Debug("expenses.update: expense not in local list", "expense_id", id)
	}
	return nil
}

// Delete removes an expense. Deleting an id that is not in the local list is a no-op.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	if _, ok := vm.items.Find(hasID(id)); !ok {
		return nil
	}

	if err := vm.api.DeleteExpense(ctx, id); err != nil {
		vm.log.BusinessError("expenses.delete: failed", err, "expense_id", id)
		vm.items.Fail(err)
		return err
	}

	vm.items.RemoveWhere(hasID(id))
	return nil
}

func validateCreate(input CreateInput) error {
	if !input.Amount.IsPositive() {
		return apierr.Invalid("amount", "enter an amount greater than zero")
	}
	if input.Category == "" {
		return apierr.Invalid("category", "choose a category")
	}
	return nil
}

// SetFilter narrows the derived view. A month without a year matches that
// month in any year.
func (vm *ViewModel) SetFilter(year, month *int) error {
	if month != nil && (*month < 1 || *month > 12) {
		return apierr.Invalid("month", "month must be between 1 and 12")
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.period = Period{Year: copyInt(year), Month: copyInt(month)}
	return nil
}

func (vm *ViewModel) ClearFilter() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.period = Period{}
}

// Reset forgets the loaded expenses, the error and the filter.
func (vm *ViewModel) Reset() {
	vm.items.Reset()
	vm.ClearFilter()
}

func (vm *ViewModel) Period() Period {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return Period{Year: copyInt(vm.period.Year), Month: copyInt(vm.period.Month)}
}

func (vm *ViewModel) Expenses() []Expense {
	return vm.items.Items()
}

func (vm *ViewModel) Filtered() []Expense {
	f := vm.Period()
	return FilterIn(vm.items.Items(), f.Year, f.Month, vm.loc)
}

func (vm *ViewModel) Total() decimal.Decimal {
	return Total(vm.items.Items())
}

func (vm *ViewModel) FilteredTotal() decimal.Decimal {
	return Total(vm.Filtered())
}

func (vm *ViewModel) Snapshot() Snapshot {
	state := vm.items.State()
	f := vm.Period()
	filtered := FilterIn(state.Items, f.Year, f.Month, vm.loc)
	return Snapshot{
		Expenses:      filtered,
		Period:        f,
		Total:         Total(state.Items),
		FilteredTotal: Total(filtered),
		IsLoading:     state.IsLoading,
		Error:         state.Error,
	}
}

// Filter returns the expenses whose CreatedAt, on the local calendar, matches
// every set component. The input is never modified.
func Filter(items []Expense, year, month *int) []Expense {
	return FilterIn(items, year, month, time.Local)
}

// FilterIn is Filter on the calendar of loc.
func FilterIn(items []Expense, year, month *int, loc *time.Location) []Expense {
	if loc == nil {
		loc = time.Local
	}
	result := make([]Expense, 0, len(items))
	for _, e := range items {
		at := e.CreatedAt.In(loc)
		if year != nil && at.Year() != *year {
			continue
		}
		if month != nil && int(at.Month()) != *month {
			continue
		}
		result = append(result, e)
	}
	return result
}

func Total(items []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount)
	}
	return total
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
