package plans

import (
	"context"
	"strings"
	"sync"
	"time"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/viewstate"
	"daily-planner-go/pkg/logger"
)

type API interface {
	ListPlans(ctx context.Context, date Date) ([]Plan, error)
	CreatePlan(ctx context.Context, input CreateInput) (Plan, error)
	UpdatePlan(ctx context.Context, id int64, input UpdateInput) (Plan, error)
	DeletePlan(ctx context.Context, id int64) error
}

// ViewModel backs the plan screen: the plans of one selected day.
type ViewModel struct {
	api   API
	log   logger.Logger
	items *viewstate.Collection[Plan]
	now   func() time.Time

	mu       sync.RWMutex
	selected Date
}

func NewViewModel(api API, log logger.Logger, discardStale bool, now func() time.Time) *ViewModel {
	if now == nil {
		now = time.Now
	}
	return &ViewModel{
		api:      api,
		log:      log,
		items:    viewstate.NewCollection[Plan](discardStale),
		now:      now,
		selected: DateOf(now()),
	}
}

func hasID(id int64) func(Plan) bool {
	return func(p Plan) bool {
		return p.ID != nil && *p.ID == id
	}
}

func (vm *ViewModel) SelectedDate() Date {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.selected
}

// Load replaces the collection with the selected day's plans.
func (vm *ViewModel) Load(ctx context.Context) error {
	date := vm.SelectedDate()
	ticket := vm.items.BeginLoad()

	items, err := vm.api.ListPlans(ctx, date)
	if err != nil {
		vm.log.BusinessError("plans.load: failed", err, "date", date.String())
	}
	vm.items.FinishLoad(ticket, items, err)
	return err
}

// SetDate selects a day and reloads it.
func (vm *ViewModel) SetDate(ctx context.Context, date Date) error {
	vm.mu.Lock()
	vm.selected = date
	vm.mu.Unlock()

	return vm.Load(ctx)
}

// Create adds a plan for the selected day and puts the server's copy first.
func (vm *ViewModel) Create(ctx context.Context, content string) (Plan, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		err := apierr.Invalid("content", "enter the plan content")
		vm.items.Fail(err)
		return Plan{}, err
	}

	plan, err := vm.api.CreatePlan(ctx, CreateInput{Content: content, ExecutionDate: vm.SelectedDate()})
	if err != nil {
		vm.log.BusinessError("plans.create: failed", err)
		vm.items.Fail(err)
		return Plan{}, err
	}

	vm.items.Prepend(plan)
	return plan, nil
}

// Update sends a partial update and replaces the local plan with the result.
// An id that is not in the local list is dropped silently after the call.
func (vm *ViewModel) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Content != nil {
		trimmed := strings.TrimSpace(*input.Content)
		if trimmed == "" {
			err := apierr.Invalid("content", "enter the plan content")
			vm.items.Fail(err)
			return err
		}
		input.Content = &trimmed
	}
	if input.Status != nil && !input.Status.Valid() {
		err := apierr.Invalid("status", "unknown status")
		vm.items.Fail(err)
		return err
	}

	plan, err := vm.api.UpdatePlan(ctx, id, input)
	if err != nil {
		vm.log.BusinessError("plans.update: failed", err, "plan_id", id)
		vm.items.Fail(err)
		return err
	}

	if !vm.items.ReplaceFirst(hasID(id), plan) {
		vm.log.Debug("plans.update: plan not in local list", "plan_id", id)
	}
	return nil
}

// Toggle flips a plan between pending and completed.
func (vm *ViewModel) Toggle(ctx context.Context, id int64) error {
	plan, ok := vm.items.Find(hasID(id))
	if !ok {
		return nil
	}
	next := plan.Status.Toggled()
	return vm.Update(ctx, id, UpdateInput{Status: &next})
}

// Delete removes a plan. Deleting an id that is not in the local list is a no-op.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	if _, ok := vm.items.Find(hasID(id)); !ok {
		return nil
	}

	if err := vm.api.DeletePlan(ctx, id); err != nil {
		vm.log.BusinessError("plans.delete: failed", err, "plan_id", id)
		vm.items.Fail(err)
		return err
	}

	vm.items.RemoveWhere(hasID(id))
	return nil
}

// Reset forgets the loaded plans and selects today again.
func (vm *ViewModel) Reset() {
	vm.items.Reset()

	vm.mu.Lock()
	vm.selected = DateOf(vm.now())
	vm.mu.Unlock()
}

func (vm *ViewModel) Plans() []Plan {
	return vm.items.Items()
}

func (vm *ViewModel) CompletedCount() int {
	return CompletedCount(vm.items.Items())
}

func (vm *ViewModel) Progress() float64 {
	return Progress(vm.items.Items())
}

func (vm *ViewModel) Snapshot() Snapshot {
	state := vm.items.State()
	return Snapshot{
		Plans:          state.Items,
		SelectedDate:   vm.SelectedDate(),
		CompletedCount: CompletedCount(state.Items),
		Progress:       Progress(state.Items),
		IsLoading:      state.IsLoading,
		Error:          state.Error,
	}
}

func CompletedCount(items []Plan) int {
	count := 0
	for _, p := range items {
		if p.IsCompleted() {
			count++
		}
	}
	return count
}

// Progress is the completed share of items, 0 for an empty list.
func Progress(items []Plan) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(CompletedCount(items)) / float64(len(items))
}
