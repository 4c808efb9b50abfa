package handler

import (
	admindomain "daily-planner-go/internal/domain/admin"
	expensesdomain "daily-planner-go/internal/domain/expenses"
	plansdomain "daily-planner-go/internal/domain/plans"
	remindersdomain "daily-planner-go/internal/domain/reminders"
	"daily-planner-go/internal/domain/session"
	waterdomain "daily-planner-go/internal/domain/water"
	adminhandler "daily-planner-go/internal/transport/httpserver/handler/admin"
	commonhandler "daily-planner-go/internal/transport/httpserver/handler/common"
	expenseshandler "daily-planner-go/internal/transport/httpserver/handler/expenses"
	planshandler "daily-planner-go/internal/transport/httpserver/handler/plans"
	remindershandler "daily-planner-go/internal/transport/httpserver/handler/reminders"
	waterhandler "daily-planner-go/internal/transport/httpserver/handler/water"
	"daily-planner-go/pkg/logger"
)

type Handlers struct {
	Common    *commonhandler.Handlers
	Plans     *planshandler.Handlers
	Expenses  *expenseshandler.Handlers
	Water     *waterhandler.Handlers
	Reminders *remindershandler.Handlers
	Admin     *adminhandler.Handlers
}

func New(
	sessions *session.Manager,
	plans *plansdomain.ViewModel,
	expenses *expensesdomain.ViewModel,
	water *waterdomain.ViewModel,
	reminders *remindersdomain.ViewModel,
	console *admindomain.Console,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Common:    commonhandler.New(sessions, log),
		Plans:     planshandler.New(plans, log),
		Expenses:  expenseshandler.New(expenses, log),
		Water:     waterhandler.New(water, sessions, log),
		Reminders: remindershandler.New(reminders, log),
		Admin:     adminhandler.New(console, log),
	}
}
