package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"daily-planner-go/internal/domain/expenses"
	"daily-planner-go/internal/domain/plans"
	"daily-planner-go/internal/domain/session"
	"daily-planner-go/internal/domain/water"
	"github.com/shopspring/decimal"
)

func cmdLogin(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("login", e)
	account := fs.String("account", "", "username or phone number")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *account == "" && fs.NArg() > 0 {
		*account = fs.Arg(0)
	}
	if *account == "" {
		return fmt.Errorf("missing account")
	}

	if *password == "" {
		var err error
		if *password, err = e.promptPassword("Password: "); err != nil {
			return err
		}
	}

	if err := e.services.Session.Login(ctx, *account, *password); err != nil {
		return fmt.Errorf("login: %s", e.services.Session.Error())
	}
	user, _ := e.services.Session.User()
	fmt.Fprintf(e.stdout, "Logged in as %s\n", user.DisplayName())
	return nil
}

func cmdRegister(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("register", e)
	username := fs.String("username", "", "username, at least 3 characters")
	phone := fs.String("phone", "", "11-digit phone number")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		var err error
		if *password, err = e.promptPassword("Password: "); err != nil {
			return err
		}
	}

	input := session.RegisterInput{Username: *username, PhoneNumber: *phone, Password: *password}
	if err := e.services.Session.Register(ctx, input); err != nil {
		return fmt.Errorf("register: %s", e.services.Session.Error())
	}
	user, _ := e.services.Session.User()
	fmt.Fprintf(e.stdout, "Registered and logged in as %s\n", user.DisplayName())
	return nil
}

func cmdLogout(ctx context.Context, e *env, _ []string) error {
	e.services.Session.Logout(ctx)
	fmt.Fprintln(e.stdout, "Logged out")
	return nil
}

func cmdWhoami(ctx context.Context, e *env, _ []string) error {
	user, err := e.requireSession(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s (id %d, phone %s)\n", user.DisplayName(), user.ID, user.PhoneNumber)
	if expires := e.services.Session.TokenExpiresAt(ctx); expires != nil {
		fmt.Fprintf(e.stdout, "Token expires %s\n", expires.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func parseDateFlag(value string) (*plans.Date, error) {
	if value == "" {
		return nil, nil
	}
	date, err := plans.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func loadPlans(ctx context.Context, e *env, dateFlag string) error {
	date, err := parseDateFlag(dateFlag)
	if err != nil {
		return err
	}
	if date != nil {
		return e.services.Plans.SetDate(ctx, *date)
	}
	return e.services.Plans.Load(ctx)
}

func cmdPlans(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("plans", e)
	date := fs.String("date", "", "day as YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}
	if err := loadPlans(ctx, e, *date); err != nil {
		return fmt.Errorf("plans: %s", e.services.Plans.Snapshot().Error)
	}

	snap := e.services.Plans.Snapshot()
	fmt.Fprintf(e.stdout, "Plans for %s\n", snap.SelectedDate)
	for _, plan := range snap.Plans {
		mark := " "
		if plan.IsCompleted() {
			mark = "x"
		}
		id := "-"
		if plan.ID != nil {
			id = strconv.FormatInt(*plan.ID, 10)
		}
		fmt.Fprintf(e.stdout, "[%s] #%s %s\n", mark, id, plan.Content)
	}
	fmt.Fprintf(e.stdout, "%d/%d done (%.0f%%)\n", snap.CompletedCount, len(snap.Plans), snap.Progress*100)
	return nil
}

func cmdPlanAdd(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("plan-add", e)
	date := fs.String("date", "", "day as YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}

	if parsed, err := parseDateFlag(*date); err != nil {
		return err
	} else if parsed != nil {
		// Only the selection matters here; the list is not shown.
		if err := e.services.Plans.SetDate(ctx, *parsed); err != nil {
			return fmt.Errorf("plan-add: %s", e.services.Plans.Snapshot().Error)
		}
	}

	plan, err := e.services.Plans.Create(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return fmt.Errorf("plan-add: %s", e.services.Plans.Snapshot().Error)
	}
	fmt.Fprintf(e.stdout, "Added plan #%d for %s\n", *plan.ID, plan.ExecutionDate)
	return nil
}

func planID(fs interface{ Arg(int) string }) (int64, error) {
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("expected a plan id")
	}
	return id, nil
}

func cmdPlanDone(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("plan-done", e)
	date := fs.String("date", "", "day of the plan as YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := planID(fs)
	if err != nil {
		return err
	}
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}
	if err := loadPlans(ctx, e, *date); err != nil {
		return fmt.Errorf("plan-done: %s", e.services.Plans.Snapshot().Error)
	}

	if err := e.services.Plans.Toggle(ctx, id); err != nil {
		return fmt.Errorf("plan-done: %s", e.services.Plans.Snapshot().Error)
	}
	for _, plan := range e.services.Plans.Plans() {
		if plan.ID != nil && *plan.ID == id {
			fmt.Fprintf(e.stdout, "Plan #%d is now %s\n", id, plan.Status)
			return nil
		}
	}
	return fmt.Errorf("plan #%d not found", id)
}

func cmdPlanRemove(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("plan-rm", e)
	date := fs.String("date", "", "day of the plan as YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := planID(fs)
	if err != nil {
		return err
	}
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}
	if err := loadPlans(ctx, e, *date); err != nil {
		return fmt.Errorf("plan-rm: %s", e.services.Plans.Snapshot().Error)
	}

	if err := e.services.Plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("plan-rm: %s", e.services.Plans.Snapshot().Error)
	}
	fmt.Fprintf(e.stdout, "Deleted plan #%d\n", id)
	return nil
}

func parsePeriod(year, month int) (*int, *int) {
	var y, m *int
	if year > 0 {
		y = &year
	}
	if month > 0 {
		m = &month
	}
	return y, m
}

func loadExpenses(ctx context.Context, e *env, year, month int) error {
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}
	if y, m := parsePeriod(year, month); y != nil || m != nil {
		if err := e.services.Expenses.SetFilter(y, m); err != nil {
			return err
		}
	}
	if err := e.services.Expenses.Load(ctx); err != nil {
		return fmt.Errorf("expenses: %s", e.services.Expenses.Snapshot().Error)
	}
	return nil
}

func cmdExpenses(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("expenses", e)
	year := fs.Int("year", 0, "only this year")
	month := fs.Int("month", 0, "only this month (1-12)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := loadExpenses(ctx, e, *year, *month); err != nil {
		return err
	}

	snap := e.services.Expenses.Snapshot()
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCATEGORY\tAMOUNT\tNOTE")
	for _, item := range snap.Expenses {
		note := ""
		if item.Note != nil {
			note = *item.Note
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.CreatedAt.Local().Format("2006-01-02 15:04"), item.Category, item.Amount.StringFixed(2), note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Total %s of %s\n", snap.FilteredTotal.StringFixed(2), snap.Total.StringFixed(2))
	return nil
}

func cmdExpenseAdd(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("expense-add", e)
	category := fs.String("category", expenses.CategoryOther.Label, "category label")
	note := fs.String("note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("expected an amount, got %q", fs.Arg(0))
	}
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}

	input := expenses.CreateInput{Amount: amount, Category: *category}
	if *note != "" {
		input.Note = note
	}
	expense, err := e.services.Expenses.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("expense-add: %s", e.services.Expenses.Snapshot().Error)
	}
	fmt.Fprintf(e.stdout, "Recorded %s %s\n", expense.Amount.StringFixed(2), expense.Category)
	return nil
}

func cmdExport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("export", e)
	year := fs.Int("year", 0, "only this year")
	month := fs.Int("month", 0, "only this month (1-12)")
	out := fs.String("o", "", "output file (default expenses-<date>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := loadExpenses(ctx, e, *year, *month); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("expenses-%s.xlsx", time.Now().Format("20060102"))
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	items := e.services.Expenses.Filtered()
	if err := expenses.Export(file, items, e.services.Expenses.Location()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Fprintf(e.stdout, "Wrote %d expenses to %s\n", len(items), path)
	return nil
}

func cmdWater(ctx context.Context, e *env, _ []string) error {
	if err := e.services.Water.Load(ctx); err != nil {
		return fmt.Errorf("water: %w", err)
	}

	snap := e.services.Water.Snapshot(ctx)
	fmt.Fprintf(e.stdout, "Water %s: %d/%d ml (%.0f%%)\n", snap.Day, snap.TodayTotal, snap.Settings.DailyGoal, snap.Progress*100)
	for _, record := range snap.Records {
		fmt.Fprintf(e.stdout, "  %s  %-6s %d ml\n", record.Time.Local().Format("15:04"), record.Type, record.Amount)
	}
	return nil
}

func cmdWaterAdd(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("water-add", e)
	if err := fs.Parse(args); err != nil {
		return err
	}
	drink := fs.Arg(0)
	if drink == "" {
		drink = water.Drinks()[0].Name
	}

	amount := 0
	if fs.NArg() > 1 {
		parsed, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("expected an amount in ml, got %q", fs.Arg(1))
		}
		amount = parsed
	} else if known, ok := water.DrinkByName(drink); ok {
		amount = known.DefaultAmount
	}

	if err := e.services.Water.Load(ctx); err != nil {
		return fmt.Errorf("water-add: %w", err)
	}
	record, err := e.services.Water.Add(ctx, drink, amount)
	if err != nil {
		return fmt.Errorf("water-add: %s", e.services.Water.Snapshot(ctx).Error)
	}
	fmt.Fprintf(e.stdout, "Logged %d ml %s, %d ml today\n", record.Amount, record.Type, e.services.Water.TodayTotal(ctx))
	return nil
}

func cmdReminders(ctx context.Context, e *env, _ []string) error {
	if _, err := e.requireSession(ctx); err != nil {
		return err
	}
	if err := e.services.Reminders.Load(ctx); err != nil {
		return fmt.Errorf("reminders: %s", e.services.Reminders.Snapshot().Error)
	}

	for _, reminder := range e.services.Reminders.Reminders() {
		state := "off"
		if reminder.IsEnabled {
			state = "on"
		}
		fmt.Fprintf(e.stdout, "#%d %-8s %s %-3s %s\n", reminder.ID, reminder.ReminderType, reminder.ScheduledTime, state, reminder.Content)
	}
	return nil
}
