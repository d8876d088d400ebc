package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotelbooking/dto"
	"hotelbooking/services/logger"
	"hotelbooking/utils"

	"github.com/robfig/cron/v3"
)

type fakeSweeper struct {
	mu    sync.Mutex
	days  []utils.Day
	today utils.Day
	err   error
}

func (f *fakeSweeper) Today() utils.Day { return f.today }

func (f *fakeSweeper) CompleteEnded(ctx context.Context, today utils.Day) (dto.CompleteEndedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, today)
	if f.err != nil {
		return dto.CompleteEndedResult{}, f.err
	}
	return dto.CompleteEndedResult{Completed: []uint{1, 2}}, nil
}

func TestRunCheckoutSweep(t *testing.T) {
	today := utils.NewDay(2024, 6, 10)
	sweeper := &fakeSweeper{today: today}

	RunCheckoutSweep(context.Background(), sweeper, logger.Discard{})

	if len(sweeper.days) != 1 || sweeper.days[0] != today {
		t.Errorf("CompleteEnded calls = %v, want [%v]", sweeper.days, today)
	}
}

func TestRunCheckoutSweepLogsError(t *testing.T) {
	sweeper := &fakeSweeper{today: utils.NewDay(2024, 6, 10), err: errors.New("db down")}

	// không panic, chỉ log
	RunCheckoutSweep(context.Background(), sweeper, logger.Discard{})

	if len(sweeper.days) != 1 {
		t.Errorf("CompleteEnded calls = %d, want 1", len(sweeper.days))
	}
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	if err := InitCronJobs(c, "0 0 * * *", &fakeSweeper{}, logger.Discard{}); err != nil {
		t.Fatalf("InitCronJobs() error = %v", err)
	}
	if got := len(c.Entries()); got != 1 {
		t.Errorf("len(Entries()) = %d, want 1", got)
	}
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	if err := InitCronJobs(c, "every night", &fakeSweeper{}, logger.Discard{}); err == nil {
		t.Errorf("InitCronJobs() error = nil, want parse error")
	}
}
