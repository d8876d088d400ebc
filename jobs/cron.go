package jobs

import (
	"context"
	"time"

	"hotelbooking/dto"
	"hotelbooking/services/logger"
	"hotelbooking/utils"

	"github.com/robfig/cron/v3"
)

// CheckoutSweeper trả phòng các booking đã qua ngày ở cuối cùng
type CheckoutSweeper interface {
	Today() utils.Day
	CompleteEnded(ctx context.Context, today utils.Day) (dto.CompleteEndedResult, error)
}

// sweepTimeout giới hạn một lần quét
const sweepTimeout = 5 * time.Minute

// RunCheckoutSweep chạy một lần quét, dùng cho cron và khi khởi động
func RunCheckoutSweep(ctx context.Context, sweeper CheckoutSweeper, log logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	today := sweeper.Today()
	log.Info("Đang chạy trả phòng tự động cho ngày %s", today)
	result, err := sweeper.CompleteEnded(ctx, today)
	if err != nil {
		log.Error("Lỗi khi trả phòng tự động: %v", err)
		return
	}
	if len(result.Failed) > 0 {
		log.Error("Trả phòng tự động lỗi với booking %v", result.Failed)
	}
}

// InitCronJobs đăng ký job trả phòng theo biểu thức cron schedule (mặc định 0h mỗi ngày)
func InitCronJobs(c *cron.Cron, schedule string, sweeper CheckoutSweeper, log logger.Logger) error {
	_, err := c.AddFunc(schedule, func() {
		RunCheckoutSweep(context.Background(), sweeper, log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
