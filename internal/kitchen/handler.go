package kitchen

import (
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/order"

	"github.com/gofiber/fiber/v2"
)

type QueueEntry struct {
	Order          models.Order `json:"order"`
	ElapsedMinutes int          `json:"elapsed_minutes"`
	EstimatedPrep  int          `json:"estimated_prep_minutes"`
	Urgency        Urgency      `json:"urgency"`
}

func buildQueue(orders []models.Order, now time.Time) ([]QueueEntry, error) {
	menuIDs := map[uint]bool{}
	for _, o := range orders {
		for _, item := range o.Items {
			menuIDs[item.MenuID] = true
		}
	}

	prepByMenu := map[uint]int{}
	if len(menuIDs) > 0 {
		ids := make([]uint, 0, len(menuIDs))
		for id := range menuIDs {
			ids = append(ids, id)
		}
		var menus []models.Menu
		if err := database.DB.Where("id IN ?", ids).Find(&menus).Error; err != nil {
			return nil, apperr.Persistence("Menüler yüklenemedi", err)
		}
		for _, m := range menus {
			prepByMenu[m.ID] = m.PrepTime
		}
	}

	entries := make([]QueueEntry, 0, len(orders))
	for _, o := range orders {
		elapsed := ElapsedMinutes(&o, now)
		estimated := EstimatedPrepMinutes(o.Items, prepByMenu)
		entries = append(entries, QueueEntry{
			Order:          o,
			ElapsedMinutes: elapsed,
			EstimatedPrep:  estimated,
			Urgency:        Classify(elapsed, estimated),
		})
	}
	return entries, nil
}

// -------------------------------------------------
// GET /api/kitchen/queue  (pending + confirmed + preparing)
// -------------------------------------------------
func ActiveQueueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := order.ListByStatus([]models.OrderStatus{
			models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		}, 100)
		if err != nil {
			return err
		}

		entries, err := buildQueue(orders, time.Now())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"queue": entries, "count": len(entries)})
	}
}

// -------------------------------------------------
// GET /api/kitchen/ready  (kurye bekleyenler)
// -------------------------------------------------
func ReadyQueueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := order.ListByStatus([]models.OrderStatus{models.StatusReady}, 100)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
	}
}

// -------------------------------------------------
// GET /api/kitchen/stats  (bugünün sayıları)
// -------------------------------------------------
func DailyStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dayStart := time.Now().Truncate(24 * time.Hour)

		type statusCount struct {
			Status models.OrderStatus
			Count  int64
		}
		var rows []statusCount
		err := database.DB.Model(&models.Order{}).
			Select("status, count(*) as count").
			Where("created_at >= ?", dayStart).
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return apperr.Persistence("İstatistikler yüklenemedi", err)
		}

		byStatus := map[models.OrderStatus]int64{}
		var total, done, cancelled int64
		for _, row := range rows {
			byStatus[row.Status] = row.Count
			total += row.Count
			switch row.Status {
			case models.StatusCompleted, models.StatusDelivered:
				done += row.Count
			case models.StatusCancelled:
				cancelled += row.Count
			}
		}

		completionRate := 0.0
		if total > 0 {
			completionRate = float64(done) / float64(total)
		}

		return c.JSON(fiber.Map{
			"date":            dayStart.Format("2006-01-02"),
			"total_orders":    total,
			"by_status":       byStatus,
			"completed":       done,
			"cancelled":       cancelled,
			"completion_rate": completionRate,
		})
	}
}
