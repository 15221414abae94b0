package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bcal/config"
	"bcal/models"
	"bcal/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService, bookings BookingLookup) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc, bookings))

	go monitorRedisConnection()

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// BookingLookup resolves the booking a reminder refers to.
type BookingLookup interface {
	Get(bookingID string) (*models.Booking, error)
}

func handleReminderTask(notifSvc notification.NotificationService, bookings BookingLookup) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		b, err := bookings.Get(p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] booking %s not found: %v", p.BookingID, err)
			return nil
		}
		// The booking may have been cancelled since the reminder was queued.
		if !b.Blocks() {
			return nil
		}

		if err := notifSvc.NotifyBookingReminder(ctx, *b); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
