package processor

import (
	"context"
	"log"

	"petstore/internal/app/store/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически пересчитывает кеш последних покупок клиентов
// (колонки last_purchase_date и last_item_bought в таблице clients)
type CronScheduler struct {
	cron      *cron.Cron
	clientSvc service.ClientServiceInterface
}

func NewCronScheduler(clientSvc service.ClientServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:      c,
		clientSvc: clientSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: refreshing client purchase cache")

		if err := s.clientSvc.RefreshPurchaseCache(ctx); err != nil {
			log.Printf("ERROR: Failed to refresh client purchase cache: %v", err)
		} else {
			log.Println("Cron job completed: client purchase cache refreshed")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	log.Println("Performing initial client purchase cache refresh...")
	if err := s.clientSvc.RefreshPurchaseCache(ctx); err != nil {
		log.Printf("WARNING: Failed initial client purchase cache refresh: %v", err)
	} else {
		log.Println("Initial client purchase cache refresh completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
