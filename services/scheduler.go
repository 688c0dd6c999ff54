// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSyncScheduler re-syncs every wallet-connected session from the NFT
// contract on a fixed interval, keeping inventories and the mirror cache
// fresh between user actions.
func (s *StakingService) StartSyncScheduler(interval time.Duration) {
	if s.contract == nil {
		log.Println("⚠️  No NFT provider configured — wallet re-sync scheduler not started")
		return
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			for _, sess := range s.sessions.All() {
				if !sess.WalletConnected {
					continue
				}
				s.SyncWallet(ctx, sess)
			}
		}),
	)
}
