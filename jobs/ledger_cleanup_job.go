package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"planpal-api/repositories"
	"planpal-api/services"
)

// LedgerCleanupJob periodically drops in-memory vote ledgers for plans
// whose event date has passed, so the process does not accumulate
// ledgers for dead plans.
type LedgerCleanupJob struct {
	repo        *repositories.PlanRepository
	voteService *services.VoteService
	ticker      *time.Ticker
	done        chan bool
}

// NewLedgerCleanupJob creates a new ledger cleanup job
func NewLedgerCleanupJob(db *gorm.DB, voteService *services.VoteService, interval time.Duration) *LedgerCleanupJob {
	return &LedgerCleanupJob{
		repo:        repositories.NewPlanRepository(db),
		voteService: voteService,
		ticker:      time.NewTicker(interval),
		done:        make(chan bool),
	}
}

// Start begins the cleanup job
func (j *LedgerCleanupJob) Start() {
	fmt.Println("Ledger cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				fmt.Println("Ledger cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *LedgerCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *LedgerCleanupJob) cleanup() {
	fmt.Println("Running ledger cleanup...")

	// Plans older than a day no longer need live vote state
	ids, err := j.repo.ListPastPlanIDs(time.Now().AddDate(0, 0, -1))
	if err != nil {
		fmt.Printf("Error during ledger cleanup: %v\n", err)
		return
	}

	for _, id := range ids {
		j.voteService.DropLedger(id)
	}

	fmt.Printf("Ledger cleanup completed, %d ledgers remain\n", j.voteService.LedgerCount())
}
