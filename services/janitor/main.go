package janitor

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"seqlab/api/models"
	"seqlab/api/repositories/memory"
)

type (
	JanitorService struct {
		Initialized bool
		Repository  *memory.Repository
		Config      *models.Config
	}
)

func NewJanitorService(repo *memory.Repository, cfg *models.Config) *JanitorService {
	js := &JanitorService{
		Initialized: false,
		Repository:  repo,
		Config:      cfg,
	}

	js.Init()

	return js
}

func (js *JanitorService) Init() {
	// initialization if necessary
	if !js.Initialized {
		// - spin up a go routine that periodically sweeps
		//   session artifacts (sequence records, variant sets,
		//   comparisons) older than the configured TTL out of
		//   the in-memory repository
		go func() {
			s := gocron.NewScheduler(time.UTC)

			s.Every(js.Config.Session.SweepIntervalMinutes).Minutes().Do(func() {
				evicted := js.SweepNow()
				if evicted > 0 {
					fmt.Printf("[%s] - Session janitor evicted %d expired entr(y/ies)..\n", time.Now(), evicted)
				}
			})

			// starts the scheduler in blocking mode, which blocks
			// the current execution path
			s.StartBlocking()
		}()

		js.Initialized = true
		fmt.Println("Janitor Service Initialized ..")
	}
}

// SweepNow evicts everything older than the configured session TTL
func (js *JanitorService) SweepNow() int {
	cutoff := time.Now().Add(-time.Duration(js.Config.Session.TtlMinutes) * time.Minute)
	return js.Repository.SweepOlderThan(cutoff)
}
