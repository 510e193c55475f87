// Package janitor re-runs the resumable tail of the user-delete cascade:
// deleting a user and then their messages is not atomic, so a crash between
// the two steps leaves orphaned messages behind.
package janitor

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/maelvns/featherpost-be/internal/store"
)

// Janitor periodically sweeps messages whose owner no longer exists.
type Janitor struct {
	messages store.MessageStore
	cron     *cron.Cron
}

// New creates a Janitor running Sweep on the given cron schedule.
func New(messages store.MessageStore, schedule string) (*Janitor, error) {
	j := &Janitor{messages: messages, cron: cron.New()}
	if _, err := j.cron.AddFunc(schedule, j.Sweep); err != nil {
		return nil, err
	}
	return j, nil
}

// Start begins the schedule in its own goroutine.
func (j *Janitor) Start() {
	log.Info().Msg("Starting orphan message janitor...")
	j.cron.Start()
}

// Stop halts the schedule; a sweep already in flight finishes.
func (j *Janitor) Stop() {
	log.Info().Msg("Stopping orphan message janitor.")
	j.cron.Stop()
}

// Sweep deletes all orphaned messages. Safe to run at any time, any number
// of times.
func (j *Janitor) Sweep() {
	n, err := j.messages.DeleteOrphanMessages()
	if err != nil {
		log.Error().Err(err).Msg("Orphan message sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("Swept orphaned messages")
	}
}
