// Package clitest builds command contexts backed by an in-memory store.
package clitest

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/config"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/session"
	"github.com/julianstephens/bujo/internal/storage/memory"
)

// Date is the --date every context starts with.
const Date = "2024-03-01"

// User is the signed-in user of NewContext.
var User = models.User{
	ID:       "user-1",
	Email:    "ada@example.com",
	Metadata: models.UserMetadata{FullName: "Ada Lovelace"},
}

// NewContext returns a context for a signed-in user, or a signed-out one when
// signedIn is false, and the buffer collecting command output.
func NewContext(t *testing.T, signedIn bool) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	var provider session.Static
	if signedIn {
		user := User
		provider.User = &user
	}

	store := memory.New()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	store.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	cfg := config.Default()
	cfg.Database.Driver = config.DriverMemory
	cfg.Timezone = "UTC"

	out := &bytes.Buffer{}
	return &cli.Context{
		Ctx:     context.Background(),
		Config:  cfg,
		Store:   store,
		Journal: journal.NewClient(store, provider),
		Date:    Date,
		Out:     out,
	}, out
}
