// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/field-service-api/internal/db"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

const Password = "secret123"

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, name, role, phone string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s.%s@example.com", role, name),
		PasswordHash: string(hash),
		Phone:        phone,
		Role:         role,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func CreateServiceRequest(t *testing.T, gdb *gorm.DB, owner *models.User) *models.ServiceRequest {
	t.Helper()

	sr := &models.ServiceRequest{
		ServiceType:  "plumbing",
		IssueType:    "leaking pipe",
		Urgency:      "urgent",
		PropertyType: "residential",
		Name:         "Dana Customer",
		Phone:        "+15550001",
		Email:        "dana@example.com",
		Address:      "12 Elm St",
		Status:       "new",
	}
	if owner != nil {
		sr.UserID = &owner.ID
		sr.Name = owner.Name
		sr.Phone = owner.Phone
	}
	require.NoError(t, gdb.Create(sr).Error)
	return sr
}

// Notifier records dispatched messages instead of sending them.
type Notifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *Notifier) Dispatch(msgs ...notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msgs...)
}

func (n *Notifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

func (n *Notifier) Count(kind notify.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var c int
	for _, m := range n.msgs {
		if m.Kind == kind {
			c++
		}
	}
	return c
}

func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = nil
}
