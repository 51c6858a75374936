package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/avrellant/internal/testutil"
)

func TestPool_Health(t *testing.T) {
	pool := testutil.NewPool(t)
	assert.NoError(t, pool.Health(context.Background(), 5*time.Second))
}
