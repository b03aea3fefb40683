package db_test

import (
	"testing"

	"github.com/gnames/gnbirds/internal/iodb"
	"github.com/gnames/gnbirds/pkg/db"
	"github.com/stretchr/testify/assert"
)

// TestNewPgxOperator verifies that a new operator implements
// db.Operator and has no pool before Connect.
func TestNewPgxOperator(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())
	assert.NoError(t, op.Close())
}
