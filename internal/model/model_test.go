package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleModerator))
	assert.False(t, ValidRole("SuperAdmin"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("admin")) // case-sensitive
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, ValidMovementType(MovementIn))
	assert.True(t, ValidMovementType(MovementOut))
	assert.False(t, ValidMovementType("transfer"))
	assert.False(t, ValidMovementType(""))
}

func TestTableNames(t *testing.T) {
	// The models map onto the pre-existing schema
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "produits", Product{}.TableName())
	assert.Equal(t, "stock", StockMovement{}.TableName())
	assert.Equal(t, "ventes", Sale{}.TableName())
}
