package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant/internal/config"
)

func TestMySQLDSN(t *testing.T) {
	base := config.MySQL{
		User:     "app",
		Password: "pw",
		Host:     "db.internal",
		Port:     "3306",
		Database: "restaurant",
		Params:   "parseTime=True",
	}

	assert.Equal(t, "app:pw@tcp(db.internal:3306)/restaurant?parseTime=True", MySQLDSN(base))

	cloud := base
	cloud.InstanceConnectionName = "proj:region:inst"
	assert.Equal(t, "app:pw@unix(/cloudsql/proj:region:inst)/restaurant?parseTime=True", MySQLDSN(cloud))

	explicit := cloud
	explicit.DSN = "root@tcp(localhost)/x"
	assert.Equal(t, "root@tcp(localhost)/x", MySQLDSN(explicit))
}
