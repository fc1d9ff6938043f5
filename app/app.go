package app

import (
	"database/sql"

	"github.com/mbolis/platform-pulse/config"
)

type App struct {
	*sql.DB
	config.Config
}
