package planetscale

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	db2 "github.com/navbryce/yatube/db"
	"github.com/upper/db/v4"
	upperMysql "github.com/upper/db/v4/adapter/mysql"
)

type Config struct {
	User     string
	Password string
	Host     string
	Name     string
	MaxConns int
	TLS      bool
}

type PlanetScaleDB struct {
	*PostDB
	*GroupDB
	*UserDB
	*FollowDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *Config) (db2.Database, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = cfg.Host
	dsn.DBName = cfg.Name
	dsn.ParseTime = true
	if cfg.TLS {
		dsn.TLSConfig = "true"
	}

	sqlDB, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := upperMysql.New(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("open upper session: %w", err)
	}

	return &PlanetScaleDB{
		PostDB:   getPostDB(sess),
		GroupDB:  getGroupDB(sess),
		UserDB:   getUserDB(sess),
		FollowDB: getFollowDB(sess),
		sess:     sess,
		sqlDB:    sqlDB,
	}, nil
}

func (psdb *PlanetScaleDB) Ping(ctx context.Context) error {
	return psdb.sqlDB.PingContext(ctx)
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
