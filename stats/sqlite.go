package stats

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteSink periodically snapshots a controller's Counters into a SQLite
// database, one row per snapshot, so a run's counter trajectory can be
// queried after the fact.
type SQLiteSink struct {
	*sql.DB

	dbName    string
	statement *sql.Stmt

	controllerName string
}

// NewSQLiteSink creates a sink writing to path+".sqlite3". An empty path
// generates one from a random xid, mirroring the teacher's trace writer.
func NewSQLiteSink(path, controllerName string) *SQLiteSink {
	s := &SQLiteSink{
		dbName:         path,
		controllerName: controllerName,
	}

	atexit.Register(func() {
		if s.DB != nil {
			s.DB.Close()
		}
	})

	return s
}

// Init opens the database and creates the snapshot table.
func (s *SQLiteSink) Init() {
	if s.dbName == "" {
		s.dbName = "mcsim_stats_" + xid.New().String()
	}

	filename := s.dbName + ".sqlite3"

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}
	s.DB = db

	s.mustExecute(`
		create table if not exists snapshot (
			controller      varchar(200) not null,
			cycle           integer      not null,
			placement       integer default 0,
			clean_evict     integer default 0,
			dirty_evict     integer default 0,
			load_hit        integer default 0,
			load_miss       integer default 0,
			store_hit       integer default 0,
			store_miss      integer default 0,
			counter_access  integer default 0,
			tag_load        integer default 0,
			tag_store       integer default 0,
			tag_buffer_flush integer default 0,
			tb_dirty_hit    integer default 0,
			tb_dirty_miss   integer default 0,
			total_touch_lines integer default 0,
			total_evict_lines integer default 0,
			total_hit       integer default 0,
			total_miss      integer default 0,
			total_invalid   integer default 0,
			total_valid     integer default 0,
			total_migrate   integer default 0,
			total_policy    integer default 0
		);
	`)

	stmt, err := s.Prepare(`
		insert into snapshot values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		panic(err)
	}
	s.statement = stmt
}

// Write inserts one snapshot row at the given simulation cycle.
func (s *SQLiteSink) Write(cycle uint64, c Counters) {
	_, err := s.statement.Exec(
		s.controllerName, cycle,
		c.Placement, c.CleanEvict, c.DirtyEvict,
		c.LoadHit, c.LoadMiss, c.StoreHit, c.StoreMiss,
		c.CounterAccess, c.TagLoad, c.TagStore, c.TagBufferFlush,
		c.TBDirtyHit, c.TBDirtyMiss,
		c.TotalTouchLines, c.TotalEvictLines,
		c.TotalHit, c.TotalMiss, c.TotalInvalid, c.TotalValid,
		c.TotalMigrate, c.TotalPolicy,
	)
	if err != nil {
		panic(err)
	}
}

func (s *SQLiteSink) mustExecute(query string) sql.Result {
	res, err := s.Exec(query)
	if err != nil {
		panic(fmt.Errorf("stats: %s: %w", query, err))
	}

	return res
}
